package homework

// FallbackVerdict is rendered for statuses missing from the verdict table.
const FallbackVerdict = "Статус работы не определён."

var verdicts = map[Status]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// Verdict returns the notification text for a status and whether it was found.
func Verdict(status Status) (string, bool) {
	v, ok := verdicts[status]
	return v, ok
}
