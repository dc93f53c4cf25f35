package homework

import "fmt"

const (
	fieldName   = "homework_name"
	fieldStatus = "status"
)

// ParseStatus renders the notification text for a single homework record.
// A status outside the verdict table is not an error and renders FallbackVerdict.
func ParseStatus(rec Record) (string, error) {
	name, err := stringField(rec, fieldName)
	if err != nil {
		return "", err
	}
	rawStatus, err := stringField(rec, fieldStatus)
	if err != nil {
		return "", err
	}

	status := Status(rawStatus)
	if status == StatusUnknown {
		return "", fmt.Errorf("%w: status of %q is %q", ErrMissingField, name, StatusUnknown)
	}

	verdict, ok := Verdict(status)
	if !ok {
		verdict = FallbackVerdict
	}
	return fmt.Sprintf("Изменился статус проверки работы \"%s\". %s", name, verdict), nil
}

func stringField(rec Record, key string) (string, error) {
	v, ok := rec[key]
	if !ok {
		return "", fmt.Errorf("%w: field %q is missing", ErrMissingField, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %q expected string, got %s", ErrMissingField, key, typeName(v))
	}
	return s, nil
}
