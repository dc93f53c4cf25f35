// internal/domain/homework/homework.go
package homework

import "fmt"

// Status is the review status reported by the homework API.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
	StatusUnknown   Status = "unknown" // Explicitly rejected by the parser
)

// Record is a single homework entry as returned by the API.
// Kept as a raw JSON object so absent fields can be told apart from empty ones.
type Record map[string]any

// Response is the validated API envelope.
type Response struct {
	Homeworks      []Record
	CurrentDate    int64
	HasCurrentDate bool // false when the server omitted or mangled current_date
}

// Latest returns the first (newest) homework, if any.
func (r *Response) Latest() (Record, bool) {
	if r == nil || len(r.Homeworks) == 0 {
		return nil, false
	}
	return r.Homeworks[0], true
}

// Custom errors for the homework domain
var ErrShape = fmt.Errorf("unexpected API response shape")
var ErrMissingField = fmt.Errorf("homework record is incomplete")
