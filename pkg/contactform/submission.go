package contactform

import "time"

// SubmissionRecord is the read-only snapshot produced by a successful submit.
type SubmissionRecord struct {
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	Message     string    `json:"message,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}

func newSubmissionRecord(state FormState, at time.Time) SubmissionRecord {
	return SubmissionRecord{
		FirstName:   state.FirstName,
		LastName:    state.LastName,
		Email:       state.Email,
		Message:     state.Message,
		SubmittedAt: at,
	}
}

// HasMessage reports whether the message should be displayed.
func (r SubmissionRecord) HasMessage() bool {
	return r.Message != ""
}

// FullName joins first and last name for notifications and listings.
func (r SubmissionRecord) FullName() string {
	return r.FirstName + " " + r.LastName
}
