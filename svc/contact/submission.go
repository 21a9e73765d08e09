package contact

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/contactform/pkg/contactform"
)

// Submission is an archived SubmissionRecord.
type Submission struct {
	ID          uuid.UUID `json:"id"`
	FormID      string    `json:"formId"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	Message     string    `json:"message,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}

func newSubmission(formID string, rec contactform.SubmissionRecord) Submission {
	return Submission{
		ID:          uuid.New(),
		FormID:      formID,
		FirstName:   rec.FirstName,
		LastName:    rec.LastName,
		Email:       rec.Email,
		Message:     rec.Message,
		SubmittedAt: rec.SubmittedAt,
	}
}

// Record converts the submission back into the displayed record.
func (s Submission) Record() contactform.SubmissionRecord {
	return contactform.SubmissionRecord{
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		Email:       s.Email,
		Message:     s.Message,
		SubmittedAt: s.SubmittedAt,
	}
}
