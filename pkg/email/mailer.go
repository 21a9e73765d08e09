package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/contactform/pkg/validator"
)

// EmailSender delivers a single message.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams describes one outgoing message.
type SendEmailParams struct {
	SendTo   string `json:"send_to"`
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
	// ReplyTo overrides the configured support address.
	ReplyTo string `json:"reply_to,omitempty"`
	Tag     string `json:"tag,omitempty"`
}

// Validate checks the recipient, subject and body.
func (p SendEmailParams) Validate() error {
	err := validator.Apply(
		validator.RequiredString("send_to", p.SendTo),
		validator.ValidEmail("send_to", p.SendTo),
		validator.RequiredString("subject", p.Subject),
		validator.RequiredString("body_html", p.BodyHTML),
	)
	if err == nil && p.ReplyTo != "" {
		err = validator.Apply(validator.ValidEmail("reply_to", p.ReplyTo))
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	return nil
}

// Render renders a templ component into an HTML string for BodyHTML.
func Render(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
