package contact

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrymomot/contactform/pkg/email"
)

// Notifier is told about every archived submission.
type Notifier interface {
	Notify(ctx context.Context, s Submission) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, s Submission) error

func (f NotifierFunc) Notify(ctx context.Context, s Submission) error {
	return f(ctx, s)
}

// EmailNotifier mails each submission to a fixed address with the visitor
// as reply-to.
type EmailNotifier struct {
	sender email.EmailSender
	to     string
}

func NewEmailNotifier(sender email.EmailSender, to string) *EmailNotifier {
	return &EmailNotifier{sender: sender, to: to}
}

func (n *EmailNotifier) Notify(ctx context.Context, s Submission) error {
	body, err := email.Render(ctx, submissionEmail(s))
	if err != nil {
		return errors.Join(ErrNotifyFailed, err)
	}

	err = n.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   n.to,
		Subject:  fmt.Sprintf("New contact form submission from %s", s.Record().FullName()),
		BodyHTML: body,
		ReplyTo:  s.Email,
		Tag:      "contact-submission",
	})
	if err != nil {
		return errors.Join(ErrNotifyFailed, err)
	}
	return nil
}
