// Package email sends transactional mail through Postmark, or writes it to
// disk during development.
//
//	var sender email.EmailSender
//	if cfg.PostmarkEnabled() {
//		sender, err = email.NewPostmarkClient(cfg)
//	} else {
//		sender = email.NewDevSender(cfg.DevOutputDir)
//	}
//
//	body, err := email.Render(ctx, views.SubmissionEmail(rec))
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//		SendTo:   cfg.SupportEmail,
//		ReplyTo:  rec.Email,
//		Subject:  "New contact form submission",
//		BodyHTML: body,
//		Tag:      "contact-submission",
//	})
//
// Parameters are validated before anything is sent; invalid input yields
// ErrInvalidParams and delivery failures ErrFailedToSendEmail.
package email
