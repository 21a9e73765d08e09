package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"

	"github.com/dmitrymomot/contactform/pkg/validator"
)

// PostmarkOption adjusts the underlying Postmark client.
type PostmarkOption func(*postmark.Client)

// WithPostmarkBaseURL points the client at another API host, e.g. a test server.
func WithPostmarkBaseURL(url string) PostmarkOption {
	return func(c *postmark.Client) { c.BaseURL = url }
}

type postmarkClient struct {
	client *postmark.Client
	config Config
}

// NewPostmarkClient creates a Postmark-backed sender. Both tokens and valid
// sender and support addresses are required.
func NewPostmarkClient(cfg Config, opts ...PostmarkOption) (EmailSender, error) {
	if !cfg.PostmarkEnabled() {
		return nil, fmt.Errorf("%w: postmark server and account tokens are required", ErrInvalidConfig)
	}
	if err := validator.Apply(
		validator.ValidEmail("sender_email", cfg.SenderEmail),
		validator.ValidEmail("support_email", cfg.SupportEmail),
	); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	client := postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken)
	for _, opt := range opts {
		opt(client)
	}
	return &postmarkClient{client: client, config: cfg}, nil
}

// SendEmail sends through Postmark's transactional API. Replies go to
// params.ReplyTo when set, otherwise to the support address.
func (c *postmarkClient) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	replyTo := params.ReplyTo
	if replyTo == "" {
		replyTo = c.config.SupportEmail
	}

	resp, err := c.client.SendEmail(ctx, postmark.Email{
		From:       c.config.SenderEmail,
		ReplyTo:    replyTo,
		To:         params.SendTo,
		Subject:    params.Subject,
		Tag:        params.Tag,
		HTMLBody:   params.BodyHTML,
		TrackOpens: false,
	})
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(ErrFailedToSendEmail, fmt.Errorf("postmark error %d: %s", resp.ErrorCode, resp.Message))
	}
	return nil
}
