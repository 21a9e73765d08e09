package email

// Config holds mail settings. Without Postmark tokens the application falls
// back to DevSender, which writes messages to DevOutputDir.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"no-reply@example.com"`
	SupportEmail         string `env:"SUPPORT_EMAIL" envDefault:"support@example.com"`
	DevOutputDir         string `env:"EMAIL_DEV_DIR" envDefault:"tmp/emails"`
}

// PostmarkEnabled reports whether both Postmark tokens are set.
func (c Config) PostmarkEnabled() bool {
	return c.PostmarkServerToken != "" && c.PostmarkAccountToken != ""
}
