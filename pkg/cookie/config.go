package cookie

import (
	"fmt"
	"net/http"
	"strings"
)

// Config holds cookie manager settings loaded from the environment.
// COOKIE_SECRETS is a comma-separated list; the first secret signs new
// cookies and the rest are accepted while rotating keys.
type Config struct {
	Secrets  []string `env:"COOKIE_SECRETS,required" envSeparator:","`
	Path     string   `env:"COOKIE_PATH" envDefault:"/"`
	Domain   string   `env:"COOKIE_DOMAIN"`
	MaxAge   int      `env:"COOKIE_MAX_AGE" envDefault:"0"`
	Secure   bool     `env:"COOKIE_SECURE" envDefault:"false"`
	SameSite string   `env:"COOKIE_SAME_SITE" envDefault:"lax"`
}

// NewFromConfig creates a Manager from cfg. opts are applied after the config.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	secrets := make([]string, 0, len(cfg.Secrets))
	for _, s := range cfg.Secrets {
		if s = strings.TrimSpace(s); s != "" {
			secrets = append(secrets, s)
		}
	}

	sameSite, err := parseSameSite(cfg.SameSite)
	if err != nil {
		return nil, err
	}

	configOpts := []Option{WithSecure(cfg.Secure), WithSameSite(sameSite)}
	if cfg.Path != "" {
		configOpts = append(configOpts, WithPath(cfg.Path))
	}
	if cfg.Domain != "" {
		configOpts = append(configOpts, WithDomain(cfg.Domain))
	}
	if cfg.MaxAge != 0 {
		configOpts = append(configOpts, WithMaxAge(cfg.MaxAge))
	}

	return New(secrets, append(configOpts, opts...)...)
}

func parseSameSite(s string) (http.SameSite, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lax":
		return http.SameSiteLaxMode, nil
	case "strict":
		return http.SameSiteStrictMode, nil
	case "none":
		return http.SameSiteNoneMode, nil
	}
	return 0, fmt.Errorf("%w: same site %q", ErrInvalidConfig, s)
}
