// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv for .env files and
// github.com/caarlos0/env/v11 for struct-tag parsing:
//
//	type Config struct {
//	    Addr     string        `env:"HTTP_ADDR" envDefault:":8080"`
//	    StateTTL time.Duration `env:"CONTACT_STATE_TTL" envDefault:"24h"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// Each configuration type is parsed once and cached for the lifetime of the
// process. ResetCache clears the cache, which tests use after t.Setenv.
package config
