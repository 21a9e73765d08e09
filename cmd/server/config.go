package main

import (
	"github.com/dmitrymomot/contactform/pkg/cookie"
	"github.com/dmitrymomot/contactform/pkg/email"
	"github.com/dmitrymomot/contactform/pkg/httpserver"
	"github.com/dmitrymomot/contactform/pkg/logger"
	"github.com/dmitrymomot/contactform/pkg/mongo"
	"github.com/dmitrymomot/contactform/pkg/pg"
	"github.com/dmitrymomot/contactform/pkg/queue"
	"github.com/dmitrymomot/contactform/pkg/ratelimiter"
	"github.com/dmitrymomot/contactform/pkg/redis"
	contactsvc "github.com/dmitrymomot/contactform/svc/contact"
)

type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	BasePath string `env:"APP_BASE_PATH" envDefault:"/"`
	// TrustedIPHeaders names proxy headers that carry the client address,
	// e.g. X-Forwarded-For. Empty keys rate limits by the connection address.
	TrustedIPHeaders []string `env:"APP_TRUSTED_IP_HEADERS" envSeparator:","`
	// RateLimitStore is memory or redis.
	RateLimitStore string `env:"RATELIMIT_STORE" envDefault:"memory"`
}

// Config is the full server configuration, read from the environment and an
// optional .env file.
type Config struct {
	App      appConfig
	HTTP     httpserver.Config
	Log      logger.Config
	Cookie   cookie.Config
	Contact  contactsvc.Config
	Email    email.Config
	Redis    redis.Config
	Postgres pg.Config
	Mongo    mongo.Config
	Queue    queue.Config
	Submit   ratelimiter.Config `envPrefix:"RATELIMIT_SUBMIT_"`
}

func (c Config) usesRedis() bool {
	return c.Contact.Store == contactsvc.StoreRedis || c.App.RateLimitStore == "redis"
}
