package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/contactform/handler"
	"github.com/dmitrymomot/contactform/modules/contact"
	"github.com/dmitrymomot/contactform/modules/contact/views"
	"github.com/dmitrymomot/contactform/pkg/config"
	"github.com/dmitrymomot/contactform/pkg/cookie"
	"github.com/dmitrymomot/contactform/pkg/email"
	"github.com/dmitrymomot/contactform/pkg/environment"
	"github.com/dmitrymomot/contactform/pkg/httpserver"
	"github.com/dmitrymomot/contactform/pkg/i18n"
	"github.com/dmitrymomot/contactform/pkg/logger"
	"github.com/dmitrymomot/contactform/pkg/mongo"
	"github.com/dmitrymomot/contactform/pkg/pg"
	"github.com/dmitrymomot/contactform/pkg/queue"
	"github.com/dmitrymomot/contactform/pkg/ratelimiter"
	"github.com/dmitrymomot/contactform/pkg/redis"
	"github.com/dmitrymomot/contactform/pkg/requestid"
	contactsvc "github.com/dmitrymomot/contactform/svc/contact"
)

func main() {
	var cfg Config
	config.MustLoad(&cfg)

	env := environment.Parse(cfg.App.Env)
	log := logger.New(
		logger.WithEnvironment(env, cfg.Log.Service),
		logger.WithConfig(cfg.Log),
		logger.WithContextExtractors(requestid.LoggerExtractor(), contact.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	if err := run(context.Background(), cfg, env, log); err != nil {
		log.Error("server stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, env environment.Environment, log *slog.Logger) error {
	if err := cfg.Contact.Validate(); err != nil {
		return err
	}

	var (
		checks        []httpserver.Check
		shutdownHooks []httpserver.Option
	)
	closeOnShutdown := func(fn func()) {
		shutdownHooks = append(shutdownHooks, httpserver.WithShutdownHook(func(context.Context) error {
			fn()
			return nil
		}))
	}

	tr, err := i18n.NewTranslator(ctx,
		i18n.NewFSAdapter(views.Translations, views.TranslationsDir),
		i18n.WithLogger(log),
		i18n.WithMissingTranslationsLogging(!env.IsProduction()),
	)
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}

	var redisClient *goredis.Client
	if cfg.usesRedis() {
		redisClient, err = redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(redisClient)})
		closeOnShutdown(func() { _ = redisClient.Close() })
	}

	var store contactsvc.StateStore
	switch cfg.Contact.Store {
	case contactsvc.StoreRedis:
		store = contactsvc.NewRedisStateStore(redisClient, cfg.Redis.KeyPrefix, cfg.Contact.StateTTL)
	default:
		mem := contactsvc.NewMemoryStateStore(cfg.Contact.StateTTL, time.Minute)
		closeOnShutdown(mem.Close)
		store = mem
	}

	var repo contactsvc.Repository
	switch cfg.Contact.Archive {
	case contactsvc.ArchivePostgres:
		pool, err := pg.Connect(ctx, cfg.Postgres)
		if err != nil {
			return err
		}
		closeOnShutdown(pool.Close)
		if err := pg.Migrate(ctx, pool, contactsvc.Migrations, contactsvc.MigrationsDir, cfg.Postgres, log); err != nil {
			pool.Close()
			return err
		}
		checks = append(checks, httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)})
		repo = contactsvc.NewPostgresRepository(pool)
	case contactsvc.ArchiveMongo:
		db, err := mongo.NewWithDatabase(ctx, cfg.Mongo)
		if err != nil {
			return err
		}
		client := db.Client()
		shutdownHooks = append(shutdownHooks, httpserver.WithShutdownHook(client.Disconnect))
		checks = append(checks, httpserver.Check{Name: "mongo", Fn: mongo.Healthcheck(client)})
		mongoRepo := contactsvc.NewMongoRepository(db)
		if err := mongoRepo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return err
		}
		repo = mongoRepo
	default:
		repo = contactsvc.NewMemoryRepository()
	}

	svcOpts := []contactsvc.Option{
		contactsvc.WithLogger(log),
		contactsvc.WithRecentLimit(cfg.Contact.RecentLimit),
	}
	if cfg.Contact.NotifyEmail != "" {
		sender, err := newMailer(cfg.Email, log)
		if err != nil {
			return err
		}
		notifier, err := startNotificationQueue(ctx, cfg.Queue, contactsvc.NewEmailNotifier(sender, cfg.Contact.NotifyEmail), log, &shutdownHooks)
		if err != nil {
			return err
		}
		svcOpts = append(svcOpts, contactsvc.WithNotifier(notifier))
	}
	svc := contactsvc.NewService(store, repo, svcOpts...)

	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		return err
	}

	var limitStore ratelimiter.Store
	if cfg.App.RateLimitStore == "redis" {
		limitStore = ratelimiter.NewRedisStore(redisClient, cfg.Redis.KeyPrefix+"ratelimit:")
	} else {
		mem := ratelimiter.NewMemoryStore()
		closeOnShutdown(mem.Close)
		limitStore = mem
	}
	limiter, err := ratelimiter.NewBucket(limitStore, cfg.Submit)
	if err != nil {
		return err
	}

	errViews := views.NewErrorViews(tr)
	module := contact.NewModule(svc, views.New(tr), cookies,
		contact.WithLogger(log),
		contact.WithBasePath(cfg.App.BasePath),
		contact.WithFormTTL(cfg.Contact.StateTTL),
		contact.WithErrorHandler(handler.NewErrorHandler(log, errViews.HandlerConfig(!env.IsProduction()))),
		contact.WithSubmitLimiter(limiter, ratelimiter.ClientIP(cfg.App.TrustedIPHeaders...)),
	)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(middleware.Recoverer)
	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, 5*time.Second, checks...))
	r.Group(func(r chi.Router) {
		r.Use(i18n.Middleware(i18n.DefaultLangExtractor(i18n.NewMatcher(tr.SupportedLanguages()...)), tr.DefaultLanguage()))
		r.Mount(cfg.App.BasePath, module.Handle())
	})

	srv := httpserver.NewFromConfig(cfg.HTTP, append([]httpserver.Option{httpserver.WithLogger(log)}, shutdownHooks...)...)
	if err := srv.Run(ctx, r); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// startNotificationQueue delivers notifications through a background worker
// with retries. The worker is stopped after the HTTP server.
func startNotificationQueue(ctx context.Context, cfg queue.Config, next contactsvc.Notifier, log *slog.Logger, hooks *[]httpserver.Option) (contactsvc.Notifier, error) {
	storage := queue.NewMemoryStorage(queue.WithRetryBackoff(cfg.RetryBackoff))
	enq, err := queue.NewEnqueuer(storage, queue.WithDefaultMaxRetries(cfg.MaxRetries))
	if err != nil {
		storage.Close()
		return nil, err
	}
	worker, err := queue.NewWorker(storage, queue.WithConfig(cfg), queue.WithWorkerLogger(log))
	if err != nil {
		storage.Close()
		return nil, err
	}
	worker.RegisterHandlers(contactsvc.NotificationHandler(next))
	if err := worker.Start(ctx); err != nil {
		storage.Close()
		return nil, err
	}

	*hooks = append(*hooks, httpserver.WithShutdownHook(func(context.Context) error {
		defer storage.Close()
		return worker.Stop()
	}))
	return contactsvc.NewQueuedNotifier(enq), nil
}

func newMailer(cfg email.Config, log *slog.Logger) (email.EmailSender, error) {
	if cfg.PostmarkEnabled() {
		return email.NewPostmarkClient(cfg)
	}
	log.Warn("postmark is not configured, writing emails to disk",
		logger.Component("email"),
		slog.String("dir", cfg.DevOutputDir),
	)
	return email.NewDevSender(cfg.DevOutputDir), nil
}
