package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrymomot/contactform/pkg/logger"
)

type config struct {
	addr              string
	readTimeout       time.Duration
	readHeaderTimeout time.Duration
	writeTimeout      time.Duration
	idleTimeout       time.Duration
	shutdownTimeout   time.Duration
	logger            *slog.Logger
	startHooks        []func(context.Context) error
	shutdownHooks     []func(context.Context) error
}

func defaultConfig() *config {
	return &config{
		addr:              ":8080",
		readHeaderTimeout: 5 * time.Second,
		shutdownTimeout:   10 * time.Second,
	}
}

// Server wraps http.Server with graceful shutdown, lifecycle hooks and logging.
type Server struct {
	cfg *config

	mu   sync.Mutex
	srv  *http.Server
	addr net.Addr
	once sync.Once
	err  error
}

// New returns a configured Server.
func New(opts ...Option) *Server {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}
	return &Server{cfg: cfg}
}

// Addr returns the bound listener address once Run has started, or nil.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Run starts serving handler and blocks until ctx is cancelled, an interrupt
// or TERM signal arrives, or Shutdown is called. Start failures are wrapped
// with ErrStart.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, ErrAlreadyRunning)
	}
	cfg := s.cfg
	srv := &http.Server{
		Addr:              cfg.addr,
		Handler:           handler,
		ReadTimeout:       cfg.readTimeout,
		ReadHeaderTimeout: cfg.readHeaderTimeout,
		WriteTimeout:      cfg.writeTimeout,
		IdleTimeout:       cfg.idleTimeout,
		ErrorLog:          slog.NewLogLogger(cfg.logger.Handler(), slog.LevelWarn),
	}
	s.srv = srv
	s.mu.Unlock()

	for _, h := range cfg.startHooks {
		if err := h(ctx); err != nil {
			return errors.Join(ErrStart, err)
		}
	}

	ln, err := net.Listen("tcp", cfg.addr)
	if err != nil {
		return errors.Join(ErrStart, err)
	}

	s.mu.Lock()
	s.addr = ln.Addr()
	s.mu.Unlock()

	cfg.logger.InfoContext(ctx, "http server started",
		logger.Component("httpserver"),
		slog.String("addr", ln.Addr().String()),
	)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var runErr error
	select {
	case <-sigCtx.Done():
		runErr = s.Shutdown(context.WithoutCancel(ctx))
		if serveErr := <-errCh; serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			runErr = errors.Join(runErr, serveErr)
		}
	case serveErr := <-errCh:
		if !errors.Is(serveErr, http.ErrServerClosed) {
			return errors.Join(ErrStart, serveErr)
		}
		// Shutdown was called directly; wait for it to finish.
		runErr = s.Shutdown(context.WithoutCancel(ctx))
	}

	return runErr
}

// Shutdown stops the server gracefully and then runs the shutdown hooks.
// Repeated calls return the result of the first one. Failures are wrapped
// with ErrShutdown.
func (s *Server) Shutdown(ctx context.Context) error {
	s.once.Do(func() {
		s.mu.Lock()
		srv := s.srv
		s.mu.Unlock()

		ctx, cancel := context.WithTimeout(ctx, s.cfg.shutdownTimeout)
		defer cancel()

		var errs []error
		if srv != nil {
			if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errs = append(errs, err)
			}
		}
		for i := len(s.cfg.shutdownHooks) - 1; i >= 0; i-- {
			if err := s.cfg.shutdownHooks[i](ctx); err != nil {
				errs = append(errs, err)
			}
		}

		if len(errs) > 0 {
			s.err = errors.Join(append([]error{ErrShutdown}, errs...)...)
			s.cfg.logger.ErrorContext(ctx, "http server shutdown failed",
				logger.Component("httpserver"), logger.Error(s.err))
			return
		}
		s.cfg.logger.InfoContext(ctx, "http server stopped", logger.Component("httpserver"))
	})
	return s.err
}
