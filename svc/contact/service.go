package contact

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/contactform/pkg/contactform"
	"github.com/dmitrymomot/contactform/pkg/logger"
)

// Service runs contact forms whose state lives in a StateStore. Mutations of
// one form id are serialised.
type Service struct {
	store       StateStore
	repo        Repository
	notifier    Notifier
	log         *slog.Logger
	now         func() time.Time
	recentLimit int
	locks       *keyedMutex
}

// Option configures a Service.
type Option func(*Service)

// WithNotifier sets the notifier called after each archived submission. It
// runs after the form lock is released, on a context that outlives the
// request. Wrap slow notifiers with NewQueuedNotifier.
func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the time source used for submission records.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRecentLimit sets the default and maximum for Recent.
func WithRecentLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.recentLimit = n
		}
	}
}

// NewService creates a Service.
func NewService(store StateStore, repo Repository, opts ...Option) *Service {
	s := &Service{
		store:       store,
		repo:        repo,
		log:         slog.New(slog.DiscardHandler),
		now:         time.Now,
		recentLimit: 20,
		locks:       newKeyedMutex(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("contact"))
	return s
}

// Load returns the current view of formID. Unknown or expired forms are empty.
func (s *Service) Load(ctx context.Context, formID string) (contactform.View, error) {
	form, err := s.load(ctx, formID)
	if err != nil {
		return contactform.View{}, err
	}
	return form.latest, nil
}

// Change sanitizes value, stores it and revalidates that field only.
func (s *Service) Change(ctx context.Context, formID string, field contactform.Field, value string) (contactform.View, error) {
	unlock := s.locks.Lock(formID)
	defer unlock()

	form, err := s.load(ctx, formID)
	if err != nil {
		return contactform.View{}, err
	}
	if err := form.OnFieldChange(field, sanitizeValue(field, value)); err != nil {
		return contactform.View{}, err
	}

	view := form.latest
	if err := s.store.Save(ctx, formID, view); err != nil {
		return contactform.View{}, err
	}
	s.log.DebugContext(ctx, "field changed",
		logger.FormID(formID),
		logger.Field(field.String()),
		slog.Bool("valid", !view.Errors.Has(field)),
	)
	return view, nil
}

// Submit sanitizes and validates state. The returned view has no errors
// exactly when the submit succeeded; the submission is then archived and
// the notifier called. Notification failures are only logged.
func (s *Service) Submit(ctx context.Context, formID string, state contactform.FormState) (contactform.View, error) {
	view, sub, err := s.submit(ctx, formID, state)
	if err != nil || sub == nil {
		return view, err
	}
	s.notify(context.WithoutCancel(ctx), *sub)
	return view, nil
}

// submit holds the form lock for validation, archiving and saving only.
func (s *Service) submit(ctx context.Context, formID string, state contactform.FormState) (contactform.View, *Submission, error) {
	unlock := s.locks.Lock(formID)
	defer unlock()

	form, err := s.load(ctx, formID)
	if err != nil {
		return contactform.View{}, nil, err
	}

	rec, ok := form.OnSubmit(sanitizeState(state))
	view := form.latest
	if !ok {
		s.log.DebugContext(ctx, "submission rejected",
			logger.FormID(formID),
			logger.ErrorCount(len(view.Errors)),
		)
		if err := s.store.Save(ctx, formID, view); err != nil {
			return contactform.View{}, nil, err
		}
		return view, nil, nil
	}

	sub := newSubmission(formID, rec)
	if err := s.repo.Create(ctx, sub); err != nil {
		if !errors.Is(err, ErrArchiveFailed) {
			err = errors.Join(ErrArchiveFailed, err)
		}
		return contactform.View{}, nil, err
	}
	if err := s.store.Save(ctx, formID, view); err != nil {
		return contactform.View{}, nil, err
	}

	s.log.InfoContext(ctx, "submission accepted",
		logger.FormID(formID),
		logger.SubmissionID(sub.ID),
	)
	return view, &sub, nil
}

// Validate sanitizes state and validates every field without touching any
// stored form.
func (s *Service) Validate(state contactform.FormState) contactform.ValidationResult {
	return contactform.ValidateAll(sanitizeState(state))
}

// Reset discards the state of formID.
func (s *Service) Reset(ctx context.Context, formID string) error {
	if formID == "" {
		return ErrEmptyFormID
	}
	unlock := s.locks.Lock(formID)
	defer unlock()
	return s.store.Delete(ctx, formID)
}

// Recent lists archived submissions, newest first. limit is clamped to
// (0, recent limit].
func (s *Service) Recent(ctx context.Context, limit int) ([]Submission, error) {
	if limit <= 0 || limit > s.recentLimit {
		limit = s.recentLimit
	}
	return s.repo.List(ctx, limit)
}

// trackedForm is a form plus the last view it published to its observer.
// Mutations persist that view.
type trackedForm struct {
	*contactform.Form
	latest contactform.View
}

func (s *Service) load(ctx context.Context, formID string) (*trackedForm, error) {
	if formID == "" {
		return nil, ErrEmptyFormID
	}

	view, err := s.store.Load(ctx, formID)
	switch {
	case errors.Is(err, ErrStateNotFound):
		view = contactform.View{}
	case errors.Is(err, ErrInvalidPayload):
		s.log.WarnContext(ctx, "discarding unreadable form state", logger.FormID(formID), logger.Error(err))
		view = contactform.View{}
	case err != nil:
		return nil, err
	}

	t := &trackedForm{}
	t.Form = contactform.Restore(view,
		contactform.WithClock(s.now),
		contactform.WithObserver(func(v contactform.View) { t.latest = v }),
	)
	t.latest = t.View()
	return t, nil
}

func (s *Service) notify(ctx context.Context, sub Submission) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, sub); err != nil {
		s.log.ErrorContext(ctx, "submission notification failed",
			logger.SubmissionID(sub.ID),
			logger.Error(err),
		)
	}
}
