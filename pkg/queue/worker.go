package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/contactform/pkg/logger"
)

// WorkerRepository is the storage side of a Worker.
type WorkerRepository interface {
	// ClaimTask locks the next due task or returns ErrNoTaskToClaim.
	ClaimTask(ctx context.Context, workerID uuid.UUID, queues []string, lockDuration time.Duration) (*Task, error)
	CompleteTask(ctx context.Context, taskID uuid.UUID) error
	// FailTask records the error, increments the retry count and
	// reschedules the task while retries remain.
	FailTask(ctx context.Context, taskID uuid.UUID, errorMsg string) error
	MoveToDLQ(ctx context.Context, taskID uuid.UUID) error
}

// Worker polls its queues and runs the registered handlers. Handlers get a
// context detached from the caller's, bounded by the lock timeout, so
// stopping the worker lets running tasks finish.
type Worker struct {
	repo     WorkerRepository
	handlers map[string]Handler
	queues   []string
	workerID uuid.UUID
	sem      chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex

	pullInterval time.Duration
	lockTimeout  time.Duration
	log          *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

// NewWorker creates a worker reading from repo.
func NewWorker(repo WorkerRepository, opts ...WorkerOption) (*Worker, error) {
	if repo == nil {
		return nil, ErrRepositoryNil
	}

	w := &Worker{
		repo:         repo,
		handlers:     make(map[string]Handler),
		queues:       []string{DefaultQueueName},
		workerID:     uuid.New(),
		pullInterval: time.Second,
		lockTimeout:  time.Minute,
		log:          slog.New(slog.DiscardHandler),
	}
	maxConcurrent := 1
	for _, opt := range opts {
		opt(w, &maxConcurrent)
	}
	w.sem = make(chan struct{}, maxConcurrent)
	w.log = w.log.With(logger.Component("queue"), slog.String("worker_id", w.workerID.String()))
	return w, nil
}

// RegisterHandlers adds handlers keyed by their names. A later handler
// replaces an earlier one of the same name.
func (w *Worker) RegisterHandlers(handlers ...Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, h := range handlers {
		if h != nil {
			w.handlers[h.Name()] = h
		}
	}
}

// Start runs the polling loop in the background until Stop or until ctx is
// cancelled.
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		return ErrWorkerStarted
	}
	if len(w.handlers) == 0 {
		return ErrNoHandlers
	}

	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	go w.run(ctx, w.done)

	w.log.Info("worker started",
		slog.Any("queues", w.queues),
		slog.Int("max_concurrent", cap(w.sem)),
	)
	return nil
}

// Stop ends polling and waits for running tasks.
func (w *Worker) Stop() error {
	w.mu.Lock()
	if w.cancel == nil {
		w.mu.Unlock()
		return ErrWorkerNotStarted
	}
	cancel, done := w.cancel, w.done
	w.cancel = nil
	w.mu.Unlock()

	cancel()
	<-done
	w.wg.Wait()

	w.log.Info("worker stopped")
	return nil
}

func (w *Worker) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(w.pullInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			select {
			case w.sem <- struct{}{}:
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-w.sem }()

					if err := w.pullAndProcess(ctx); err != nil && !errors.Is(err, ErrHandlerNotFound) {
						w.log.Error("failed to process task", logger.Error(err))
					}
				}()
			default:
				w.log.Debug("all worker slots busy, skipping tick")
			}
		}
	}
}

func (w *Worker) pullAndProcess(ctx context.Context) error {
	task, err := w.repo.ClaimTask(ctx, w.workerID, w.queues, w.lockTimeout)
	if errors.Is(err, ErrNoTaskToClaim) || (err == nil && task == nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("claim task: %w", err)
	}
	return w.processTask(task)
}

func (w *Worker) processTask(task *Task) (err error) {
	start := time.Now()
	log := w.log.With(
		slog.String("task_id", task.ID.String()),
		slog.String("task_name", task.Name),
		slog.String("queue", task.Queue),
	)

	w.mu.Lock()
	handler, ok := w.handlers[task.Name]
	w.mu.Unlock()
	if !ok {
		return w.handleMissingHandler(task, log)
	}

	// Storage updates must land even when the worker is stopping.
	ctx, cancel := context.WithTimeout(context.Background(), w.lockTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			log.Error("handler panicked", slog.Any("panic", r))
			err = w.handleTaskFailure(ctx, task, fmt.Errorf("panic in handler: %v", r), time.Since(start), log)
		}
	}()

	if herr := handler.Handle(ctx, task.Payload); herr != nil {
		return w.handleTaskFailure(ctx, task, herr, time.Since(start), log)
	}

	if err := w.repo.CompleteTask(ctx, task.ID); err != nil {
		return fmt.Errorf("complete task %s: %w", task.ID, err)
	}
	log.Info("task completed", logger.Duration(time.Since(start)))
	return nil
}

// handleMissingHandler dead-letters the task at once; retries cannot help.
func (w *Worker) handleMissingHandler(task *Task, log *slog.Logger) error {
	log.Error("no handler registered for task")

	ctx, cancel := context.WithTimeout(context.Background(), w.lockTimeout)
	defer cancel()

	if err := w.repo.FailTask(ctx, task.ID, ErrHandlerNotFound.Error()+": "+task.Name); err != nil {
		return fmt.Errorf("fail task %s: %w", task.ID, err)
	}
	if err := w.repo.MoveToDLQ(ctx, task.ID); err != nil {
		return fmt.Errorf("move task %s to dead letters: %w", task.ID, err)
	}
	return ErrHandlerNotFound
}

func (w *Worker) handleTaskFailure(ctx context.Context, task *Task, execErr error, d time.Duration, log *slog.Logger) error {
	log.Error("task failed",
		logger.Error(execErr),
		slog.Int("retry_count", int(task.RetryCount)),
		slog.Int("max_retries", int(task.MaxRetries)),
		logger.Duration(d),
	)

	if err := w.repo.FailTask(ctx, task.ID, execErr.Error()); err != nil {
		return fmt.Errorf("fail task %s: %w", task.ID, err)
	}
	if task.RetryCount < task.MaxRetries {
		return nil
	}
	if err := w.repo.MoveToDLQ(ctx, task.ID); err != nil {
		return fmt.Errorf("move task %s to dead letters: %w", task.ID, err)
	}
	log.Warn("task moved to dead letter queue")
	return nil
}
