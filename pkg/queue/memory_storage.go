package queue

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStorage implements EnqueuerRepository and WorkerRepository in
// process memory. Tasks do not survive a restart.
type MemoryStorage struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*Task
	dead  []DeadTask

	now     func() time.Time
	backoff time.Duration

	lockCheckInterval time.Duration
	done              chan struct{}
	closeOnce         sync.Once
}

// MemoryStorageOption configures a MemoryStorage.
type MemoryStorageOption func(*MemoryStorage)

// WithStorageClock overrides the time source.
func WithStorageClock(now func() time.Time) MemoryStorageOption {
	return func(ms *MemoryStorage) {
		if now != nil {
			ms.now = now
		}
	}
}

// WithRetryBackoff sets the delay unit between retries. A failed task waits
// RetryCount times d. Zero retries immediately.
func WithRetryBackoff(d time.Duration) MemoryStorageOption {
	return func(ms *MemoryStorage) {
		if d >= 0 {
			ms.backoff = d
		}
	}
}

// WithLockCheckInterval sets how often expired locks are released. Zero
// disables the check.
func WithLockCheckInterval(d time.Duration) MemoryStorageOption {
	return func(ms *MemoryStorage) { ms.lockCheckInterval = d }
}

// NewMemoryStorage creates a storage and starts its lock expiry loop.
func NewMemoryStorage(opts ...MemoryStorageOption) *MemoryStorage {
	ms := &MemoryStorage{
		tasks:             make(map[uuid.UUID]*Task),
		now:               time.Now,
		backoff:           30 * time.Second,
		lockCheckInterval: time.Second,
		done:              make(chan struct{}),
	}
	for _, opt := range opts {
		opt(ms)
	}
	if ms.lockCheckInterval > 0 {
		go ms.lockExpirationManager()
	}
	return ms
}

// Close stops the lock expiry loop. Safe to call more than once.
func (ms *MemoryStorage) Close() {
	ms.closeOnce.Do(func() { close(ms.done) })
}

func (ms *MemoryStorage) CreateTask(_ context.Context, task *Task) error {
	if task == nil {
		return errors.New("task cannot be nil")
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, exists := ms.tasks[task.ID]; exists {
		return fmt.Errorf("task with ID %s already exists", task.ID)
	}
	taskCopy := *task
	ms.tasks[task.ID] = &taskCopy
	return nil
}

// ClaimTask locks the oldest due pending task of queues.
func (ms *MemoryStorage) ClaimTask(_ context.Context, workerID uuid.UUID, queues []string, lockDuration time.Duration) (*Task, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	var best *Task
	for _, task := range ms.tasks {
		if task.Status != TaskStatusPending || !slices.Contains(queues, task.Queue) {
			continue
		}
		if task.ScheduledAt.After(now) {
			continue
		}
		if best == nil ||
			task.ScheduledAt.Before(best.ScheduledAt) ||
			(task.ScheduledAt.Equal(best.ScheduledAt) && task.CreatedAt.Before(best.CreatedAt)) {
			best = task
		}
	}
	if best == nil {
		return nil, ErrNoTaskToClaim
	}

	lockUntil := now.Add(lockDuration)
	best.Status = TaskStatusProcessing
	best.LockedUntil = &lockUntil
	best.LockedBy = &workerID

	taskCopy := *best
	return &taskCopy, nil
}

func (ms *MemoryStorage) CompleteTask(_ context.Context, taskID uuid.UUID) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	task, err := ms.processing(taskID)
	if err != nil {
		return err
	}
	now := ms.now()
	task.Status = TaskStatusCompleted
	task.ProcessedAt = &now
	task.LockedUntil = nil
	task.LockedBy = nil
	return nil
}

// FailTask records errorMsg and either reschedules the task with linear
// backoff or, once retries are spent, marks it failed.
func (ms *MemoryStorage) FailTask(_ context.Context, taskID uuid.UUID, errorMsg string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	task, err := ms.processing(taskID)
	if err != nil {
		return err
	}
	task.RetryCount++
	task.Error = errorMsg
	task.LockedUntil = nil
	task.LockedBy = nil

	if task.RetryCount > task.MaxRetries {
		task.Status = TaskStatusFailed
		return nil
	}
	task.Status = TaskStatusPending
	task.ScheduledAt = ms.now().Add(time.Duration(task.RetryCount) * ms.backoff)
	return nil
}

// MoveToDLQ removes the task and keeps it as a DeadTask.
func (ms *MemoryStorage) MoveToDLQ(_ context.Context, taskID uuid.UUID) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	task, ok := ms.tasks[taskID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	ms.dead = append(ms.dead, DeadTask{
		TaskID:     task.ID,
		Queue:      task.Queue,
		Name:       task.Name,
		Payload:    task.Payload,
		Error:      task.Error,
		RetryCount: task.RetryCount,
		FailedAt:   ms.now(),
	})
	delete(ms.tasks, taskID)
	return nil
}

// Task returns a copy of the stored task.
func (ms *MemoryStorage) Task(taskID uuid.UUID) (Task, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	task, ok := ms.tasks[taskID]
	if !ok {
		return Task{}, false
	}
	return *task, true
}

// Tasks returns copies of all stored tasks with status.
func (ms *MemoryStorage) Tasks(status TaskStatus) []Task {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	var out []Task
	for _, task := range ms.tasks {
		if task.Status == status {
			out = append(out, *task)
		}
	}
	slices.SortFunc(out, func(a, b Task) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out
}

// DeadTasks returns the dead letter entries, oldest first.
func (ms *MemoryStorage) DeadTasks() []DeadTask {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return slices.Clone(ms.dead)
}

func (ms *MemoryStorage) processing(taskID uuid.UUID) (*Task, error) {
	task, ok := ms.tasks[taskID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	if task.Status != TaskStatusProcessing {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotClaimed, taskID)
	}
	return task, nil
}

// lockExpirationManager returns tasks of crashed or stuck workers to pending.
func (ms *MemoryStorage) lockExpirationManager() {
	ticker := time.NewTicker(ms.lockCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ms.expireLocks()
		case <-ms.done:
			return
		}
	}
}

func (ms *MemoryStorage) expireLocks() {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	for _, task := range ms.tasks {
		if task.Status == TaskStatusProcessing && task.LockedUntil != nil && task.LockedUntil.Before(now) {
			task.Status = TaskStatusPending
			task.LockedUntil = nil
			task.LockedBy = nil
		}
	}
}
