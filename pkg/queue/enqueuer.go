package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EnqueuerRepository stores new tasks.
type EnqueuerRepository interface {
	CreateTask(ctx context.Context, task *Task) error
}

// Enqueuer turns payloads into pending tasks.
type Enqueuer struct {
	repo         EnqueuerRepository
	defaultQueue string
	maxRetries   int8
	now          func() time.Time
}

// NewEnqueuer creates an Enqueuer writing to repo.
func NewEnqueuer(repo EnqueuerRepository, opts ...EnqueuerOption) (*Enqueuer, error) {
	if repo == nil {
		return nil, ErrRepositoryNil
	}
	e := &Enqueuer{
		repo:         repo,
		defaultQueue: DefaultQueueName,
		maxRetries:   3,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Enqueue stores payload as JSON. Its task name is the payload type unless
// WithTaskName is given.
func (e *Enqueuer) Enqueue(ctx context.Context, payload any, opts ...EnqueueOption) error {
	if payload == nil {
		return ErrPayloadNil
	}

	options := enqueueOptions{
		queue:      e.defaultQueue,
		maxRetries: e.maxRetries,
	}
	for _, opt := range opts {
		opt(&options)
	}

	task, err := e.buildTask(payload, options)
	if err != nil {
		return err
	}
	if err := e.repo.CreateTask(ctx, task); err != nil {
		return fmt.Errorf("create task %q in queue %q: %w", task.Name, task.Queue, err)
	}
	return nil
}

func (e *Enqueuer) buildTask(payload any, options enqueueOptions) (*Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload of type %T: %w", payload, err)
	}

	name := options.taskName
	if name == "" {
		name = qualifiedStructName(payload)
	}

	now := e.now()
	return &Task{
		ID:          uuid.New(),
		Queue:       options.queue,
		Name:        name,
		Payload:     data,
		Status:      TaskStatusPending,
		MaxRetries:  options.maxRetries,
		ScheduledAt: now.Add(options.delay),
		CreatedAt:   now,
	}, nil
}
