package queue

import (
	"context"
	"encoding/json"
	"fmt"
)

// Handler processes the payload of one task name.
type Handler interface {
	Name() string
	Handle(ctx context.Context, payload json.RawMessage) error
}

// TaskHandlerFunc handles a decoded payload.
type TaskHandlerFunc[T any] func(ctx context.Context, payload T) error

// NewTaskHandler returns a Handler for payloads of type T. The task name is
// derived from T, matching what Enqueuer uses for a T payload.
func NewTaskHandler[T any](fn TaskHandlerFunc[T]) Handler {
	var payload T
	return &taskHandler[T]{name: qualifiedStructName(payload), fn: fn}
}

type taskHandler[T any] struct {
	name string
	fn   TaskHandlerFunc[T]
}

func (h *taskHandler[T]) Name() string { return h.name }

func (h *taskHandler[T]) Handle(ctx context.Context, payload json.RawMessage) error {
	var t T
	if err := json.Unmarshal(payload, &t); err != nil {
		return fmt.Errorf("decode %s payload: %w", h.name, err)
	}
	return h.fn(ctx, t)
}
