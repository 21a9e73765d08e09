package queue

import "errors"

var (
	ErrRepositoryNil    = errors.New("repository cannot be nil")
	ErrPayloadNil       = errors.New("payload cannot be nil")
	ErrHandlerNotFound  = errors.New("no handler registered for task")
	ErrNoHandlers       = errors.New("no task handlers registered")
	ErrNoTaskToClaim    = errors.New("no task to claim")
	ErrTaskNotFound     = errors.New("task not found")
	ErrTaskNotClaimed   = errors.New("task is not being processed")
	ErrWorkerStarted    = errors.New("worker already started")
	ErrWorkerNotStarted = errors.New("worker not started")
)
