package queue_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/pkg/queue"
)

type greeting struct {
	To string `json:"to"`
}

type failingRepo struct{}

func (failingRepo) CreateTask(context.Context, *queue.Task) error { return errors.New("disk full") }

func TestEnqueuer_Enqueue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := newFakeClock()
	s := newStorage(t, clock)

	enq, err := queue.NewEnqueuer(s,
		queue.WithDefaultMaxRetries(5),
		queue.WithEnqueuerClock(clock.Now),
	)
	require.NoError(t, err)

	require.NoError(t, enq.Enqueue(ctx, greeting{To: "irving@example.com"}))
	require.NoError(t, enq.Enqueue(ctx, &greeting{To: "later@example.com"},
		queue.WithDelay(time.Minute),
		queue.WithMaxRetries(1),
		queue.WithQueue("mail"),
		queue.WithTaskName("custom"),
	))

	tasks := s.Tasks(queue.TaskStatusPending)
	require.Len(t, tasks, 2)

	byName := map[string]queue.Task{}
	for _, task := range tasks {
		byName[task.Name] = task
	}

	first := byName["queue_test.greeting"]
	assert.Equal(t, queue.DefaultQueueName, first.Queue)
	assert.Equal(t, int8(5), first.MaxRetries)
	assert.Equal(t, clock.Now(), first.ScheduledAt)
	var p greeting
	require.NoError(t, json.Unmarshal(first.Payload, &p))
	assert.Equal(t, "irving@example.com", p.To)

	second := byName["custom"]
	assert.Equal(t, "mail", second.Queue)
	assert.Equal(t, int8(1), second.MaxRetries)
	assert.Equal(t, clock.Now().Add(time.Minute), second.ScheduledAt)
}

func TestEnqueuer_Errors(t *testing.T) {
	t.Parallel()

	_, err := queue.NewEnqueuer(nil)
	assert.ErrorIs(t, err, queue.ErrRepositoryNil)

	enq, err := queue.NewEnqueuer(failingRepo{})
	require.NoError(t, err)
	assert.ErrorIs(t, enq.Enqueue(context.Background(), nil), queue.ErrPayloadNil)
	assert.ErrorContains(t, enq.Enqueue(context.Background(), greeting{}), "disk full")
	assert.Error(t, enq.Enqueue(context.Background(), make(chan int)), "payload must marshal")
}

func TestNewTaskHandler(t *testing.T) {
	t.Parallel()

	var got greeting
	h := queue.NewTaskHandler(func(_ context.Context, p greeting) error {
		got = p
		return nil
	})
	assert.Equal(t, "queue_test.greeting", h.Name())
	require.NoError(t, h.Handle(context.Background(), json.RawMessage(`{"to":"a@b.co"}`)))
	assert.Equal(t, "a@b.co", got.To)
	assert.Error(t, h.Handle(context.Background(), json.RawMessage(`{`)))
}
