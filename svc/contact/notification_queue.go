package contact

import (
	"context"
	"errors"

	"github.com/dmitrymomot/contactform/pkg/queue"
)

// NotificationTask is the queued payload of one submission notification.
type NotificationTask struct {
	Submission Submission `json:"submission"`
}

// QueuedNotifier defers notifications to a queue worker so submits do not
// wait for delivery and failed deliveries are retried.
type QueuedNotifier struct {
	enqueuer *queue.Enqueuer
	opts     []queue.EnqueueOption
}

// NewQueuedNotifier enqueues a NotificationTask per submission. Pair it with
// a worker running NotificationHandler.
func NewQueuedNotifier(enqueuer *queue.Enqueuer, opts ...queue.EnqueueOption) *QueuedNotifier {
	return &QueuedNotifier{enqueuer: enqueuer, opts: opts}
}

func (n *QueuedNotifier) Notify(ctx context.Context, s Submission) error {
	if err := n.enqueuer.Enqueue(ctx, NotificationTask{Submission: s}, n.opts...); err != nil {
		return errors.Join(ErrNotifyFailed, err)
	}
	return nil
}

// NotificationHandler delivers queued notifications through next.
func NotificationHandler(next Notifier) queue.Handler {
	return queue.NewTaskHandler(func(ctx context.Context, t NotificationTask) error {
		return next.Notify(ctx, t.Submission)
	})
}
