// internal/workers/publisher.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/dashboard-be/internal/core/ports"
)

// Enqueuer is the part of *asynq.Client the publisher needs
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// TaskPublisher publishes domain events as asynq tasks
type TaskPublisher struct {
	client   Enqueuer
	queue    string
	maxRetry int
	logger   *slog.Logger
}

// Statically assert that *TaskPublisher implements the EventPublisher interface.
var _ ports.EventPublisher = (*TaskPublisher)(nil)

// NewTaskPublisher creates a publisher enqueueing onto queue
func NewTaskPublisher(client Enqueuer, queue string, maxRetry int, logger *slog.Logger) *TaskPublisher {
	if queue == "" {
		queue = "default"
	}
	return &TaskPublisher{
		client:   client,
		queue:    queue,
		maxRetry: maxRetry,
		logger:   logger.With(slog.String("component", "task_publisher")),
	}
}

// PublishCollectionPatched enqueues a collection:patched task
func (p *TaskPublisher) PublishCollectionPatched(ctx context.Context, event ports.CollectionPatchedEvent) error {
	task, err := NewCollectionPatchedTask(event)
	if err != nil {
		return err
	}

	info, err := p.client.EnqueueContext(ctx, task,
		asynq.Queue(p.queue),
		asynq.MaxRetry(p.maxRetry),
		asynq.Retention(24*time.Hour))
	if err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", TypeCollectionPatched, err)
	}

	p.logger.DebugContext(ctx, "collection patched task enqueued",
		slog.String("task_id", info.ID),
		slog.String("kind", event.Kind),
		slog.String("queue", info.Queue))

	return nil
}
