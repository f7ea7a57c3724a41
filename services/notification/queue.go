package notification

import (
	"context"
	"fmt"

	"njeyali/config"
	"njeyali/models"
	"njeyali/services/tasks"

	"github.com/hibiken/asynq"
)

// QueueSender enqueues mail onto the Redis-backed task queue instead of
// sending inline, so a slow or flapping SMTP server never adds latency to
// the request path. The mail worker drains the queue.
type QueueSender struct {
	client *asynq.Client
}

func NewQueueSender() *QueueSender {
	return &QueueSender{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisMailQueueDB,
		}),
	}
}

func (s *QueueSender) Send(ctx context.Context, to, template string, data map[string]string) error {
	task, err := tasks.NewMailTask(models.MailPayload{
		To:       to,
		Template: template,
		Data:     data,
	})
	if err != nil {
		return fmt.Errorf("failed to build mail task: %w", err)
	}
	if _, err := s.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue %s mail for %s: %w", template, to, err)
	}
	return nil
}

func (s *QueueSender) Close() error {
	return s.client.Close()
}
