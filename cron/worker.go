package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"njeyali/config"
	"njeyali/models"
	"njeyali/services/notification"
	"njeyali/services/tasks"

	"github.com/hibiken/asynq"
)

// InitMailWorker runs the async mail worker in background.
func InitMailWorker(sender notification.Sender) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisMailQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeMailSend, handleMailTask(sender))

	// Start async worker with retry logic.
	go func() {
		log.Println("[MailWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[MailWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[MailWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleMailTask(sender notification.Sender) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.MailPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[MailWorker] invalid payload: %v", err)
			return err
		}

		if err := sender.Send(ctx, p.To, p.Template, p.Data); err != nil {
			log.Printf("[MailWorker] failed to send %s mail to %s: %v", p.Template, p.To, err)
			return err
		}
		return nil
	}
}
