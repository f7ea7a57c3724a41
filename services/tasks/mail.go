package tasks

import (
	"encoding/json"

	"njeyali/models"

	"github.com/hibiken/asynq"
)

const TypeMailSend = "mail:send"

func NewMailTask(payload models.MailPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeMailSend, b, asynq.MaxRetry(3)), nil
}
