package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"meetcal/config"
	"meetcal/models"
)

const TypeSendReminder = "reminder:send"

// NewReminderTask builds a reminder task scheduled to fire at fireAt.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// NewReminderQueueClient returns an asynq client bound to the reminder queue.
func NewReminderQueueClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
}
