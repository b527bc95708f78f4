package tasks

import (
	"encoding/json"
	"time"

	"comoencasa/models"

	"github.com/hibiken/asynq"
)

const (
	TypeWelcomeEmail    = "email:welcome"
	TypeBookingSummary  = "email:booking_summary"
	TypeSessionReminder = "email:reminder"
)

func NewWelcomeEmailTask(payload models.WelcomePayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeWelcomeEmail, b), nil
}

func NewBookingSummaryTask(payload models.BookingSummaryPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBookingSummary, b), nil
}

func NewSessionReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSessionReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}
