package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"comoencasa/models"
	"comoencasa/services/notification"
	"comoencasa/services/tasks"
	"comoencasa/utils"

	"github.com/hibiken/asynq"
)

// InitEmailWorker runs the async email worker in background. Delivery retries
// belong to asynq; the booking workflow itself never waits on an email.
func InitEmailWorker(notifSvc notification.NotificationService) {
	srv := asynq.NewServer(
		utils.QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeWelcomeEmail, handleWelcomeTask(notifSvc))
	mux.HandleFunc(tasks.TypeBookingSummary, handleBookingSummaryTask(notifSvc))
	mux.HandleFunc(tasks.TypeSessionReminder, handleReminderTask(notifSvc))

	// Start async worker with retry logic.
	go func() {
		log.Println("[EmailWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[EmailWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[EmailWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleWelcomeTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.WelcomePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[EmailWorker] invalid welcome payload: %v", err)
			return err
		}
		return notifSvc.SendWelcome(ctx, p)
	}
}

func handleBookingSummaryTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.BookingSummaryPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[EmailWorker] invalid booking summary payload: %v", err)
			return err
		}
		return notifSvc.SendBookingSummary(ctx, p)
	}
}

func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[EmailWorker] invalid reminder payload: %v", err)
			return err
		}
		return notifSvc.SendReminder(ctx, p)
	}
}
