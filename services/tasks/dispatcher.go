package tasks

import (
	"context"
	"fmt"
	"time"

	"comoencasa/models"

	"github.com/hibiken/asynq"
)

// Dispatcher enqueues notification work. The provisioning workflow talks to
// this interface so email delivery stays out of the payment-confirmation
// request path.
type Dispatcher interface {
	DispatchWelcome(ctx context.Context, p models.WelcomePayload) error
	DispatchBookingSummary(ctx context.Context, p models.BookingSummaryPayload) error
	DispatchReminder(ctx context.Context, p models.ReminderPayload, fireAt time.Time) error
}

// AsynqDispatcher enqueues tasks onto the shared Redis-backed queue.
type AsynqDispatcher struct {
	Client *asynq.Client
}

// NewAsynqDispatcher wraps an asynq client.
func NewAsynqDispatcher(client *asynq.Client) *AsynqDispatcher {
	return &AsynqDispatcher{Client: client}
}

func (d *AsynqDispatcher) DispatchWelcome(ctx context.Context, p models.WelcomePayload) error {
	task, err := NewWelcomeEmailTask(p)
	if err != nil {
		return fmt.Errorf("failed to build welcome task: %w", err)
	}
	if _, err := d.Client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue welcome task: %w", err)
	}
	return nil
}

func (d *AsynqDispatcher) DispatchBookingSummary(ctx context.Context, p models.BookingSummaryPayload) error {
	task, err := NewBookingSummaryTask(p)
	if err != nil {
		return fmt.Errorf("failed to build booking summary task: %w", err)
	}
	if _, err := d.Client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue booking summary task: %w", err)
	}
	return nil
}

func (d *AsynqDispatcher) DispatchReminder(ctx context.Context, p models.ReminderPayload, fireAt time.Time) error {
	task, opts, err := NewSessionReminderTask(p, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := d.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder task: %w", err)
	}
	return nil
}
