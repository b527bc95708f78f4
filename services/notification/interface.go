package notification

import (
	"context"

	"comoencasa/models"
)

// NotificationService sends the engine's outbound emails. Every method is
// best-effort from the booking workflow's point of view: failures are logged
// by callers, never propagated into the provisioning result.
type NotificationService interface {
	SendWelcome(ctx context.Context, p models.WelcomePayload) error
	SendBookingSummary(ctx context.Context, p models.BookingSummaryPayload) error
	SendReminder(ctx context.Context, p models.ReminderPayload) error
}
