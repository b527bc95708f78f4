package models

// WelcomePayload is the task payload for the account welcome email sent when
// an identity is provisioned during booking.
type WelcomePayload struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	SetupURL string `json:"setup_url,omitempty"`
}

// BookingSummaryPayload is the task payload for the post-payment booking
// summary email.
type BookingSummaryPayload struct {
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	ProviderName string `json:"provider_name"`
	ServiceName  string `json:"service_name"`
}

// ReminderPayload is the task payload for the 24h pre-session reminder.
type ReminderPayload struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}
