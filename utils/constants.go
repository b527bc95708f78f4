package utils

import "time"

// SessionDuration is the length of every therapy session. All bookings are
// normalized to this length regardless of the purchased service's declared
// duration.
const SessionDuration = 50 * time.Minute

// SlotGranularity is the spacing between candidate appointment start times
// when enumerating a provider's weekly availability windows.
const SlotGranularity = time.Hour

// DateLayout is the wire format for calendar dates ("2025-03-17").
const DateLayout = "2006-01-02"

// TimeLayout is the wire format for times of day ("09:00").
const TimeLayout = "15:04"

// SetupLinkTTL bounds how long an account-setup link stays valid.
const SetupLinkTTL = 48 * time.Hour

// ReminderLeadTime is how far before a session the reminder email fires.
const ReminderLeadTime = 24 * time.Hour
