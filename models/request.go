package models

import (
	"fmt"
	"time"
)

// MetadataSchemaVersion is stamped into checkout session metadata so the
// webhook can reject payloads written by an incompatible frontend build.
const MetadataSchemaVersion = "1"

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// AppointmentRequest is the transient booking intent carried from checkout
// creation through the payment processor and back into the provisioning
// workflow. It is never persisted as-is.
//
// ClientID is set when the buyer was already authenticated at checkout time;
// ProviderID is set only when the buyer picked a specific therapist. A nil
// ProviderID means auto-assignment.
type AppointmentRequest struct {
	CheckoutSessionID string
	ServiceID         string
	ClientID          *string
	ProviderID        *string
	Date              string // "2006-01-02"
	Time              string // "15:04"
	FullName          string
	Email             string
	Phone             string
	Notes             string
}

// StartAt combines the request's date and time into a UTC start timestamp.
func (r AppointmentRequest) StartAt() (time.Time, error) {
	return time.ParseInLocation(dateLayout+" "+timeLayout, r.Date+" "+r.Time, time.UTC)
}

// ToMetadata flattens the request into the string map Stripe allows on a
// checkout session. Optional fields are simply omitted.
func (r AppointmentRequest) ToMetadata() map[string]string {
	m := map[string]string{
		"schema_version": MetadataSchemaVersion,
		"service_id":     r.ServiceID,
		"booking_date":   r.Date,
		"booking_time":   r.Time,
		"full_name":      r.FullName,
		"email":          r.Email,
	}
	if r.ClientID != nil {
		m["client_id"] = *r.ClientID
	}
	if r.ProviderID != nil {
		m["therapist_id"] = *r.ProviderID
	}
	if r.Phone != "" {
		m["phone"] = r.Phone
	}
	if r.Notes != "" {
		m["notes"] = r.Notes
	}
	return m
}

// AppointmentRequestFromMetadata validates and rebuilds a request from the
// metadata bag attached to a completed checkout session.
func AppointmentRequestFromMetadata(sessionID string, m map[string]string) (AppointmentRequest, error) {
	req := AppointmentRequest{CheckoutSessionID: sessionID}

	if v := m["schema_version"]; v != MetadataSchemaVersion {
		return req, fmt.Errorf("unsupported metadata schema version %q", v)
	}
	for _, key := range []string{"service_id", "booking_date", "booking_time", "full_name", "email"} {
		if m[key] == "" {
			return req, fmt.Errorf("checkout metadata missing required field %q", key)
		}
	}
	if _, err := time.Parse(dateLayout, m["booking_date"]); err != nil {
		return req, fmt.Errorf("invalid booking_date %q: %w", m["booking_date"], err)
	}
	if _, err := time.Parse(timeLayout, m["booking_time"]); err != nil {
		return req, fmt.Errorf("invalid booking_time %q: %w", m["booking_time"], err)
	}

	req.ServiceID = m["service_id"]
	req.Date = m["booking_date"]
	req.Time = m["booking_time"]
	req.FullName = m["full_name"]
	req.Email = m["email"]
	req.Phone = m["phone"]
	req.Notes = m["notes"]

	if v, ok := m["client_id"]; ok && v != "" {
		req.ClientID = &v
	}
	if v, ok := m["therapist_id"]; ok && v != "" {
		req.ProviderID = &v
	}
	return req, nil
}
