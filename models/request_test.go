package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataRoundTripWithOptionalFields(t *testing.T) {
	clientID := "u1"
	providerID := "t2"
	req := AppointmentRequest{
		CheckoutSessionID: "cs_1",
		ServiceID:         "svc1",
		ClientID:          &clientID,
		ProviderID:        &providerID,
		Date:              "2025-03-17",
		Time:              "10:00",
		FullName:          "María García",
		Email:             "maria@example.test",
		Phone:             "+34600000000",
		Notes:             "primera sesión",
	}

	m := req.ToMetadata()
	assert.Equal(t, MetadataSchemaVersion, m["schema_version"])

	got, err := AppointmentRequestFromMetadata("cs_1", m)
	require.NoError(t, err)
	assert.Equal(t, req, got)
}

func TestMetadataOmitsAbsentOptionals(t *testing.T) {
	req := AppointmentRequest{
		ServiceID: "svc1",
		Date:      "2025-03-17",
		Time:      "10:00",
		FullName:  "María García",
		Email:     "maria@example.test",
	}

	m := req.ToMetadata()
	assert.NotContains(t, m, "client_id")
	assert.NotContains(t, m, "therapist_id")
	assert.NotContains(t, m, "phone")
	assert.NotContains(t, m, "notes")

	got, err := AppointmentRequestFromMetadata("cs_2", m)
	require.NoError(t, err)
	assert.Nil(t, got.ClientID)
	assert.Nil(t, got.ProviderID)
}

func TestMetadataRejectsWrongSchemaVersion(t *testing.T) {
	m := map[string]string{
		"schema_version": "0",
		"service_id":     "svc1",
		"booking_date":   "2025-03-17",
		"booking_time":   "10:00",
		"full_name":      "María García",
		"email":          "maria@example.test",
	}

	_, err := AppointmentRequestFromMetadata("cs_3", m)
	assert.ErrorContains(t, err, "schema version")
}

func TestMetadataRejectsMissingRequiredFields(t *testing.T) {
	base := map[string]string{
		"schema_version": MetadataSchemaVersion,
		"service_id":     "svc1",
		"booking_date":   "2025-03-17",
		"booking_time":   "10:00",
		"full_name":      "María García",
		"email":          "maria@example.test",
	}

	for _, missing := range []string{"service_id", "booking_date", "booking_time", "full_name", "email"} {
		m := make(map[string]string, len(base))
		for k, v := range base {
			m[k] = v
		}
		delete(m, missing)

		_, err := AppointmentRequestFromMetadata("cs_4", m)
		assert.Error(t, err, "expected rejection without %s", missing)
	}
}

func TestMetadataRejectsMalformedDateAndTime(t *testing.T) {
	m := map[string]string{
		"schema_version": MetadataSchemaVersion,
		"service_id":     "svc1",
		"booking_date":   "17/03/2025",
		"booking_time":   "10:00",
		"full_name":      "María García",
		"email":          "maria@example.test",
	}
	_, err := AppointmentRequestFromMetadata("cs_5", m)
	assert.ErrorContains(t, err, "booking_date")

	m["booking_date"] = "2025-03-17"
	m["booking_time"] = "10am"
	_, err = AppointmentRequestFromMetadata("cs_5", m)
	assert.ErrorContains(t, err, "booking_time")
}

func TestStartAtIsUTC(t *testing.T) {
	req := AppointmentRequest{Date: "2025-03-17", Time: "10:00"}

	start, err := req.StartAt()
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2025, 3, 17, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.UTC, start.Location())
}
