package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/college-portal-api/internal/models"
)

func TestVisitorDocumentOmitsEmptyOptionalFields(t *testing.T) {
	doc := visitorDocument(models.VisitorRecord{DeviceID: "device-1", Name: "Asha", Phone: "9000000000"})

	assert.Equal(t, "device-1", doc["device_id"])
	assert.Equal(t, "visitor", doc["role"])
	assert.NotContains(t, doc, "purpose")
	assert.NotContains(t, doc, "principal_id")
	assert.IsType(t, time.Time{}, doc["updated_at"])
}

func TestVisitorDocumentKeepsProvidedFields(t *testing.T) {
	ts := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	doc := visitorDocument(models.VisitorRecord{
		DeviceID:    "device-1",
		PrincipalID: "visitor-9",
		Name:        "Asha",
		Phone:       "9000000000",
		Purpose:     "campus tour",
		UpdatedAt:   ts,
	})

	assert.Equal(t, "campus tour", doc["purpose"])
	assert.Equal(t, "visitor-9", doc["principal_id"])
	assert.Equal(t, ts, doc["updated_at"])
}
