package models

import (
	"strings"
	"time"
)

// VisitorContact is the locally persisted intake record of a visitor device.
type VisitorContact struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Purpose string `json:"purpose"`
}

// HasContactInfo reports whether both name and phone were provided.
func (v *VisitorContact) HasContactInfo() bool {
	return v != nil && strings.TrimSpace(v.Name) != "" && strings.TrimSpace(v.Phone) != ""
}

// VisitorRecord is the document upserted into the external data service.
type VisitorRecord struct {
	DeviceID    string    `db:"device_id" json:"device_id" firestore:"device_id"`
	PrincipalID string    `db:"principal_id" json:"principal_id" firestore:"principal_id"`
	Name        string    `db:"name" json:"name" firestore:"name"`
	Phone       string    `db:"phone" json:"phone" firestore:"phone"`
	Purpose     string    `db:"purpose" json:"purpose" firestore:"purpose"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at" firestore:"updated_at"`
}
