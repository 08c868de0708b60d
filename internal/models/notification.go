package models

import "time"

// Notification is an ephemeral UI notice; only its read flag feeds the unread badge.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
