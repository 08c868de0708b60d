package dto

import "github.com/noah-isme/college-portal-api/internal/models"

// PushNotificationRequest adds a notice to the signed-in principal's list.
type PushNotificationRequest struct {
	Message string `json:"message" validate:"required,max=500"`
}

// NotificationList is the notification surface payload.
type NotificationList struct {
	Items  []models.Notification `json:"items"`
	Unread int                   `json:"unread"`
}
