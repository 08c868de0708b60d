package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-portal-api/internal/dto"
	"github.com/noah-isme/college-portal-api/internal/middleware"
	"github.com/noah-isme/college-portal-api/internal/models"
	appErrors "github.com/noah-isme/college-portal-api/pkg/errors"
	"github.com/noah-isme/college-portal-api/pkg/response"
)

type notificationService interface {
	Push(ctx context.Context, principalID string, req dto.PushNotificationRequest) (*models.Notification, error)
	List(principalID string) dto.NotificationList
	MarkAllRead(principalID string) dto.NotificationList
}

// NotificationHandler exposes the notification center. Its routes are mounted behind middleware.JWT.
type NotificationHandler struct {
	service notificationService
}

// NewNotificationHandler builds a new handler.
func NewNotificationHandler(service notificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// List godoc
// @Summary List notifications
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	principal := principalFromContext(c)
	list := h.service.List(principal.ID)
	middleware.SetMeta(c, "unread", list.Unread)
	response.JSON(c, http.StatusOK, list.Items, middleware.ExtractMeta(c))
}

// Push godoc
// @Summary Add a notification
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.PushNotificationRequest true "Notification"
// @Success 201 {object} response.Envelope
// @Router /notifications [post]
func (h *NotificationHandler) Push(c *gin.Context) {
	principal := principalFromContext(c)
	var req dto.PushNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid notification payload"))
		return
	}
	item, err := h.service.Push(c.Request.Context(), principal.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// MarkRead godoc
// @Summary Open the notification surface
// @Description Marks every notification read and returns the list.
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /notifications/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	principal := principalFromContext(c)
	list := h.service.MarkAllRead(principal.ID)
	middleware.SetMeta(c, "unread", list.Unread)
	response.JSON(c, http.StatusOK, list.Items, middleware.ExtractMeta(c))
}
