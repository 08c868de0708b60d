package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/college-portal-api/internal/dto"
	"github.com/noah-isme/college-portal-api/internal/models"
	appErrors "github.com/noah-isme/college-portal-api/pkg/errors"
)

const defaultNotificationLimit = 50

// NotificationService keeps ephemeral per-principal notices in process memory.
type NotificationService struct {
	mu        sync.Mutex
	items     map[string][]models.Notification
	limit     int
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time
}

// NewNotificationService constructs the notification center. limit caps the list per principal.
func NewNotificationService(limit int, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *NotificationService {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		items:     make(map[string][]models.Notification),
		limit:     limit,
		validator: validate,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// Push prepends a new unread notice for principalID.
func (s *NotificationService) Push(_ context.Context, principalID string, req dto.PushNotificationRequest) (*models.Notification, error) {
	req.Message = strings.TrimSpace(req.Message)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid notification payload")
	}

	item := models.Notification{
		ID:        uuid.NewString(),
		Message:   req.Message,
		CreatedAt: s.now().UTC(),
	}

	s.mu.Lock()
	list := append([]models.Notification{item}, s.items[principalID]...)
	delta := 1
	if len(list) > s.limit {
		for _, dropped := range list[s.limit:] {
			if !dropped.Read {
				delta--
			}
		}
		list = list[:s.limit]
	}
	s.items[principalID] = list
	s.mu.Unlock()

	s.metrics.AddUnreadNotifications(delta)
	return &item, nil
}

// List returns the notices of principalID, newest first.
func (s *NotificationService) List(principalID string) dto.NotificationList {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.items[principalID]
	items := make([]models.Notification, len(list))
	copy(items, list)
	return dto.NotificationList{Items: items, Unread: countUnread(list)}
}

// MarkAllRead flags every notice as read, as happens when the surface is opened.
func (s *NotificationService) MarkAllRead(principalID string) dto.NotificationList {
	s.mu.Lock()
	list := s.items[principalID]
	cleared := 0
	for i := range list {
		if !list[i].Read {
			list[i].Read = true
			cleared++
		}
	}
	items := make([]models.Notification, len(list))
	copy(items, list)
	s.mu.Unlock()

	s.metrics.AddUnreadNotifications(-cleared)
	return dto.NotificationList{Items: items, Unread: 0}
}

// UnreadCount feeds the notification badge.
func (s *NotificationService) UnreadCount(principalID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return countUnread(s.items[principalID])
}

// Clear discards the notices of principalID when the session ends.
func (s *NotificationService) Clear(principalID string) {
	s.mu.Lock()
	unread := countUnread(s.items[principalID])
	delete(s.items, principalID)
	s.mu.Unlock()

	s.metrics.AddUnreadNotifications(-unread)
	s.logger.Debug("notifications cleared", zap.String("principal_id", principalID))
}

func countUnread(list []models.Notification) int {
	unread := 0
	for _, item := range list {
		if !item.Read {
			unread++
		}
	}
	return unread
}
