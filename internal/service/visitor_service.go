package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/noah-isme/college-portal-api/internal/dto"
	"github.com/noah-isme/college-portal-api/internal/models"
	appErrors "github.com/noah-isme/college-portal-api/pkg/errors"
	"github.com/noah-isme/college-portal-api/pkg/jobs"
)

// VisitorSyncJobType tags queue jobs carrying a models.VisitorRecord.
const VisitorSyncJobType = "visitor.upsert"

// Visitor sync results reported to metrics.
const (
	visitorSyncOK      = "ok"
	visitorSyncFailed  = "failed"
	visitorSyncDropped = "dropped"
)

// VisitorDirectory is the external data service receiving visitor upserts.
type VisitorDirectory interface {
	UpsertVisitor(ctx context.Context, record models.VisitorRecord) error
}

// SyncDispatcher schedules background jobs without blocking.
type SyncDispatcher interface {
	TryEnqueue(job jobs.Job) error
}

// VisitorService runs the visitor onboarding gate.
type VisitorService struct {
	state      *StateService
	navigation *NavigationService
	queue      SyncDispatcher
	validator  *validator.Validate
	metrics    *MetricsService
	logger     *zap.Logger
	now        func() time.Time
}

// NewVisitorService constructs the onboarding gate. A nil queue disables background sync.
func NewVisitorService(state *StateService, navigation *NavigationService, queue SyncDispatcher, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *VisitorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VisitorService{
		state:      state,
		navigation: navigation,
		queue:      queue,
		validator:  validate,
		metrics:    metrics,
		logger:     logger,
		now:        time.Now,
	}
}

// SubmitContact stores the intake form, schedules the directory sync and moves the visitor home.
func (s *VisitorService) SubmitContact(ctx context.Context, principal *models.Principal, deviceID string, req dto.VisitorContactRequest) (*dto.NavigationState, error) {
	if principal == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if !principal.Is(models.RoleVisitor) {
		return nil, appErrors.ErrVisitorOnly
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Purpose = strings.TrimSpace(req.Purpose)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid visitor contact payload")
	}

	contact := models.VisitorContact{Name: req.Name, Phone: req.Phone, Purpose: req.Purpose}
	if err := s.state.SetVisitorContact(ctx, deviceID, contact); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store visitor contact")
	}

	if err := s.state.MergePrincipalShadow(ctx, deviceID, principal.ID, models.PrincipalShadow{Name: req.Name, Phone: req.Phone}); err != nil {
		s.logger.Warn("failed to merge principal shadow", zap.String("device_id", deviceID), zap.Error(err))
	}

	s.scheduleSync(models.VisitorRecord{
		DeviceID:    deviceID,
		PrincipalID: principal.ID,
		Name:        contact.Name,
		Phone:       contact.Phone,
		Purpose:     contact.Purpose,
		UpdatedAt:   s.now().UTC(),
	})

	return s.navigation.Navigate(ctx, principal, deviceID, models.PageVisitorHome)
}

// scheduleSync never blocks and never reports failure to the caller.
func (s *VisitorService) scheduleSync(record models.VisitorRecord) {
	if s.queue == nil {
		return
	}
	if err := s.queue.TryEnqueue(jobs.Job{Type: VisitorSyncJobType, Payload: record}); err != nil {
		s.metrics.RecordVisitorSync(visitorSyncDropped)
		s.logger.Warn("visitor sync not scheduled", zap.String("device_id", record.DeviceID), zap.Error(err))
	}
}

// Contact returns the stored intake record. Missing or unreadable records report no contact info.
func (s *VisitorService) Contact(ctx context.Context, deviceID string) dto.VisitorContactResponse {
	contact, found, err := s.state.VisitorContact(ctx, deviceID)
	if err != nil || !found {
		return dto.VisitorContactResponse{}
	}
	return dto.VisitorContactResponse{
		Name:           contact.Name,
		Phone:          contact.Phone,
		Purpose:        contact.Purpose,
		HasContactInfo: contact.HasContactInfo(),
	}
}

// VisitorSyncWorker bridges queue jobs to the visitor directory.
type VisitorSyncWorker struct {
	directory VisitorDirectory
	breaker   *gobreaker.CircuitBreaker
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewVisitorSyncWorker constructs a worker. breaker may be nil.
func NewVisitorSyncWorker(directory VisitorDirectory, breaker *gobreaker.CircuitBreaker, metrics *MetricsService, logger *zap.Logger) *VisitorSyncWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VisitorSyncWorker{directory: directory, breaker: breaker, metrics: metrics, logger: logger}
}

// Handle processes a queue job.
func (w *VisitorSyncWorker) Handle(ctx context.Context, job jobs.Job) error {
	record, ok := job.Payload.(models.VisitorRecord)
	if !ok {
		w.metrics.RecordVisitorSync(visitorSyncFailed)
		w.logger.Error("discarding visitor sync job with unexpected payload", zap.String("job_id", job.ID))
		return nil
	}

	upsert := func() (interface{}, error) {
		return nil, w.directory.UpsertVisitor(ctx, record)
	}
	var err error
	if w.breaker != nil {
		_, err = w.breaker.Execute(upsert)
	} else {
		_, err = upsert()
	}
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			w.logger.Debug("visitor directory unavailable", zap.String("device_id", record.DeviceID), zap.Error(err))
		}
		return fmt.Errorf("upsert visitor %s: %w", record.DeviceID, err)
	}

	w.metrics.RecordVisitorSync(visitorSyncOK)
	w.logger.Debug("visitor synced", zap.String("device_id", record.DeviceID), zap.Int("attempt", job.Attempt))
	return nil
}

// Dropped records a sync abandoned after its retries.
func (w *VisitorSyncWorker) Dropped(job jobs.Job, err error) {
	w.metrics.RecordVisitorSync(visitorSyncFailed)
	w.logger.Warn("visitor sync abandoned", zap.String("job_id", job.ID), zap.Error(err))
}
