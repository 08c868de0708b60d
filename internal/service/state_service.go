package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/college-portal-api/internal/models"
)

// StateStore abstracts the durable key-value store holding per-device local state.
type StateStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Clear(ctx context.Context, key string) error
}

const (
	currentPageKey     = "current_page"
	visitorContactKey  = "visitor_contact"
	principalShadowKey = "principal_shadow"
)

// StateService maps navigation concepts onto StateStore keys and records store metrics.
type StateService struct {
	store   StateStore
	metrics *MetricsService
	logger  *zap.Logger
}

// NewStateService constructs a state service.
func NewStateService(store StateStore, metrics *MetricsService, logger *zap.Logger) *StateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StateService{store: store, metrics: metrics, logger: logger}
}

// CurrentPage returns the persisted page for a device.
func (s *StateService) CurrentPage(ctx context.Context, deviceID string) (models.PageID, bool, error) {
	value, found, err := s.get(ctx, deviceKey(deviceID, currentPageKey))
	if err != nil || !found {
		return "", false, err
	}
	return models.PageID(value), true, nil
}

// SetCurrentPage persists the page for a device.
func (s *StateService) SetCurrentPage(ctx context.Context, deviceID string, page models.PageID) error {
	return s.set(ctx, deviceKey(deviceID, currentPageKey), string(page))
}

// ClearCurrentPage drops the persisted page for a device.
func (s *StateService) ClearCurrentPage(ctx context.Context, deviceID string) error {
	start := time.Now()
	err := s.store.Clear(ctx, deviceKey(deviceID, currentPageKey))
	s.metrics.ObserveStateStore("clear", time.Since(start))
	if err != nil {
		s.logger.Warn("state clear failed", zap.String("device_id", deviceID), zap.Error(err))
	}
	return err
}

// VisitorContact loads the visitor intake record. Missing or malformed records report found=false.
func (s *StateService) VisitorContact(ctx context.Context, deviceID string) (models.VisitorContact, bool, error) {
	var contact models.VisitorContact
	found, err := s.getJSON(ctx, deviceKey(deviceID, visitorContactKey), &contact)
	if err != nil || !found {
		return models.VisitorContact{}, false, err
	}
	return contact, true, nil
}

// SetVisitorContact overwrites the visitor intake record.
func (s *StateService) SetVisitorContact(ctx context.Context, deviceID string, contact models.VisitorContact) error {
	return s.setJSON(ctx, deviceKey(deviceID, visitorContactKey), contact)
}

// PrincipalShadow loads the locally merged principal fields.
func (s *StateService) PrincipalShadow(ctx context.Context, deviceID, principalID string) (*models.PrincipalShadow, error) {
	var shadow models.PrincipalShadow
	found, err := s.getJSON(ctx, shadowKey(deviceID, principalID), &shadow)
	if err != nil || !found {
		return nil, err
	}
	return &shadow, nil
}

// MergePrincipalShadow merges non-empty fields into the stored shadow.
func (s *StateService) MergePrincipalShadow(ctx context.Context, deviceID, principalID string, update models.PrincipalShadow) error {
	current, err := s.PrincipalShadow(ctx, deviceID, principalID)
	if err != nil {
		return err
	}
	merged := models.PrincipalShadow{}
	if current != nil {
		merged = *current
	}
	if update.Name != "" {
		merged.Name = update.Name
	}
	if update.Phone != "" {
		merged.Phone = update.Phone
	}
	return s.setJSON(ctx, shadowKey(deviceID, principalID), merged)
}

func (s *StateService) get(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	value, found, err := s.store.Get(ctx, key)
	s.metrics.ObserveStateStore("get", time.Since(start))
	if err != nil {
		s.logger.Warn("state get failed", zap.String("key", key), zap.Error(err))
		return "", false, err
	}
	return value, found, nil
}

func (s *StateService) set(ctx context.Context, key, value string) error {
	start := time.Now()
	err := s.store.Set(ctx, key, value)
	s.metrics.ObserveStateStore("set", time.Since(start))
	if err != nil {
		s.logger.Warn("state set failed", zap.String("key", key), zap.Error(err))
	}
	return err
}

// getJSON treats undecodable payloads as absent.
func (s *StateService) getJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, found, err := s.get(ctx, key)
	if err != nil || !found {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		s.logger.Warn("discarding malformed state value", zap.String("key", key), zap.Error(err))
		return false, nil
	}
	return true, nil
}

func (s *StateService) setJSON(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal state value for %s: %w", key, err)
	}
	return s.set(ctx, key, string(payload))
}

func deviceKey(deviceID, name string) string {
	return deviceID + ":" + name
}

func shadowKey(deviceID, principalID string) string {
	return deviceID + ":" + principalShadowKey + ":" + principalID
}
