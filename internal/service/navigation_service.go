package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/college-portal-api/internal/dto"
	"github.com/noah-isme/college-portal-api/internal/models"
	appErrors "github.com/noah-isme/college-portal-api/pkg/errors"
)

// UnreadCounter reports the notification badge for a principal.
type UnreadCounter interface {
	UnreadCount(principalID string) int
}

// NavigationService is the role-based navigation state machine.
type NavigationService struct {
	state         *StateService
	registry      *PageRegistry
	notifications UnreadCounter
	metrics       *MetricsService
	logger        *zap.Logger
}

// NewNavigationService wires the router. A nil registry uses DefaultPageRegistry.
func NewNavigationService(state *StateService, registry *PageRegistry, notifications UnreadCounter, metrics *MetricsService, logger *zap.Logger) *NavigationService {
	if registry == nil {
		registry = DefaultPageRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NavigationService{
		state:         state,
		registry:      registry,
		notifications: notifications,
		metrics:       metrics,
		logger:        logger,
	}
}

// Initialize returns the persisted page of the device, defaulting to the dashboard.
func (s *NavigationService) Initialize(ctx context.Context, deviceID string) models.PageID {
	page, found, err := s.state.CurrentPage(ctx, deviceID)
	if err != nil {
		s.logger.Warn("current page unavailable, starting at dashboard", zap.String("device_id", deviceID), zap.Error(err))
		return models.PageDashboard
	}
	if !found || page == "" {
		return models.PageDashboard
	}
	return page
}

// RequestPageChange persists page without any permission check.
func (s *NavigationService) RequestPageChange(ctx context.Context, deviceID string, page models.PageID) error {
	if err := s.state.SetCurrentPage(ctx, deviceID, page); err != nil {
		return appErrors.WrapAs(err, appErrors.ErrStateStore, "failed to persist current page")
	}
	return nil
}

// Reconcile enforces the visitor gate and role-switch cleanup on the persisted page.
func (s *NavigationService) Reconcile(ctx context.Context, principal *models.Principal, deviceID string) (models.PageID, error) {
	page := s.Initialize(ctx, deviceID)
	if principal == nil {
		return page, nil
	}
	page, _, err := s.reconcile(ctx, principal, deviceID, page)
	return page, err
}

func (s *NavigationService) reconcile(ctx context.Context, principal *models.Principal, deviceID string, page models.PageID) (models.PageID, *models.NavigationTransition, error) {
	var target models.PageID
	var reason models.TransitionReason

	if principal.Is(models.RoleVisitor) {
		switch {
		case s.needsVisitorInfo(ctx, deviceID) && page != models.PageVisitorInfo:
			target, reason = models.PageVisitorInfo, models.ReasonVisitorNeedsInfo
		case !VisitorAllowed(page):
			target, reason = models.PageVisitorHome, models.ReasonVisitorContained
		}
	} else if VisitorOnly(page) {
		target, reason = models.PageDashboard, models.ReasonRoleSwitchCleanup
	}

	if target == "" || target == page {
		return page, nil, nil
	}

	if err := s.RequestPageChange(ctx, deviceID, target); err != nil {
		return page, nil, err
	}
	s.metrics.RecordRedirect(reason)
	s.logger.Debug("navigation redirected",
		zap.String("device_id", deviceID),
		zap.String("from", string(page)),
		zap.String("to", string(target)),
		zap.String("reason", string(reason)),
	)
	return target, &models.NavigationTransition{From: page, To: target, Reason: reason}, nil
}

// needsVisitorInfo fails safe: unreadable or incomplete records require onboarding.
func (s *NavigationService) needsVisitorInfo(ctx context.Context, deviceID string) bool {
	contact, found, err := s.state.VisitorContact(ctx, deviceID)
	if err != nil || !found {
		return true
	}
	return !contact.HasContactInfo()
}

// Resolve maps (principal, page) to a render decision. It is total and never fails.
func (s *NavigationService) Resolve(principal *models.Principal, page models.PageID) models.PageRender {
	render := s.resolve(principal, page)
	s.metrics.RecordResolution(render.Outcome)
	return render
}

func (s *NavigationService) resolve(principal *models.Principal, page models.PageID) models.PageRender {
	if principal == nil {
		return models.PageRender{Page: page, Component: models.ComponentLogin, Outcome: models.OutcomeLogin}
	}
	if principal.Is(models.RoleVisitor) && !VisitorAllowed(page) {
		return models.PageRender{
			Page:      page,
			Component: models.ComponentAccessRestricted,
			Outcome:   models.OutcomeAccessRestricted,
			Message:   accessRestrictedMessage,
			Action:    &models.PageAction{Label: visitorHomeActionLabel, Page: models.PageVisitorHome},
		}
	}
	return s.registry.Dispatch(principal, page)
}

// State runs Initialize, Reconcile and Resolve and returns the shell payload.
func (s *NavigationService) State(ctx context.Context, principal *models.Principal, deviceID string) (*dto.NavigationState, error) {
	if principal == nil {
		return &dto.NavigationState{
			DeviceID:     deviceID,
			Render:       s.Resolve(nil, ""),
			AllowedPages: []models.PageID{},
		}, nil
	}

	page := s.Initialize(ctx, deviceID)
	page, transition, err := s.reconcile(ctx, principal, deviceID, page)
	if err != nil {
		return nil, err
	}

	state := &dto.NavigationState{
		DeviceID:     deviceID,
		CurrentPage:  page,
		Render:       s.Resolve(principal, page),
		AllowedPages: s.AllowedPages(principal),
	}
	if transition != nil {
		state.Transitions = append(state.Transitions, *transition)
	}
	if principal.Is(models.RoleVisitor) && s.needsVisitorInfo(ctx, deviceID) {
		state.NeedsVisitorInfo = true
		state.AllowedPages = []models.PageID{models.PageVisitorInfo}
	}
	if s.notifications != nil {
		state.UnreadNotifications = s.notifications.UnreadCount(principal.ID)
	}
	return state, nil
}

// Navigate persists the requested page and returns the reconciled state.
func (s *NavigationService) Navigate(ctx context.Context, principal *models.Principal, deviceID string, page models.PageID) (*dto.NavigationState, error) {
	if principal == nil {
		return s.State(ctx, nil, deviceID)
	}
	if err := s.RequestPageChange(ctx, deviceID, page); err != nil {
		return nil, err
	}
	return s.State(ctx, principal, deviceID)
}

// Logout clears the persisted page so the next session starts at the dashboard.
func (s *NavigationService) Logout(ctx context.Context, deviceID string) error {
	if err := s.state.ClearCurrentPage(ctx, deviceID); err != nil {
		return appErrors.WrapAs(err, appErrors.ErrStateStore, "failed to clear current page")
	}
	return nil
}

// AllowedPages lists the catalogue pages reachable by principal.
func (s *NavigationService) AllowedPages(principal *models.Principal) []models.PageID {
	return s.registry.AllowedPages(principal)
}

// Registry exposes the page table backing the router.
func (s *NavigationService) Registry() *PageRegistry {
	return s.registry
}
