package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/college-portal-api/internal/dto"
	"github.com/noah-isme/college-portal-api/internal/models"
	appErrors "github.com/noah-isme/college-portal-api/pkg/errors"
)

// ProfileService shapes the profile page with locally merged fields applied.
type ProfileService struct {
	state  *StateService
	logger *zap.Logger
}

// NewProfileService constructs a ProfileService.
func NewProfileService(state *StateService, logger *zap.Logger) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{state: state, logger: logger}
}

// Profile returns the academic, guest or generic layout for principal.
func (s *ProfileService) Profile(ctx context.Context, principal *models.Principal, deviceID string) (*dto.ProfileView, error) {
	if principal == nil {
		return nil, appErrors.ErrUnauthorized
	}

	shadow, err := s.state.PrincipalShadow(ctx, deviceID, principal.ID)
	if err != nil {
		s.logger.Warn("principal shadow unavailable", zap.String("device_id", deviceID), zap.Error(err))
	}
	p := principal.WithShadow(shadow)

	view := &dto.ProfileView{
		Component:  profileFor(&p),
		ID:         p.ID,
		Role:       p.Role,
		SubRole:    p.SubRole,
		Name:       p.Name,
		Email:      p.Email,
		Phone:      p.Phone,
		Department: p.Department,
	}

	switch p.Role {
	case models.RoleStudent:
		view.Layout = dto.ProfileLayoutAcademic
		view.Academic = &dto.AcademicProfile{Year: p.Year, Div: p.Div, Sem: p.Sem, Gender: p.Gender}
	case models.RoleVisitor:
		view.Layout = dto.ProfileLayoutGuest
		view.Email = ""
		view.Department = ""
		visit := &dto.VisitProfile{}
		if contact, found, err := s.state.VisitorContact(ctx, deviceID); err == nil && found {
			visit.Purpose = contact.Purpose
			visit.HasContactInfo = contact.HasContactInfo()
		}
		view.Visit = visit
	default:
		view.Layout = dto.ProfileLayoutGeneric
	}
	return view, nil
}
