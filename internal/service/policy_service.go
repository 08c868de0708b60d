package service

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/college-portal-api/internal/dto"
	"github.com/noah-isme/college-portal-api/internal/models"
	appErrors "github.com/noah-isme/college-portal-api/pkg/errors"
	"github.com/noah-isme/college-portal-api/pkg/export"
)

var policyHeaders = []string{"role", "sub_role", "page", "component", "outcome"}

type policyRenderer interface {
	ContentType() string
	Render(data export.Dataset, title string) ([]byte, error)
}

// PolicyService tabulates the render decision of every (role, sub-role, page) triple.
type PolicyService struct {
	navigation *NavigationService
	validator  *validator.Validate
	renderers  map[string]policyRenderer
	logger     *zap.Logger
	now        func() time.Time
}

// NewPolicyService constructs a PolicyService. Nil renderers fall back to the CSV and PDF exporters.
func NewPolicyService(navigation *NavigationService, validate *validator.Validate, logger *zap.Logger, csv, pdf policyRenderer) *PolicyService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &PolicyService{
		navigation: navigation,
		validator:  validate,
		renderers: map[string]policyRenderer{
			dto.PolicyFormatCSV: csv,
			dto.PolicyFormatPDF: pdf,
		},
		logger: logger,
		now:    time.Now,
	}
}

// Matrix resolves every triple, optionally narrowed to one role.
func (s *PolicyService) Matrix(query dto.AccessPolicyQuery) ([]dto.AccessPolicyEntry, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid access policy query")
	}

	pages := s.navigation.Registry().Pages()
	entries := make([]dto.AccessPolicyEntry, 0, len(models.Roles)*len(models.SubRoles)*len(pages))
	for _, role := range models.Roles {
		if query.Role != "" && string(role) != query.Role {
			continue
		}
		for _, sub := range models.SubRoles {
			principal := &models.Principal{ID: "policy", Role: role, SubRole: sub}
			for _, page := range pages {
				render := s.navigation.resolve(principal, page)
				entries = append(entries, dto.AccessPolicyEntry{
					Role:      role,
					SubRole:   sub,
					Page:      page,
					Component: render.Component,
					Outcome:   render.Outcome,
				})
			}
		}
	}
	return entries, nil
}

// Export renders the matrix as CSV or PDF.
func (s *PolicyService) Export(query dto.AccessPolicyQuery) (*dto.AccessPolicyFile, error) {
	entries, err := s.Matrix(query)
	if err != nil {
		return nil, err
	}
	renderer, ok := s.renderers[query.Format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", query.Format))
	}

	dataset := export.Dataset{Headers: policyHeaders, Rows: make([]map[string]string, 0, len(entries))}
	for _, entry := range entries {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"role":      string(entry.Role),
			"sub_role":  string(entry.SubRole),
			"page":      string(entry.Page),
			"component": string(entry.Component),
			"outcome":   string(entry.Outcome),
		})
	}

	body, err := renderer.Render(dataset, "Portal Access Policy")
	if err != nil {
		s.logger.Error("failed to render access policy", zap.String("format", query.Format), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render access policy")
	}

	return &dto.AccessPolicyFile{
		Filename:    s.filename(query),
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}

func (s *PolicyService) filename(query dto.AccessPolicyQuery) string {
	scope := "all"
	if query.Role != "" {
		scope = query.Role
	}
	return fmt.Sprintf("access_policy_%s_%s.%s", scope, s.now().UTC().Format("20060102_150405"), query.Format)
}
