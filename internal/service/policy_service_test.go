package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/college-portal-api/internal/dto"
	"github.com/noah-isme/college-portal-api/internal/models"
	appErrors "github.com/noah-isme/college-portal-api/pkg/errors"
	"github.com/noah-isme/college-portal-api/pkg/export"
)

type failingRenderer struct{}

func (failingRenderer) ContentType() string { return "application/pdf" }

func (failingRenderer) Render(export.Dataset, string) ([]byte, error) {
	return nil, errors.New("font missing")
}

func newPolicyFixture() *PolicyService {
	nav, _ := newNavigationFixture(newStateStoreStub())
	svc := NewPolicyService(nav, nil, nil, nil, failingRenderer{})
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC) }
	return svc
}

func TestPolicyMatrixCoversEveryTriple(t *testing.T) {
	svc := newPolicyFixture()
	entries, err := svc.Matrix(dto.AccessPolicyQuery{})
	require.NoError(t, err)

	pages := DefaultPageRegistry().Pages()
	assert.Len(t, entries, len(models.Roles)*len(models.SubRoles)*len(pages))
	for _, entry := range entries {
		assert.NotEmpty(t, entry.Component)
		assert.NotEmpty(t, entry.Outcome)
	}
}

func TestPolicyMatrixKeepsInlineDenialPolicy(t *testing.T) {
	svc := newPolicyFixture()
	entries, err := svc.Matrix(dto.AccessPolicyQuery{Role: string(models.RoleStudent)})
	require.NoError(t, err)

	var denials, fallbacks int
	for _, entry := range entries {
		assert.Equal(t, models.RoleStudent, entry.Role)
		if entry.SubRole != models.SubRoleNone {
			continue
		}
		switch entry.Page {
		case models.PageCourseManagement, models.PageDocumentManagement:
			assert.Equal(t, models.OutcomeInlineDenial, entry.Outcome)
			denials++
		case models.PageUserManagement:
			assert.Equal(t, models.OutcomeFallback, entry.Outcome)
			fallbacks++
		}
	}
	assert.Equal(t, 2, denials)
	assert.Equal(t, 1, fallbacks)
}

func TestPolicyMatrixVisitorIsContained(t *testing.T) {
	svc := newPolicyFixture()
	entries, err := svc.Matrix(dto.AccessPolicyQuery{Role: string(models.RoleVisitor)})
	require.NoError(t, err)
	for _, entry := range entries {
		if VisitorAllowed(entry.Page) {
			assert.NotEqual(t, models.OutcomeAccessRestricted, entry.Outcome, entry.Page)
		} else {
			assert.Equal(t, models.OutcomeAccessRestricted, entry.Outcome, entry.Page)
		}
	}
}

func TestPolicyMatrixRejectsUnknownRole(t *testing.T) {
	svc := newPolicyFixture()
	_, err := svc.Matrix(dto.AccessPolicyQuery{Role: "janitor"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestPolicyExportCSV(t *testing.T) {
	svc := newPolicyFixture()
	file, err := svc.Export(dto.AccessPolicyQuery{Role: string(models.RoleAdmin), Format: dto.PolicyFormatCSV})
	require.NoError(t, err)

	assert.Equal(t, "access_policy_admin_20240301_080000.csv", file.Filename)
	assert.Contains(t, file.ContentType, "text/csv")
	lines := strings.Split(strings.TrimSpace(string(file.Body)), "\n")
	assert.Equal(t, "role,sub_role,page,component,outcome", lines[0])
	assert.Contains(t, string(file.Body), "admin,,financial-admin,financial-admin,rendered")
}

func TestPolicyExportRendererFailure(t *testing.T) {
	svc := newPolicyFixture()
	_, err := svc.Export(dto.AccessPolicyQuery{Format: dto.PolicyFormatPDF})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestPolicyExportRequiresFileFormat(t *testing.T) {
	svc := newPolicyFixture()
	_, err := svc.Export(dto.AccessPolicyQuery{Format: dto.PolicyFormatJSON})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
