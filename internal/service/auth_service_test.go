package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/college-portal-api/internal/models"
	appErrors "github.com/noah-isme/college-portal-api/pkg/errors"
)

func TestAuthServiceIssueAndValidate(t *testing.T) {
	svc := NewAuthService(nil, AuthConfig{Secret: "secret", Issuer: "portal"})
	token, expiresAt, err := svc.IssueToken(models.Principal{
		ID:      "staff-1",
		Role:    models.RoleNonTeaching,
		SubRole: models.SubRoleSecurity,
		Name:    "Ravi",
	})
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	principal := claims.Principal()
	assert.Equal(t, "staff-1", principal.ID)
	assert.Equal(t, models.RoleNonTeaching, principal.Role)
	assert.Equal(t, models.SubRoleSecurity, principal.SubRole)
	assert.Equal(t, "Ravi", principal.Name)
}

func TestAuthServiceRejectsWrongSecret(t *testing.T) {
	issuer := NewAuthService(nil, AuthConfig{Secret: "one"})
	verifier := NewAuthService(nil, AuthConfig{Secret: "two"})
	token, _, err := issuer.IssueToken(models.Principal{ID: "s-1", Role: models.RoleStudent})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceRejectsForeignIssuer(t *testing.T) {
	issuer := NewAuthService(nil, AuthConfig{Secret: "shared", Issuer: "elsewhere"})
	verifier := NewAuthService(nil, AuthConfig{Secret: "shared", Issuer: "portal"})
	token, _, err := issuer.IssueToken(models.Principal{ID: "s-1", Role: models.RoleStudent})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestAuthServiceRejectsUnknownRole(t *testing.T) {
	svc := NewAuthService(nil, AuthConfig{Secret: "secret"})
	token, _, err := svc.IssueToken(models.Principal{ID: "x", Role: models.Role("janitor")})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Status, appErrors.FromError(err).Status)
}

func TestAuthServiceRejectsExpiredToken(t *testing.T) {
	svc := NewAuthService(nil, AuthConfig{Secret: "secret"})
	claims := &models.PrincipalClaims{
		UserID: "s-1",
		Role:   models.RoleStudent,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.Error(t, err)
}
