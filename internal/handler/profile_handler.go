package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-portal-api/internal/dto"
	"github.com/noah-isme/college-portal-api/internal/models"
	"github.com/noah-isme/college-portal-api/pkg/response"
)

type profileService interface {
	Profile(ctx context.Context, principal *models.Principal, deviceID string) (*dto.ProfileView, error)
}

// ProfileHandler serves the role-shaped profile page behind middleware.JWT.
type ProfileHandler struct {
	service profileService
}

// NewProfileHandler builds a new handler.
func NewProfileHandler(service profileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Get godoc
// @Summary Profile of the signed-in principal
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	principal := principalFromContext(c)
	deviceID, ok := deviceFromContext(c)
	if !ok {
		return
	}
	view, err := h.service.Profile(c.Request.Context(), principal, deviceID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}
