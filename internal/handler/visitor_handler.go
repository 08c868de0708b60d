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

type visitorService interface {
	SubmitContact(ctx context.Context, principal *models.Principal, deviceID string, req dto.VisitorContactRequest) (*dto.NavigationState, error)
	Contact(ctx context.Context, deviceID string) dto.VisitorContactResponse
}

// VisitorHandler exposes the visitor intake form.
type VisitorHandler struct {
	service visitorService
}

// NewVisitorHandler builds a new handler.
func NewVisitorHandler(service visitorService) *VisitorHandler {
	return &VisitorHandler{service: service}
}

// Contact godoc
// @Summary Stored visitor contact for this device
// @Tags Visitor
// @Produce json
// @Param X-Device-ID header string false "Device identifier"
// @Success 200 {object} response.Envelope
// @Router /visitor/contact [get]
func (h *VisitorHandler) Contact(c *gin.Context) {
	deviceID, ok := deviceFromContext(c)
	if !ok {
		return
	}
	response.JSON(c, http.StatusOK, h.service.Contact(c.Request.Context(), deviceID), middleware.ExtractMeta(c))
}

// Submit godoc
// @Summary Submit visitor contact details
// @Description Persists the intake form, schedules a best-effort directory sync and moves the visitor to the visitor home page.
// @Tags Visitor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.VisitorContactRequest true "Visitor contact"
// @Success 200 {object} response.Envelope
// @Router /visitor/contact [post]
func (h *VisitorHandler) Submit(c *gin.Context) {
	deviceID, ok := deviceFromContext(c)
	if !ok {
		return
	}
	var req dto.VisitorContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid visitor contact payload"))
		return
	}

	state, err := h.service.SubmitContact(c.Request.Context(), principalFromContext(c), deviceID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state, middleware.ExtractMeta(c))
}
