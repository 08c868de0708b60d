package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/college-portal-api/internal/dto"
	"github.com/noah-isme/college-portal-api/internal/middleware"
	"github.com/noah-isme/college-portal-api/internal/models"
	appErrors "github.com/noah-isme/college-portal-api/pkg/errors"
	"github.com/noah-isme/college-portal-api/pkg/response"
)

type navigationService interface {
	State(ctx context.Context, principal *models.Principal, deviceID string) (*dto.NavigationState, error)
	Navigate(ctx context.Context, principal *models.Principal, deviceID string, page models.PageID) (*dto.NavigationState, error)
	Logout(ctx context.Context, deviceID string) error
	AllowedPages(principal *models.Principal) []models.PageID
}

type sessionCleaner interface {
	Clear(principalID string)
}

// NavigationHandler exposes the portal shell's navigation endpoints.
type NavigationHandler struct {
	service   navigationService
	sessions  sessionCleaner
	validator *validator.Validate
}

// NewNavigationHandler builds a new handler. sessions may be nil.
func NewNavigationHandler(service navigationService, sessions sessionCleaner, validate *validator.Validate) *NavigationHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &NavigationHandler{service: service, sessions: sessions, validator: validate}
}

// State godoc
// @Summary Current navigation state
// @Description Reconciles the persisted page with the signed-in principal and returns the render decision. Anonymous callers receive the login component.
// @Tags Navigation
// @Produce json
// @Param X-Device-ID header string false "Device identifier"
// @Success 200 {object} response.Envelope
// @Router /navigation [get]
func (h *NavigationHandler) State(c *gin.Context) {
	deviceID, ok := deviceFromContext(c)
	if !ok {
		return
	}
	state, err := h.service.State(c.Request.Context(), principalFromContext(c), deviceID)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, state)
}

// Navigate godoc
// @Summary Request a page change
// @Tags Navigation
// @Accept json
// @Produce json
// @Param payload body dto.NavigateRequest true "Requested page"
// @Success 200 {object} response.Envelope
// @Router /navigation [post]
func (h *NavigationHandler) Navigate(c *gin.Context) {
	deviceID, ok := deviceFromContext(c)
	if !ok {
		return
	}
	var req dto.NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid navigation payload"))
		return
	}
	req.Page = strings.TrimSpace(req.Page)
	if err := h.validator.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "page is required"))
		return
	}

	state, err := h.service.Navigate(c.Request.Context(), principalFromContext(c), deviceID, models.PageID(req.Page))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, state)
}

// Allowed godoc
// @Summary Pages reachable by the signed-in principal
// @Tags Navigation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /navigation/allowed [get]
func (h *NavigationHandler) Allowed(c *gin.Context) {
	principal := principalFromContext(c)
	response.JSON(c, http.StatusOK, dto.AllowedPagesResponse{
		Role:    principal.Role,
		SubRole: principal.SubRole,
		Pages:   h.service.AllowedPages(principal),
	}, middleware.ExtractMeta(c))
}

// Logout godoc
// @Summary End the session on this device
// @Description Clears the persisted page so the next sign-in starts at the dashboard.
// @Tags Navigation
// @Param X-Device-ID header string false "Device identifier"
// @Success 204
// @Router /session/logout [post]
func (h *NavigationHandler) Logout(c *gin.Context) {
	deviceID, ok := deviceFromContext(c)
	if !ok {
		return
	}
	if err := h.service.Logout(c.Request.Context(), deviceID); err != nil {
		response.Error(c, err)
		return
	}
	if principal := principalFromContext(c); principal != nil && h.sessions != nil {
		h.sessions.Clear(principal.ID)
	}
	response.NoContent(c)
}

func (h *NavigationHandler) respond(c *gin.Context, state *dto.NavigationState) {
	if len(state.Transitions) > 0 {
		middleware.SetMeta(c, "redirected", true)
	}
	response.JSON(c, http.StatusOK, state, middleware.ExtractMeta(c))
}
