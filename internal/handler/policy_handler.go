package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-portal-api/internal/dto"
	appErrors "github.com/noah-isme/college-portal-api/pkg/errors"
	"github.com/noah-isme/college-portal-api/pkg/response"
)

type policyService interface {
	Matrix(query dto.AccessPolicyQuery) ([]dto.AccessPolicyEntry, error)
	Export(query dto.AccessPolicyQuery) (*dto.AccessPolicyFile, error)
}

// PolicyHandler serves the access matrix to administrators.
type PolicyHandler struct {
	service policyService
}

// NewPolicyHandler builds a new handler.
func NewPolicyHandler(service policyService) *PolicyHandler {
	return &PolicyHandler{service: service}
}

// AccessPolicy godoc
// @Summary Access policy matrix
// @Description Render decision of every role, sub-role and page. CSV and PDF are returned as attachments.
// @Tags Admin
// @Produce json
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param role query string false "Limit to one role"
// @Param format query string false "json, csv or pdf"
// @Success 200 {object} response.Envelope
// @Router /admin/access-policy [get]
func (h *PolicyHandler) AccessPolicy(c *gin.Context) {
	var query dto.AccessPolicyQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid access policy query"))
		return
	}
	query.Format = strings.ToLower(strings.TrimSpace(query.Format))

	if query.Format == "" || query.Format == dto.PolicyFormatJSON {
		entries, err := h.service.Matrix(query)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, entries, map[string]interface{}{"total": len(entries)})
		return
	}

	file, err := h.service.Export(query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}
