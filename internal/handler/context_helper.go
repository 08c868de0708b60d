package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/college-portal-api/internal/middleware"
	"github.com/noah-isme/college-portal-api/internal/models"
	appErrors "github.com/noah-isme/college-portal-api/pkg/errors"
	"github.com/noah-isme/college-portal-api/pkg/middleware/device"
	"github.com/noah-isme/college-portal-api/pkg/response"
)

func principalFromContext(c *gin.Context) *models.Principal {
	return middleware.PrincipalFromContext(c)
}

// deviceFromContext aborts the request with a validation error when no device is known.
func deviceFromContext(c *gin.Context) (string, bool) {
	id := device.Value(c)
	if id == "" {
		id = device.Sanitize(c.GetHeader(device.HeaderKey))
	}
	if id == "" {
		response.Error(c, appErrors.ErrDeviceRequired)
		return "", false
	}
	return id, true
}
