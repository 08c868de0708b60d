package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/college-portal-api/internal/models"
	"github.com/noah-isme/college-portal-api/internal/service"
)

func requestCount(t *testing.T, metrics *service.MetricsService, labels map[string]string) float64 {
	t.Helper()
	families, err := metrics.Registry().Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != "http_requests_total" {
			continue
		}
	series:
		for _, metric := range family.GetMetric() {
			got := map[string]string{}
			for _, pair := range metric.GetLabel() {
				got[pair.GetName()] = pair.GetValue()
			}
			for k, v := range labels {
				if got[k] != v {
					continue series
				}
			}
			return metric.GetCounter().GetValue()
		}
	}
	return 0
}

func TestMetricsLabelsRequestsByRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	teacher := validatorStub{claims: &models.PrincipalClaims{UserID: "t-1", Role: models.RoleTeacher}}

	r := gin.New()
	r.Use(Metrics(metrics))
	r.GET("/api/v1/profile", JWT(teacher), func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, auth := range []string{"Bearer good", "Bearer good", ""} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		r.ServeHTTP(httptest.NewRecorder(), req)
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/wp-login.php", nil))

	assert.Equal(t, float64(2), requestCount(t, metrics, map[string]string{
		"path": "/api/v1/profile", "role": string(models.RoleTeacher), "status": "200",
	}))
	assert.Equal(t, float64(1), requestCount(t, metrics, map[string]string{
		"path": "/api/v1/profile", "role": "anonymous", "status": "401",
	}))
	assert.Equal(t, float64(1), requestCount(t, metrics, map[string]string{
		"path": "unmatched", "role": "anonymous", "status": "404",
	}))
}
