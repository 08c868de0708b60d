package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/college-portal-api/internal/models"
	"github.com/noah-isme/college-portal-api/pkg/middleware/device"
	"github.com/noah-isme/college-portal-api/pkg/middleware/requestid"
)

func TestResponseMetaCarriesCorrelationIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(requestid.Middleware(), device.Middleware(device.Options{CookieName: "device_id"}), WithResponseMeta())
	var meta map[string]interface{}
	r.GET("/", func(c *gin.Context) {
		SetMeta(c, "extra", 1)
		meta = ExtractMeta(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-1")
	req.Header.Set(device.HeaderKey, "dev-1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, meta)
	assert.Equal(t, "req-1", meta["request_id"])
	assert.Equal(t, "dev-1", meta["device_id"])
	assert.Equal(t, 1, meta["extra"])
}

func TestExtractMetaEmpty(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, ExtractMeta(c))
	assert.Nil(t, ExtractMeta(nil))
}

func TestAuditLogsSuccessfulRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)
	admin := validatorStub{claims: &models.PrincipalClaims{UserID: "a-1", Role: models.RoleAdmin}}

	r := gin.New()
	r.GET("/ok", OptionalJWT(admin), Audit(zap.New(core), "policy.export"), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/fail", Audit(zap.New(core), "policy.export"), func(c *gin.Context) { c.Status(http.StatusForbidden) })

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("Authorization", "Bearer good")
	r.ServeHTTP(httptest.NewRecorder(), req)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "policy.export", fields["action"])
	assert.Equal(t, "a-1", fields["principal_id"])
}
