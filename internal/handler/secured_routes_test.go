package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/college-portal-api/internal/middleware"
	"github.com/noah-isme/college-portal-api/internal/models"
	"github.com/noah-isme/college-portal-api/internal/service"
	appErrors "github.com/noah-isme/college-portal-api/pkg/errors"
	"github.com/noah-isme/college-portal-api/pkg/middleware/device"
	"github.com/noah-isme/college-portal-api/pkg/middleware/requestid"
)

type tokenStub struct{}

func (tokenStub) ValidateToken(token string) (*models.PrincipalClaims, error) {
	if token != "student" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}
	return &models.PrincipalClaims{UserID: "s-1", Role: models.RoleStudent}, nil
}

func newSecuredRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(requestid.Middleware(), device.Middleware(device.Options{}), middleware.WithResponseMeta())

	navigation := NewNavigationHandler(&fakeNavigationSrv{}, nil, nil)
	notifications := NewNotificationHandler(service.NewNotificationService(0, nil, nil, nil))
	profile := NewProfileHandler(&fakeProfileSrv{})

	secured := r.Group("/api/v1", middleware.JWT(tokenStub{}))
	secured.GET("/navigation/allowed", navigation.Allowed)
	secured.GET("/profile", profile.Get)
	secured.GET("/notifications", notifications.List)
	secured.POST("/notifications", notifications.Push)
	secured.POST("/notifications/read", notifications.MarkRead)
	return r
}

func call(r *gin.Engine, method, target, token string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(device.HeaderKey, "dev-1")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSecuredRoutesRequireToken(t *testing.T) {
	r := newSecuredRouter()
	routes := []struct {
		method string
		target string
		body   []byte
		want   int
	}{
		{http.MethodGet, "/api/v1/navigation/allowed", nil, http.StatusOK},
		{http.MethodGet, "/api/v1/profile", nil, http.StatusOK},
		{http.MethodGet, "/api/v1/notifications", nil, http.StatusOK},
		{http.MethodPost, "/api/v1/notifications", []byte(`{"message":"Fee reminder"}`), http.StatusCreated},
		{http.MethodPost, "/api/v1/notifications/read", nil, http.StatusOK},
	}

	for _, tc := range routes {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, call(r, tc.method, tc.target, "", tc.body).Code)
			assert.Equal(t, http.StatusUnauthorized, call(r, tc.method, tc.target, "forged", tc.body).Code)
			assert.Equal(t, tc.want, call(r, tc.method, tc.target, "student", tc.body).Code)
		})
	}
}

func TestNotificationListKeepsRequestMeta(t *testing.T) {
	r := newSecuredRouter()
	require.Equal(t, http.StatusCreated, call(r, http.MethodPost, "/api/v1/notifications", "student", []byte(`{"message":"Fee reminder"}`)).Code)

	rec := call(r, http.MethodGet, "/api/v1/notifications", "student", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Meta map[string]interface{} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, float64(1), envelope.Meta["unread"])
	assert.Equal(t, "dev-1", envelope.Meta["device_id"])
	assert.Equal(t, rec.Header().Get("X-Request-ID"), envelope.Meta["request_id"])
	assert.NotEmpty(t, envelope.Meta["request_id"])

	rec = call(r, http.MethodPost, "/api/v1/notifications/read", "student", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, float64(0), envelope.Meta["unread"])
	assert.Equal(t, "dev-1", envelope.Meta["device_id"])
}
