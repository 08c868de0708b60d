package device

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderKey carries the device identifier for non-browser clients.
	HeaderKey  = "X-Device-ID"
	contextKey = "device_id"
	maxIDLen   = 128
)

// Options configures the device cookie.
type Options struct {
	CookieName string
	CookieTTL  time.Duration
	Secure     bool
}

// Middleware resolves the stable device identifier that scopes local navigation state.
// The identifier is generated once and echoed back through both the header and the cookie.
func Middleware(opts Options) gin.HandlerFunc {
	if opts.CookieName == "" {
		opts.CookieName = "device_id"
	}
	if opts.CookieTTL <= 0 {
		opts.CookieTTL = 365 * 24 * time.Hour
	}

	return func(c *gin.Context) {
		id := Sanitize(c.GetHeader(HeaderKey))
		if id == "" {
			if cookie, err := c.Cookie(opts.CookieName); err == nil {
				id = Sanitize(cookie)
			}
		}
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(contextKey, id)
		c.Writer.Header().Set(HeaderKey, id)
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     opts.CookieName,
			Value:    id,
			Path:     "/",
			MaxAge:   int(opts.CookieTTL.Seconds()),
			HttpOnly: true,
			Secure:   opts.Secure,
			SameSite: http.SameSiteLaxMode,
		})

		c.Next()
	}
}

// Value returns the device ID stored in the Gin context.
func Value(c *gin.Context) string {
	if v, exists := c.Get(contextKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// Sanitize returns raw trimmed, or "" when it could break key scoping.
func Sanitize(raw string) string {
	id := strings.TrimSpace(raw)
	if id == "" || len(id) > maxIDLen {
		return ""
	}
	for _, r := range id {
		if !(r == '-' || r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
			return ""
		}
	}
	return id
}
