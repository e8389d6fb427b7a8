package server

import (
	"net/http"
	"strings"

	"catalog-assistant/internal/common/auth"
	"catalog-assistant/internal/common/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxKeySession   = "session"
	ctxKeyRequestID = "requestId"
)

type SessionMiddleware struct {
	sessions *auth.SessionStore
	logger   logger.Logger
}

func NewSessionMiddleware(sessions *auth.SessionStore, log logger.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		sessions: sessions,
		logger:   log.With(map[string]interface{}{"middleware": "session"}),
	}
}

// RequireSession resolves the bearer token to a session and aborts with 401
// when none can be resolved. The customer-match check happens in the
// handler, after the request body names its customer.
func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing session token"})
			return
		}

		session, err := m.sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			m.logger.Warn("session resolution failed", map[string]interface{}{
				"error": err.Error(),
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}

		c.Set(ctxKeySession, session)
		c.Next()
	}
}

// RequestID attaches a fresh request id to every request for log
// correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set(ctxKeyRequestID, id)
		c.Header("X-Request-Id", id)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}

func sessionFrom(c *gin.Context) *auth.Session {
	if v, ok := c.Get(ctxKeySession); ok {
		if s, ok := v.(*auth.Session); ok {
			return s
		}
	}
	return nil
}

func requestIDFrom(c *gin.Context) string {
	if v, ok := c.Get(ctxKeyRequestID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
