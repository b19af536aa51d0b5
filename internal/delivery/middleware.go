package delivery

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pos_service/internal/auth"
)

const (
	ctxUserID = "userID"
	ctxRole   = "userRole"

	sessionHeader = "X-Session-ID"
)

// JWTMiddleware rejects requests without a valid Bearer session token and
// exposes the token's user id and role to handlers.
func JWTMiddleware(tokens *auth.TokenIssuer, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Middleware: Authorization header is missing")
			ErrorResponse(c, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
			log.Warn("Middleware: Invalid Authorization header format")
			ErrorResponse(c, http.StatusUnauthorized, "Invalid Authorization header format")
			return
		}

		claims, err := tokens.Parse(parts[1])
		if err != nil {
			log.Warnf("Middleware: Rejected session token: %v", err)
			ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, string(claims.Role))
		c.Next()
	}
}

// sessionKey picks the cart session. Carts always belong to the authenticated
// user; an X-Session-ID header selects one of that user's tills.
func sessionKey(c *gin.Context) string {
	userID := c.GetString(ctxUserID)
	if id := c.GetHeader(sessionHeader); id != "" {
		return userID + ":" + id
	}
	return userID
}

func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		logger.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"remote_ip": c.ClientIP(),
		}).Debug("Incoming request")

		c.Next()

		statusCode := c.Writer.Status()
		entry := logger.WithFields(logrus.Fields{
			"status_code": statusCode,
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"remote_ip":   c.ClientIP(),
			"latency_ms":  time.Since(startTime).Milliseconds(),
		})
		if userID := c.GetString(ctxUserID); userID != "" {
			entry = entry.WithFields(logrus.Fields{"user_id": userID, "role": c.GetString(ctxRole)})
		}

		switch {
		case len(c.Errors) > 0:
			entry.Error(c.Errors.ByType(gin.ErrorTypePrivate).String())
		case statusCode >= 500:
			entry.Error("Request completed with server error")
		case statusCode >= 400:
			entry.Warn("Request completed with client error")
		default:
			entry.Info("Request completed successfully")
		}
	}
}
