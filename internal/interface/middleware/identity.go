package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/listora/listings-api/pkg/helpers"
	"github.com/listora/listings-api/pkg/response"
)

const CtxUserIDKey = "userID"

// BearerToken extracts the token from an Authorization header value. Only
// the exact two-part form "Bearer <token>" counts, scheme case-insensitive;
// anything else is treated as no credentials at all.
func BearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

// Identity resolves the caller's identity from a bearer token. No header
// means the request proceeds anonymous; a present token that fails
// verification short-circuits with 401 before any handler runs. Expired and
// forged tokens are told apart in logs only.
func Identity(jwtm *helpers.JWTManager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}
		uid, err := jwtm.Verify(token)
		if err != nil {
			if logger != nil {
				logger.WithError(err).WithField("path", c.FullPath()).Info("bearer token rejected")
			}
			response.AbortErr(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		c.Set(CtxUserIDKey, uid)
		c.Next()
	}
}

// RequireUser guards routes that need an authenticated caller.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserID(c); !ok {
			response.AbortErr(c, http.StatusUnauthorized, "authentication required")
			return
		}
		c.Next()
	}
}

// UserID returns the resolved identity for this request, if any.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(CtxUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
