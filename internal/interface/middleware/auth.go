package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/docline/docline-api/internal/auth"
	"github.com/docline/docline-api/internal/domain/entity"
	"github.com/docline/docline-api/pkg/response"
)

// CtxSessionKey holds the auth.Session reconstructed from the bearer token.
const CtxSessionKey = "session"

// Auth is the perimeter check: it extracts the bearer token, verifies it and
// stores the resulting session in the request context. A missing header,
// malformed header, invalid signature and expiry all produce the same 401.
func Auth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthenticated(c, "you need to be signed in")
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			abortUnauthenticated(c, "invalid authentication token")
			return
		}
		sess, err := tokens.Verify(token)
		if err != nil {
			abortUnauthenticated(c, "invalid authentication token")
			return
		}
		c.Set(CtxSessionKey, sess)
		c.Next()
	}
}

// RequireRole guards a route on a specific role tag, on top of Auth.
func RequireRole(role entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := SessionFrom(c)
		if !ok {
			abortUnauthenticated(c, "you need to be signed in")
			return
		}
		if !sess.Roles.Has(role) {
			response.Error[any](c, http.StatusForbidden,
				"you are not allowed to view this part of the application", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// SessionFrom retrieves the session stored by Auth.
func SessionFrom(c *gin.Context) (auth.Session, bool) {
	v, ok := c.Get(CtxSessionKey)
	if !ok {
		return auth.Session{}, false
	}
	sess, ok := v.(auth.Session)
	return sess, ok
}

func abortUnauthenticated(c *gin.Context, msg string) {
	response.Error[any](c, http.StatusUnauthorized, msg, nil)
	c.Abort()
}
