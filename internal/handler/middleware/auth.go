package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"xrplutter/gateway/internal/metrics"
	jwtpkg "xrplutter/gateway/pkg/jwt"
	"xrplutter/gateway/pkg/response"
)

const ContextKeyClaims = "bearer_claims"

// BearerAuth verifies the Authorization bearer token. A missing signing
// secret is reported as a 500 so operators can tell "not configured" apart
// from a caller presenting a bad token.
func BearerAuth(jwtManager *jwtpkg.Manager, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			m.AuthFailure("missing_token")
			response.Unauthorized(c, "missing token")
			c.Abort()
			return
		}

		claims, err := jwtManager.Verify(token)
		if err != nil {
			switch {
			case errors.Is(err, jwtpkg.ErrSecretMissing):
				m.AuthFailure("secret_missing")
				response.InternalError(c, "server misconfigured: JWT_SECRET missing")
			case errors.Is(err, jwtpkg.ErrExpTooFar):
				m.AuthFailure("exp_too_far")
				response.Unauthorized(c, "invalid token: exp too far")
			default:
				m.AuthFailure("invalid_token")
				response.Unauthorized(c, "invalid token")
			}
			c.Abort()
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}
