package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skolar-inc/skolar/internal/infrastructure/auth"
	"github.com/skolar-inc/skolar/internal/shared/constants"
	"github.com/skolar-inc/skolar/internal/shared/logger"
	"github.com/skolar-inc/skolar/internal/shared/utils"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

// RequireAuth verifies the bearer token and puts the operator identity on
// the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyOperatorID, claims.OperatorID)
		c.Set(constants.ContextKeyOperatorRole, claims.Role)

		c.Next()
	}
}

// RequireRole restricts a route to operators holding one of the given roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(constants.ContextKeyOperatorRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		utils.ErrorResponse(c, http.StatusForbidden, "insufficient permissions")
		c.Abort()
	}
}

// OperatorID returns the authenticated operator's id from the request
// context, or 0 when the route skipped authentication.
func OperatorID(c *gin.Context) uint {
	if v, ok := c.Get(constants.ContextKeyOperatorID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// OperatorRole returns the authenticated operator's role from the request
// context.
func OperatorRole(c *gin.Context) string {
	return c.GetString(constants.ContextKeyOperatorRole)
}
