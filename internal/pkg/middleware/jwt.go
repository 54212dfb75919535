package middleware

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	jwtpkg "github.com/fleetops/rosterd/internal/pkg/jwt"
	"github.com/fleetops/rosterd/internal/pkg/models"
	"github.com/fleetops/rosterd/internal/utils"
)

// Context keys populated by the auth middleware.
const (
	ContextUserID   = "user_id"
	ContextUserRole = "user_role"
)

// JWTAuthMiddleware validates the bearer token and stores user id and role
// in the request context.
func JWTAuthMiddleware(config models.JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return utils.UnauthorizedResponse(c, "Authorization header is required")
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return utils.UnauthorizedResponse(c, "Invalid authorization format")
			}

			claims, err := jwtpkg.ValidateToken(parts[1], config.Secret)
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid token")
			}

			userIDStr, ok := (*claims)["user_id"]
			if !ok {
				return utils.UnauthorizedResponse(c, "Invalid token: missing user_id claim")
			}

			role, ok := (*claims)["role"]
			if !ok {
				return utils.UnauthorizedResponse(c, "Invalid token: missing role claim")
			}

			userID, err := uuid.Parse(fmt.Sprintf("%v", userIDStr))
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid token: user_id is not a valid UUID")
			}

			c.Set(ContextUserID, userID)
			c.Set(ContextUserRole, fmt.Sprintf("%v", role))

			return next(c)
		}
	}
}

// RequireRoles rejects requests whose authenticated role is not in the
// allowed set. Must run after JWTAuthMiddleware.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextUserRole).(string)
			if _, ok := allowed[role]; !ok {
				return utils.ForbiddenResponse(c, "")
			}
			return next(c)
		}
	}
}

// UserIDFromContext returns the authenticated user id, if present.
func UserIDFromContext(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(ContextUserID).(uuid.UUID)
	return id, ok
}
