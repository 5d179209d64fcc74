package middleware

import (
	"strings"

	"memberhub_backend/internal/auth"
	"memberhub_backend/internal/logger"
	"memberhub_backend/internal/models"
	"memberhub_backend/pkg/apperrors"
	"memberhub_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the bearer token and stores the caller's user,
// business and role on the gin context and in the logging context.
func AuthMiddleware(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		claims, err := tokens.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}
		if claims.BusinessID == "" {
			apperrors.HandleError(c, apperrors.ErrNoBusinessContext)
			return
		}

		SetClaims(c, claims)
		c.Next()
	}
}

// SetClaims copies the token claims onto the request
func SetClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(contextkeys.UserIDKey, claims.UserID)
	c.Set(contextkeys.BusinessIDKey, claims.BusinessID)
	c.Set(contextkeys.RoleKey, models.UserRole(claims.Role))

	ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
	ctx = logger.WithBusinessID(ctx, claims.BusinessID)
	c.Request = c.Request.WithContext(ctx)
}

// RequireRoles lets the request through when the caller holds one of roles
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		if !roleSet[GetRole(c)] {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Access denied: insufficient role"))
			return
		}
		c.Next()
	}
}

// RequirePermission checks the role permission table
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.HasPermission(GetRole(c), permission) {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Access denied: insufficient permissions"))
			return
		}
		c.Next()
	}
}

func GetUserID(c *gin.Context) string {
	return c.GetString(contextkeys.UserIDKey)
}

func GetBusinessID(c *gin.Context) string {
	return c.GetString(contextkeys.BusinessIDKey)
}

func GetRole(c *gin.Context) models.UserRole {
	roleVal, exists := c.Get(contextkeys.RoleKey)
	if !exists {
		return ""
	}
	switch role := roleVal.(type) {
	case models.UserRole:
		return role
	case string:
		return models.UserRole(role)
	}
	return ""
}
