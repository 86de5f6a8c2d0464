package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/tadreeb/academy/internal/app/models"
	"github.com/tadreeb/academy/internal/pkg/apperrors"
	"github.com/tadreeb/academy/internal/pkg/auth"
	"github.com/tadreeb/academy/internal/pkg/logger"
)

// Headers carrying the auth backend session between the SPA and the API.
// Rotated tokens are echoed back in the same headers.
const (
	AccessTokenHeader  = "X-Access-Token"
	RefreshTokenHeader = "X-Refresh-Token"
)

// AuthMiddleware guards the back-office routes
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// JWTAuth validates the bearer access token and stores its claims on the context
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			HandleAPIError(c, apperrors.ErrUnauthenticated)
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			logger.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Rejected access token")
			HandleAPIError(c, err)
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyEmail, claims.Email)
		c.Set(ContextKeyRole, models.Role(claims.Role))

		c.Next()
	}
}

// RoleRequired lets the request through when the user holds one of roles.
// It must run after JWTAuth.
func (m *AuthMiddleware) RoleRequired(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(ContextKeyRole)
		if !exists {
			HandleAPIError(c, apperrors.ErrUnauthenticated)
			return
		}

		role, _ := v.(models.Role)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		logger.Warn().
			Int64("userID", c.GetInt64(ContextKeyUserID)).
			Str("role", string(role)).
			Str("path", c.Request.URL.Path).
			Msg("Insufficient role")
		HandleAPIError(c, apperrors.ErrPermissionDenied)
	}
}

// UserIDFrom returns the authenticated back-office user id
func UserIDFrom(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ContextKeyUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
