package middleware

import (
	"github.com/employeems/employee-management-api/internal/authz"
	"github.com/employeems/employee-management-api/internal/constants"
	apierrors "github.com/employeems/employee-management-api/internal/errors"
	"github.com/employeems/employee-management-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// RequireAuth verifies the session token cookie and attaches the caller's
// role and id to the request context. Requests with a missing, malformed
// or signature-invalid token are rejected before reaching the handler.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(constants.SessionCookieName)
		if err != nil || tokenString == "" {
			apierrors.Unauthorized(c, "Not authenticated")
			c.Abort()
			return
		}

		claims, err := utils.ParseSessionToken(secret, tokenString)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.ID)
		c.Set(constants.ContextKeyRole, claims.Role)
		c.Next()
	}
}

// GetIdentity retrieves the authenticated caller from context.
func GetIdentity(c *gin.Context) (authz.Identity, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return authz.Identity{}, false
	}
	role, exists := c.Get(constants.ContextKeyRole)
	if !exists {
		return authz.Identity{}, false
	}

	id, ok := userID.(uint64)
	if !ok {
		return authz.Identity{}, false
	}
	roleStr, ok := role.(string)
	if !ok {
		return authz.Identity{}, false
	}

	return authz.Identity{ID: id, Role: roleStr}, true
}
