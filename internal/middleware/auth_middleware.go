package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"fleetpulse/internal/utils"
)

// AuthRequired validates the bearer token and sets user context.
func AuthRequired(secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			utils.ErrorResponse(c, 401, "UNAUTHORIZED", "Bearer token required")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString, secretKey)
		if err != nil {
			utils.ErrorResponse(c, 401, "UNAUTHORIZED", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_role", claims.Role)
		c.Set("user_email", claims.Email)

		c.Next()
	}
}

// WSAuthRequired validates either a bearer token or a token query
// parameter. Browser WebSocket clients cannot set request headers, so
// the event feed accepts the JWT as ?token=.
func WSAuthRequired(secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if tokenString == "" || tokenString == c.GetHeader("Authorization") {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString, secretKey)
		if err != nil {
			utils.ErrorResponse(c, 401, "UNAUTHORIZED", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_role", claims.Role)
		c.Set("user_email", claims.Email)

		c.Next()
	}
}

// AdminRequired ensures the authenticated user is an admin.
func AdminRequired() gin.HandlerFunc {
	return RoleRequired("admin")
}

// ManagerRequired ensures the authenticated user can manage fleet
// resources. Admins pass as well.
func ManagerRequired() gin.HandlerFunc {
	return RoleRequired("admin", "manager")
}

// RoleRequired ensures the authenticated user holds one of the given
// roles.
func RoleRequired(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("user_role")
		if !exists {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		roleStr, ok := userRole.(string)
		if !ok {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		for _, role := range roles {
			if roleStr == role {
				c.Next()
				return
			}
		}

		utils.ForbiddenResponse(c)
		c.Abort()
	}
}
