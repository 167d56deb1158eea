package middleware

import (
	"net/http"
	"strings"

	"storely-be/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Auth verifies the bearer token and places the customer identity into the
// request context. Requests without a valid token are rejected; token
// issuance itself lives in the auth service, not here.
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractToken(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}

		uid, ok := claims["user_id"].(float64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}

		email, _ := claims["email"].(string)
		role, _ := claims["role"].(string)

		ctx := utils.SetUserContext(c.Request.Context(), uint(uid), email, role)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireAdmin guards the admin order-management routes. It assumes Auth
// already ran on the group.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.EqualFold(utils.GetUserRoleFromContext(c.Request.Context()), "admin") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	// Cookie first, Authorization header as fallback
	if cookie, err := c.Cookie("access_token"); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}
