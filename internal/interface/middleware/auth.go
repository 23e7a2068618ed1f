package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/pawmart/pawmart-backend/internal/domain/entity"
	"github.com/pawmart/pawmart-backend/pkg/helpers"
	"github.com/pawmart/pawmart-backend/pkg/response"
)

// Auth validates the access token and ensures an active session exists in
// Redis. It sets userID, userRole, userName, and userEmail in the Gin
// context on success. Sessions are written by the auth subsystem; this core
// only reads them.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			resp := response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			resp := response.Error[any](c, http.StatusUnauthorized, "invalid access token", err.Error())
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}

		// Retrieve session from Redis as a hash
		key := "user:session:" + claims.UserID
		data, err := rdb.HGetAll(c.Request.Context(), key).Result()
		if err != nil || len(data) == 0 {
			resp := response.Error[any](c, http.StatusUnauthorized, "session not found", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userRole", claims.Role)
		c.Set("userName", data["name"])   // extra convenience
		c.Set("userEmail", data["email"]) // extra convenience
		c.Next()
	}
}

// RequireAdmin gates a route group to ADMIN accounts. Must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("userRole") != string(entity.UserRoleAdmin) {
			resp := response.Error[any](c, http.StatusForbidden, "admin access required", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		c.Next()
	}
}
