package middleware

import (
	"net/http"
	"strings"

	"car-rental-backend/utils"

	"github.com/gin-gonic/gin"
)

// AdminAuth guards the back-office routes. It expects a bearer token
// issued by the login endpoint and stores the admin identity in the
// request context.
func AdminAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "missing_token")
			c.Abort()
			return
		}

		adminID, username, err := utils.ParseAdminToken(jwtSecret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "invalid_token")
			c.Abort()
			return
		}

		c.Set("adminID", adminID)
		c.Set("adminUsername", username)
		c.Next()
	}
}
