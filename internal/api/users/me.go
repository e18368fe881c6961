// me.go implements the current-user profile endpoint.
package users

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/model-registry/model-registry/internal/db/models"
)

// @Summary      Current user
// @Description  Returns the authenticated user's profile.
// @Tags         Users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "user: models.User"
// @Failure      401  {object}  map[string]interface{}  "Unauthorized"
// @Router       /api/v1/users/me [get]
// MeHandler returns the authenticated user's profile
// Implements: GET /api/v1/users/me
func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("user")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			return
		}

		user, ok := value.(*models.User)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Invalid user context",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"user": user,
		})
	}
}
