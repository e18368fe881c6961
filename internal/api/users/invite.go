// invite.go implements invite token issuance. Any member can hold one active
// invite token; the token is multi-use until it expires or is rotated.
package users

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/model-registry/model-registry/internal/auth"
	"github.com/model-registry/model-registry/internal/config"
	"github.com/model-registry/model-registry/internal/db/models"
	"github.com/model-registry/model-registry/internal/db/repositories"
)

// InviteTokenTTL is how long an issued invite token stays valid.
const InviteTokenTTL = 7 * 24 * time.Hour

// @Summary      Get or create invite token
// @Description  Returns the caller's active invite token, creating one if none exists or the previous one expired. The token can be shared with multiple invitees.
// @Tags         Users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "token, url, expires_at"
// @Failure      401  {object}  map[string]interface{}  "Unauthorized"
// @Failure      500  {object}  map[string]interface{}  "Internal server error"
// @Router       /api/v1/users/invite [post]
// CreateInviteHandler returns the caller's invite token, issuing one on demand
// Implements: POST /api/v1/users/invite
func CreateInviteHandler(db *sql.DB, cfg *config.Config) gin.HandlerFunc {
	userRepo := repositories.NewUserRepository(db)

	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			return
		}

		// Idempotent: an unexpired token is returned as-is so repeated calls
		// don't invalidate links the user already shared.
		if user.HasValidInviteToken(time.Now()) {
			c.JSON(http.StatusOK, gin.H{
				"token":      *user.InviteToken,
				"url":        registrationURL(cfg, *user.InviteToken),
				"expires_at": *user.InviteTokenExpiresAt,
			})
			return
		}

		issueInviteToken(c, cfg, userRepo, user.ID)
	}
}

// @Summary      Reset invite token
// @Description  Rotates the caller's invite token, invalidating any previously shared token immediately.
// @Tags         Users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "token, url, expires_at"
// @Failure      401  {object}  map[string]interface{}  "Unauthorized"
// @Failure      500  {object}  map[string]interface{}  "Internal server error"
// @Router       /api/v1/users/invite/reset [post]
// ResetInviteHandler rotates the caller's invite token unconditionally
// Implements: POST /api/v1/users/invite/reset
func ResetInviteHandler(db *sql.DB, cfg *config.Config) gin.HandlerFunc {
	userRepo := repositories.NewUserRepository(db)

	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			return
		}

		issueInviteToken(c, cfg, userRepo, user.ID)
	}
}

// currentUser extracts the authenticated user set by the auth middleware,
// writing the error response itself when the context is missing or malformed.
func currentUser(c *gin.Context) *models.User {
	value, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user context"})
		return nil
	}
	return user
}

func issueInviteToken(c *gin.Context, cfg *config.Config, userRepo *repositories.UserRepository, userID string) {
	token, err := auth.GenerateInviteToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate invite token",
		})
		return
	}

	expiresAt := time.Now().Add(InviteTokenTTL)
	if err := userRepo.SetInviteToken(c.Request.Context(), userID, token, expiresAt); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to store invite token",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"url":        registrationURL(cfg, token),
		"expires_at": expiresAt,
	})
}

// registrationURL builds the shareable registration link for an invite token.
func registrationURL(cfg *config.Config, token string) string {
	return cfg.Server.BaseURL + "/register?token=" + token
}
