// register.go implements self-service account registration, including the
// invite-token bypass used when open registration is disabled.
package users

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/model-registry/model-registry/internal/auth"
	"github.com/model-registry/model-registry/internal/config"
	"github.com/model-registry/model-registry/internal/db/models"
	"github.com/model-registry/model-registry/internal/db/repositories"
)

// RegisterRequest is the registration request body
type RegisterRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=64"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	InviteToken string `json:"invite_token"`
}

// @Summary      Register account
// @Description  Create a new user account. When registration is disabled, a valid invite token issued by an existing member is required.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body  RegisterRequest  true  "Registration details"
// @Success      201  {object}  map[string]interface{}  "id, username, email, created_at"
// @Failure      400  {object}  map[string]interface{}  "Invalid request"
// @Failure      403  {object}  map[string]interface{}  "Registration disabled or invite token invalid"
// @Failure      409  {object}  map[string]interface{}  "Username or email already taken"
// @Failure      500  {object}  map[string]interface{}  "Internal server error"
// @Router       /api/v1/auth/register [post]
// RegisterHandler handles account registration
// Implements: POST /api/v1/auth/register
func RegisterHandler(db *sql.DB, cfg *config.Config) gin.HandlerFunc {
	userRepo := repositories.NewUserRepository(db)

	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request: " + err.Error(),
			})
			return
		}

		if cfg.Auth.DisableRegistration {
			if req.InviteToken == "" {
				c.JSON(http.StatusForbidden, gin.H{
					"error": "Registration is disabled",
				})
				return
			}

			inviter, err := userRepo.GetUserByInviteToken(c.Request.Context(), req.InviteToken)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Failed to verify invite token",
				})
				return
			}
			if inviter == nil || !inviter.HasValidInviteToken(time.Now()) {
				c.JSON(http.StatusForbidden, gin.H{
					"error": "Invalid or expired invite token",
				})
				return
			}
		}

		passwordHash, err := auth.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to process password",
			})
			return
		}

		user := &models.User{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: passwordHash,
		}
		if err := userRepo.CreateUser(c.Request.Context(), user); err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				c.JSON(http.StatusConflict, gin.H{
					"error": "Username or email already taken",
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to create user",
			})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":         user.ID,
			"username":   user.Username,
			"email":      user.Email,
			"created_at": user.CreatedAt,
		})
	}
}

// @Summary      Registration status
// @Description  Reports whether open self-registration is currently allowed. Invite-token registration may still work when this returns false.
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "allowed"
// @Router       /api/v1/auth/registration [get]
// RegistrationStatusHandler reports whether open registration is enabled
// Implements: GET /api/v1/auth/registration
func RegistrationStatusHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"allowed": !cfg.Auth.DisableRegistration,
		})
	}
}
