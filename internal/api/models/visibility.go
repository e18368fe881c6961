// visibility.go implements the owner-only visibility tier change endpoint.
package models

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/model-registry/model-registry/internal/db/repositories"
	"github.com/model-registry/model-registry/internal/validation"
)

// UpdateVisibilityRequest is the visibility change request body
type UpdateVisibilityRequest struct {
	Visibility string `json:"visibility" binding:"required"`
}

// @Summary      Change model visibility
// @Description  Set a model's visibility tier (private, members, or public). Owner only; non-owners get 404.
// @Tags         Models
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id       path  string                    true  "Model ID"
// @Param        request  body  UpdateVisibilityRequest  true  "New visibility tier"
// @Success      200  {object}  map[string]interface{}  "id, visibility"
// @Failure      400  {object}  map[string]interface{}  "Invalid visibility value"
// @Failure      401  {object}  map[string]interface{}  "Unauthorized"
// @Failure      404  {object}  map[string]interface{}  "Model not found"
// @Failure      500  {object}  map[string]interface{}  "Internal server error"
// @Router       /api/v1/models/{id}/visibility [patch]
// UpdateVisibilityHandler handles visibility tier changes
// Implements: PATCH /api/v1/models/:id/visibility
func UpdateVisibilityHandler(db *sql.DB) gin.HandlerFunc {
	modelRepo := repositories.NewModelRepository(db)

	return func(c *gin.Context) {
		var req UpdateVisibilityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request: " + err.Error(),
			})
			return
		}
		if err := validation.ValidateVisibility(req.Visibility); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		model := fetchModelForOwner(c, modelRepo)
		if model == nil {
			return
		}

		if err := modelRepo.UpdateVisibility(c.Request.Context(), model.ID, req.Visibility); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update visibility",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":         model.ID,
			"visibility": req.Visibility,
		})
	}
}
