// create.go implements model record creation.
package models

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	dbmodels "github.com/model-registry/model-registry/internal/db/models"
	"github.com/model-registry/model-registry/internal/db/repositories"
	"github.com/model-registry/model-registry/internal/middleware"
	"github.com/model-registry/model-registry/internal/validation"
)

// CreateModelRequest is the model creation request body
type CreateModelRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	TaskType    string `json:"task_type" binding:"required"`
	ZoomLevel   int    `json:"zoom_level" binding:"required"`
	Visibility  string `json:"visibility"`
}

// @Summary      Create model
// @Description  Register a new model owned by the authenticated user. Visibility defaults to private.
// @Tags         Models
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        request  body  CreateModelRequest  true  "Model details"
// @Success      201  {object}  models.Model
// @Failure      400  {object}  map[string]interface{}  "Invalid request"
// @Failure      401  {object}  map[string]interface{}  "Unauthorized"
// @Failure      500  {object}  map[string]interface{}  "Internal server error"
// @Router       /api/v1/models [post]
// CreateHandler handles model creation
// Implements: POST /api/v1/models
func CreateHandler(db *sql.DB) gin.HandlerFunc {
	modelRepo := repositories.NewModelRepository(db)

	return func(c *gin.Context) {
		var req CreateModelRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request: " + err.Error(),
			})
			return
		}

		if err := validation.ValidateModelName(req.Name); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validation.ValidateTaskType(req.TaskType); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validation.ValidateZoomLevel(req.ZoomLevel); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if req.Visibility == "" {
			req.Visibility = dbmodels.VisibilityPrivate
		}
		if err := validation.ValidateVisibility(req.Visibility); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		viewer := middleware.ViewerID(c)
		if viewer == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		model := &dbmodels.Model{
			Name:        req.Name,
			Description: req.Description,
			TaskType:    req.TaskType,
			ZoomLevel:   req.ZoomLevel,
			OwnerID:     *viewer,
			Visibility:  req.Visibility,
		}
		if err := modelRepo.CreateModel(c.Request.Context(), model); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to create model",
			})
			return
		}

		c.JSON(http.StatusCreated, model)
	}
}
