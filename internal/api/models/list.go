// list.go implements the paginated, visibility-filtered model listing.
package models

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/model-registry/model-registry/internal/config"
	"github.com/model-registry/model-registry/internal/db/repositories"
	"github.com/model-registry/model-registry/internal/middleware"
	"github.com/model-registry/model-registry/internal/validation"
)

// @Summary      List models
// @Description  List models visible to the caller with pagination. Anonymous callers see public models; authenticated callers also see members-tier models and their own private models.
// @Tags         Models
// @Produce      json
// @Param        task_type  query  string  false  "Filter by task type (detect, obb, pose)"
// @Param        page       query  int     false  "Page number (default 1)"
// @Param        limit      query  int     false  "Items per page, max 100 (default 20)"
// @Success      200  {object}  map[string]interface{}  "models: [], meta: {page, limit, total}"
// @Failure      400  {object}  map[string]interface{}  "Invalid task type"
// @Failure      500  {object}  map[string]interface{}  "Internal server error"
// @Router       /api/v1/models [get]
// ListHandler handles model listing requests
// Implements: GET /api/v1/models?task_type=<type>&page=<page>&limit=<limit>
func ListHandler(db *sql.DB, cfg *config.Config) gin.HandlerFunc {
	modelRepo := repositories.NewModelRepository(db)

	return func(c *gin.Context) {
		taskType := c.Query("task_type")
		if taskType != "" {
			if err := validation.ValidateTaskType(taskType); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}

		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if err != nil || limit < 1 || limit > 100 {
			limit = 20
		}

		filter := repositories.ListModelsFilter{
			ViewerID: middleware.ViewerID(c),
			TaskType: taskType,
			Limit:    limit,
			Offset:   (page - 1) * limit,
		}

		results, total, err := modelRepo.ListModels(c.Request.Context(), filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to list models",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"models": results,
			"meta": gin.H{
				"page":  page,
				"limit": limit,
				"total": total,
			},
		})
	}
}
