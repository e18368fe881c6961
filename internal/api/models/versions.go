// versions.go implements the version history endpoint.
package models

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/model-registry/model-registry/internal/db/repositories"
)

// @Summary      List model versions
// @Description  List all versions of a model, newest first, with the active version flagged. Visibility rules match the model detail endpoint.
// @Tags         Models
// @Produce      json
// @Param        id  path  string  true  "Model ID"
// @Success      200  {object}  map[string]interface{}  "versions: []models.ModelVersion"
// @Failure      404  {object}  map[string]interface{}  "Model not found"
// @Failure      500  {object}  map[string]interface{}  "Internal server error"
// @Router       /api/v1/models/{id}/versions [get]
// ListVersionsHandler handles version history requests
// Implements: GET /api/v1/models/:id/versions
func ListVersionsHandler(db *sql.DB) gin.HandlerFunc {
	modelRepo := repositories.NewModelRepository(db)

	return func(c *gin.Context) {
		model := fetchModelForRead(c, modelRepo)
		if model == nil {
			return
		}

		versions, err := modelRepo.ListVersions(c.Request.Context(), model.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to list versions",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"versions": versions,
		})
	}
}
