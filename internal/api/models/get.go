// get.go implements the single-model detail endpoint.
package models

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/model-registry/model-registry/internal/config"
	dbmodels "github.com/model-registry/model-registry/internal/db/models"
	"github.com/model-registry/model-registry/internal/db/repositories"
)

// @Summary      Get model
// @Description  Get a model with its active version. Responds 404 both when the model does not exist and when the caller may not see it.
// @Tags         Models
// @Produce      json
// @Param        id  path  string  true  "Model ID"
// @Success      200  {object}  models.ModelWithActiveVersion
// @Failure      404  {object}  map[string]interface{}  "Model not found"
// @Failure      500  {object}  map[string]interface{}  "Internal server error"
// @Router       /api/v1/models/{id} [get]
// GetHandler handles single model retrieval
// Implements: GET /api/v1/models/:id
func GetHandler(db *sql.DB, cfg *config.Config) gin.HandlerFunc {
	modelRepo := repositories.NewModelRepository(db)

	return func(c *gin.Context) {
		model := fetchModelForRead(c, modelRepo)
		if model == nil {
			return
		}

		activeVersion, err := modelRepo.GetActiveVersion(c.Request.Context(), model.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to retrieve active version",
			})
			return
		}

		c.JSON(http.StatusOK, dbmodels.ModelWithActiveVersion{
			Model:         *model,
			ActiveVersion: activeVersion,
		})
	}
}
