// delete.go implements model deletion with asynchronous storage cleanup.
package models

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/model-registry/model-registry/internal/db/repositories"
	"github.com/model-registry/model-registry/internal/safego"
	"github.com/model-registry/model-registry/internal/storage"
)

// @Summary      Delete model
// @Description  Delete a model and all of its versions. Owner only; non-owners get 404. Stored files are removed asynchronously after the database delete commits.
// @Tags         Models
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Model ID"
// @Success      200  {object}  map[string]interface{}  "deleted: true"
// @Failure      401  {object}  map[string]interface{}  "Unauthorized"
// @Failure      404  {object}  map[string]interface{}  "Model not found"
// @Failure      500  {object}  map[string]interface{}  "Internal server error"
// @Router       /api/v1/models/{id} [delete]
// DeleteHandler handles model deletion
// Implements: DELETE /api/v1/models/:id
func DeleteHandler(db *sql.DB, storageBackend storage.Storage) gin.HandlerFunc {
	modelRepo := repositories.NewModelRepository(db)

	return func(c *gin.Context) {
		model := fetchModelForOwner(c, modelRepo)
		if model == nil {
			return
		}

		if err := modelRepo.DeleteModel(c.Request.Context(), model.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to delete model",
			})
			return
		}

		// Storage cleanup is best-effort and must not block the response: the
		// database row is the source of truth, and an orphaned directory only
		// wastes disk until the next cleanup.
		modelID := model.ID
		safego.Go(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := storageBackend.DeleteAll(ctx, modelDir(modelID)); err != nil {
				slog.Error("failed to remove model files from storage",
					"model_id", modelID,
					"error", err,
				)
			}
		})

		c.JSON(http.StatusOK, gin.H{
			"deleted": true,
		})
	}
}
