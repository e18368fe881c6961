// archive.go implements the best-effort ZIP export of a model's files.
package models

import (
	"archive/zip"
	"database/sql"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/model-registry/model-registry/internal/db/repositories"
	"github.com/model-registry/model-registry/internal/storage"
	"github.com/model-registry/model-registry/internal/telemetry"
	"github.com/model-registry/model-registry/internal/validation"
)

// @Summary      Download model archive
// @Description  Stream a ZIP archive of all files in the model's storage location. The archive name is derived from the model name with unsafe characters replaced.
// @Tags         Models
// @Produce      application/zip
// @Param        id  path  string  true  "Model ID"
// @Success      200  {file}    file
// @Failure      404  {object}  map[string]interface{}  "Model not found or no files available"
// @Failure      500  {object}  map[string]interface{}  "Internal server error"
// @Router       /api/v1/models/{id}/download [get]
// DownloadArchiveHandler handles ZIP archive exports
// Implements: GET /api/v1/models/:id/download
func DownloadArchiveHandler(db *sql.DB, storageBackend storage.Storage) gin.HandlerFunc {
	modelRepo := repositories.NewModelRepository(db)

	return func(c *gin.Context) {
		model := fetchModelForRead(c, modelRepo)
		if model == nil {
			return
		}

		entries, err := storageBackend.List(c.Request.Context(), modelDir(model.ID))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to list files",
			})
			return
		}
		if len(entries) == 0 {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No files available for download",
			})
			return
		}

		archiveName := validation.SanitizeArchiveName(model.Name, model.ID)
		c.Header("Content-Type", "application/zip")
		c.Header("Content-Disposition", `attachment; filename="`+archiveName+`"`)

		telemetry.ModelArchiveDownloadsTotal.Inc()

		// The archive is streamed; once the first entry is written the status
		// line is already out, so later failures can only abort the stream.
		zipWriter := zip.NewWriter(c.Writer)
		for _, entry := range entries {
			// Stop producing entries when the client goes away.
			select {
			case <-c.Request.Context().Done():
				zipWriter.Close()
				return
			default:
			}

			reader, err := storageBackend.Download(c.Request.Context(), modelDir(model.ID)+"/"+entry.Name)
			if err != nil {
				// Files can vanish between enumeration and read (concurrent
				// model deletion); skip them rather than abort the archive.
				slog.Warn("archive export: file vanished, skipping",
					"model_id", model.ID,
					"file", entry.Name,
					"error", err,
				)
				continue
			}

			entryWriter, err := zipWriter.Create(entry.Name)
			if err != nil {
				reader.Close()
				slog.Error("archive export: aborting stream",
					"model_id", model.ID,
					"file", entry.Name,
					"error", err,
				)
				return
			}
			if _, err := io.Copy(entryWriter, reader); err != nil {
				reader.Close()
				slog.Error("archive export: aborting stream",
					"model_id", model.ID,
					"file", entry.Name,
					"error", err,
				)
				return
			}
			reader.Close()
		}

		if err := zipWriter.Close(); err != nil {
			slog.Error("archive export: failed to finalize archive",
				"model_id", model.ID,
				"error", err,
			)
		}
	}
}
