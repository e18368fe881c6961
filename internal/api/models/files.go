// files.go implements the flat file listing and single-file download endpoints.
package models

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/model-registry/model-registry/internal/db/repositories"
	"github.com/model-registry/model-registry/internal/storage"
	"github.com/model-registry/model-registry/internal/telemetry"
	"github.com/model-registry/model-registry/internal/validation"
)

// @Summary      List model files
// @Description  List the files in the model's storage location (the flat union of all uploaded versions). A model that never received an upload returns an empty list.
// @Tags         Models
// @Produce      json
// @Param        id  path  string  true  "Model ID"
// @Success      200  {object}  map[string]interface{}  "files: [{name, size, last_modified}]"
// @Failure      404  {object}  map[string]interface{}  "Model not found"
// @Failure      500  {object}  map[string]interface{}  "Internal server error"
// @Router       /api/v1/models/{id}/files [get]
// ListFilesHandler handles file listing requests
// Implements: GET /api/v1/models/:id/files
func ListFilesHandler(db *sql.DB, storageBackend storage.Storage) gin.HandlerFunc {
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

		files := make([]gin.H, 0, len(entries))
		for _, entry := range entries {
			files = append(files, gin.H{
				"name":          entry.Name,
				"size":          entry.Size,
				"last_modified": entry.LastModified,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"files": files,
		})
	}
}

// @Summary      Download model file
// @Description  Download a single file from the model's storage location.
// @Tags         Models
// @Produce      octet-stream
// @Param        id        path  string  true  "Model ID"
// @Param        filename  path  string  true  "File name"
// @Success      200  {file}    file
// @Failure      400  {object}  map[string]interface{}  "Invalid file name"
// @Failure      404  {object}  map[string]interface{}  "Model or file not found"
// @Failure      500  {object}  map[string]interface{}  "Internal server error"
// @Router       /api/v1/models/{id}/files/{filename} [get]
// DownloadFileHandler handles single file downloads
// Implements: GET /api/v1/models/:id/files/:filename
func DownloadFileHandler(db *sql.DB, storageBackend storage.Storage) gin.HandlerFunc {
	modelRepo := repositories.NewModelRepository(db)

	return func(c *gin.Context) {
		model := fetchModelForRead(c, modelRepo)
		if model == nil {
			return
		}

		filename := c.Param("filename")
		if err := validation.ValidateUploadFilename(filename); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// The listing provides the content length for the streamed response.
		entries, err := storageBackend.List(c.Request.Context(), modelDir(model.ID))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to list files",
			})
			return
		}
		var size int64 = -1
		for _, entry := range entries {
			if entry.Name == filename {
				size = entry.Size
				break
			}
		}
		if size < 0 {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "File not found",
			})
			return
		}

		reader, err := storageBackend.Download(c.Request.Context(), modelDir(model.ID)+"/"+filename)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "File not found",
			})
			return
		}
		defer reader.Close()

		telemetry.FileDownloadsTotal.Inc()

		extraHeaders := map[string]string{
			"Content-Disposition": fmt.Sprintf("attachment; filename=%q", filename),
		}
		c.DataFromReader(http.StatusOK, size, "application/octet-stream", reader, extraHeaders)
	}
}
