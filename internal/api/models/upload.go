// upload.go implements the model version upload, fingerprinting, and
// registration endpoint.
package models

import (
	"database/sql"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/model-registry/model-registry/internal/config"
	dbmodels "github.com/model-registry/model-registry/internal/db/models"
	"github.com/model-registry/model-registry/internal/db/repositories"
	"github.com/model-registry/model-registry/internal/metadata"
	"github.com/model-registry/model-registry/internal/storage"
	"github.com/model-registry/model-registry/internal/telemetry"
	"github.com/model-registry/model-registry/internal/validation"
	"github.com/model-registry/model-registry/pkg/checksum"
)

// metadataFileName is the reserved upload name parsed as the base metadata
// document for the version.
const metadataFileName = "metadata.yaml"

// defaultVersionLabel is used when the uploader does not name the version.
// Labels are free-form: no uniqueness or ordering is imposed.
const defaultVersionLabel = "1.0.0"

// @Summary      Upload model version
// @Description  Upload a new set of model files as a version (multipart, max 100MB aggregate). The new version becomes active and all previous versions are deactivated. A file named metadata.yaml is parsed as the version's base metadata; the content fingerprint is injected as model_hash. Owner only.
// @Tags         Models
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id            path      string  true   "Model ID"
// @Param        version       formData  string  false  "Version label (default 1.0.0)"
// @Param        created_date  formData  string  false  "Creation date override, stored as form_created_date"
// @Param        files         formData  file    true   "Model files (repeatable)"
// @Success      201  {object}  models.ModelVersion
// @Failure      400  {object}  map[string]interface{}  "Invalid form, file name, or metadata.yaml"
// @Failure      401  {object}  map[string]interface{}  "Unauthorized"
// @Failure      404  {object}  map[string]interface{}  "Model not found"
// @Failure      500  {object}  map[string]interface{}  "Internal server error"
// @Router       /api/v1/models/{id}/versions [post]
// UploadVersionHandler handles version uploads
// Implements: POST /api/v1/models/:id/versions
// Accepts multipart form with: version (optional), created_date (optional), files
func UploadVersionHandler(db *sql.DB, storageBackend storage.Storage, cfg *config.Config) gin.HandlerFunc {
	modelRepo := repositories.NewModelRepository(db)

	return func(c *gin.Context) {
		model := fetchModelForOwner(c, modelRepo)
		if model == nil {
			return
		}

		// Parse multipart form (max 100MB aggregate)
		if err := c.Request.ParseMultipartForm(100 << 20); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Failed to parse multipart form",
			})
			return
		}

		fileHeaders := c.Request.MultipartForm.File["files"]
		if len(fileHeaders) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "No files provided",
			})
			return
		}

		for _, fh := range fileHeaders {
			if err := validation.ValidateUploadFilename(fh.Filename); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}

		versionLabel := c.PostForm("version")
		if versionLabel == "" {
			versionLabel = defaultVersionLabel
		}
		createdDate := c.PostForm("created_date")

		// Fingerprint the upload set before anything is persisted. The
		// multipart headers can be reopened, so this pass does not consume
		// the uploads.
		fingerprint, err := fingerprintUploads(fileHeaders)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to fingerprint uploaded files",
			})
			return
		}

		// Parse metadata.yaml if present; an empty document is fine.
		baseMetadata := map[string]interface{}{}
		for _, fh := range fileHeaders {
			if fh.Filename != metadataFileName {
				continue
			}
			content, err := readUpload(fh)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Failed to read metadata.yaml",
				})
				return
			}
			baseMetadata, err = metadata.ParseYAML(content)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{
					"error": "Invalid metadata.yaml: " + err.Error(),
				})
				return
			}
			break
		}

		// Persist the files into the model's flat storage directory,
		// overwriting by name. Partial uploads are deliberately left in place
		// on failure: a name may shadow a file from an earlier version, and
		// removing it would corrupt the currently active version.
		var totalSize int64
		for _, fh := range fileHeaders {
			file, err := fh.Open()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Failed to read uploaded file",
				})
				return
			}
			result, err := storageBackend.Upload(c.Request.Context(), modelDir(model.ID)+"/"+fh.Filename, file)
			file.Close()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Failed to store uploaded file",
				})
				return
			}
			totalSize += result.Size
		}

		baseMetadata["model_hash"] = fingerprint
		if createdDate != "" {
			baseMetadata["form_created_date"] = createdDate
		}
		if _, ok := baseMetadata["model_format"]; !ok {
			baseMetadata["model_format"] = metadata.CanonicalModelFormat
		}
		enriched := metadata.Enrich(baseMetadata)

		metadataJSON, err := json.Marshal(enriched)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to encode metadata",
			})
			return
		}

		version := &dbmodels.ModelVersion{
			ModelID:       model.ID,
			Version:       versionLabel,
			StoragePath:   modelDir(model.ID),
			TotalByteSize: totalSize,
			Metadata:      json.RawMessage(metadataJSON),
		}
		if err := modelRepo.CreateVersion(c.Request.Context(), version); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to register version",
			})
			return
		}

		telemetry.VersionUploadsTotal.WithLabelValues(model.TaskType).Inc()

		c.JSON(http.StatusCreated, version)
	}
}

// fingerprintUploads computes the content-addressed fingerprint of the upload
// set. Order of the multipart parts does not matter; renaming a file does.
func fingerprintUploads(fileHeaders []*multipart.FileHeader) (string, error) {
	files := make([]checksum.File, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		file, err := fh.Open()
		if err != nil {
			return "", err
		}
		defer file.Close()
		files = append(files, checksum.File{Name: fh.Filename, Reader: file})
	}
	return checksum.FileSetFingerprint(files)
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}
