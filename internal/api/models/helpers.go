// Package models implements the HTTP handlers for model, version, file, and
// archive endpoints.
//
// All read endpoints collapse visibility denials into the same 404 response as
// a genuinely missing model so that a denied caller cannot confirm a model
// exists. The denial outcome is preserved internally: the handler marks the
// request context for the audit middleware and increments the denial counter.
package models

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	dbmodels "github.com/model-registry/model-registry/internal/db/models"
	"github.com/model-registry/model-registry/internal/db/repositories"
	"github.com/model-registry/model-registry/internal/middleware"
	"github.com/model-registry/model-registry/internal/telemetry"
	"github.com/model-registry/model-registry/internal/visibility"
)

// modelDir returns the storage directory for a model. Every model owns one
// flat directory shared by all of its versions; uploads overwrite by name.
func modelDir(modelID string) string {
	return "models/" + modelID
}

// notFound writes the uniform not-found response used for both missing models
// and hidden visibility denials.
func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error": "Model not found",
	})
}

// markDenied records a hidden visibility denial before the uniform 404 goes
// out: the audit middleware picks up the context flag, and the counter keeps
// the denied/missing distinction visible to operators.
func markDenied(c *gin.Context, modelID string) {
	c.Set(middleware.VisibilityDeniedKey, true)
	telemetry.VisibilityDenialsTotal.Inc()
	slog.Info("visibility denied",
		"model_id", modelID,
		"path", c.Request.URL.Path,
	)
}

// fetchModelForRead loads a model and applies the read visibility policy.
// It writes the error response and returns nil when the caller may not see
// the model (or it does not exist).
func fetchModelForRead(c *gin.Context, modelRepo *repositories.ModelRepository) *dbmodels.Model {
	return fetchModel(c, modelRepo, visibility.CheckRead)
}

// fetchModelForOwner loads a model and requires the caller to be its owner.
// Non-owners get the same hidden 404 as a read denial.
func fetchModelForOwner(c *gin.Context, modelRepo *repositories.ModelRepository) *dbmodels.Model {
	return fetchModel(c, modelRepo, visibility.CheckOwner)
}

func fetchModel(c *gin.Context, modelRepo *repositories.ModelRepository, check func(*dbmodels.Model, *string) visibility.Decision) *dbmodels.Model {
	modelID := c.Param("id")

	model, err := modelRepo.GetModelByID(c.Request.Context(), modelID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve model",
		})
		return nil
	}
	if model == nil {
		notFound(c)
		return nil
	}

	if check(model, middleware.ViewerID(c)) != visibility.Granted {
		markDenied(c, modelID)
		notFound(c)
		return nil
	}

	return model
}
