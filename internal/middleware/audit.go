// audit.go provides Gin middleware that records write operations and
// visibility denials to the audit log. Denied reads are reported to the client
// as plain not-found responses; the audit trail is the only place where the
// found/denied distinction survives.
package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/model-registry/model-registry/internal/config"
	"github.com/model-registry/model-registry/internal/db/models"
	"github.com/model-registry/model-registry/internal/db/repositories"
	"github.com/model-registry/model-registry/internal/safego"
)

// VisibilityDeniedKey is set on the gin.Context by handlers when a request was
// rejected by the visibility policy. The middleware picks it up to flag the
// audit entry; the response itself stays an ordinary 404.
const VisibilityDeniedKey = "visibility_denied"

// AuditMiddleware logs write operations and (optionally) visibility-denied
// reads to the audit log. Writes are asynchronous and best-effort: a failed
// audit insert never affects the response.
func AuditMiddleware(auditRepo *repositories.AuditRepository, auditCfg *config.AuditConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Process request first
		c.Next()

		if auditCfg != nil && !auditCfg.Enabled {
			return
		}

		if c.Request.Method == "OPTIONS" {
			return
		}

		denied := c.GetBool(VisibilityDeniedKey)
		isReadOp := c.Request.Method == "GET"
		isFailed := c.Writer.Status() >= 400

		// Default behavior: log successful writes, plus denied reads when
		// configured to preserve them.
		if isReadOp && !denied {
			return
		}
		if isFailed && !denied {
			return
		}
		if denied && (auditCfg == nil || !auditCfg.LogDenied) {
			return
		}

		action := fmt.Sprintf("%s %s", c.Request.Method, c.Request.URL.Path)
		ipAddress := c.ClientIP()

		entry := &models.AuditLog{
			Action:     action,
			StatusCode: c.Writer.Status(),
			Denied:     denied,
			IPAddress:  &ipAddress,
		}

		if userID, exists := c.Get("user_id"); exists {
			if uid, ok := userID.(string); ok && uid != "" {
				entry.UserID = &uid
			}
		}

		// resource_id is a UUID column; skip values that would not store.
		if modelID := c.Param("id"); modelID != "" && uuid.Validate(modelID) == nil {
			resourceType := "model"
			entry.ResourceType = &resourceType
			entry.ResourceID = &modelID
		}

		safego.Go(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = auditRepo.CreateAuditLog(ctx, entry)
		})
	}
}
