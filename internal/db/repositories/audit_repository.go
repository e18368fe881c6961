// audit_repository.go implements AuditRepository, providing database queries for
// writing and retrieving audit log entries. It is the one repository built on
// sqlx rather than database/sql: the filtered listing maps rows straight into
// structs via db tags instead of hand-written Scan lists.
package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/model-registry/model-registry/internal/db/models"
)

// AuditRepository handles audit log database operations
type AuditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository creates a new AuditRepository
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// AuditFilters contains filters for querying audit logs
type AuditFilters struct {
	UserID     *string
	DeniedOnly bool
	StartDate  *time.Time
	EndDate    *time.Time
}

// CreateAuditLog creates a new audit log entry
func (r *AuditRepository) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	log.ID = uuid.New().String()
	log.CreatedAt = time.Now()

	query := `
		INSERT INTO audit_logs (id, user_id, action, resource_type, resource_id, status_code, denied, ip_address, created_at)
		VALUES (:id, :user_id, :action, :resource_type, :resource_id, :status_code, :denied, :ip_address, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, log)
	return err
}

// ListAuditLogs retrieves audit log entries matching the filters, newest first
func (r *AuditRepository) ListAuditLogs(ctx context.Context, filters AuditFilters, limit, offset int) ([]models.AuditLog, error) {
	where := "1=1"
	args := []interface{}{}
	argCount := 0

	if filters.UserID != nil {
		argCount++
		where += fmt.Sprintf(" AND user_id = $%d", argCount)
		args = append(args, *filters.UserID)
	}
	if filters.DeniedOnly {
		where += " AND denied"
	}
	if filters.StartDate != nil {
		argCount++
		where += fmt.Sprintf(" AND created_at >= $%d", argCount)
		args = append(args, *filters.StartDate)
	}
	if filters.EndDate != nil {
		argCount++
		where += fmt.Sprintf(" AND created_at <= $%d", argCount)
		args = append(args, *filters.EndDate)
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, action, resource_type, resource_id, status_code, denied, ip_address, created_at
		FROM audit_logs
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argCount+1, argCount+2)
	args = append(args, limit, offset)

	logs := make([]models.AuditLog, 0)
	if err := r.db.SelectContext(ctx, &logs, query, args...); err != nil {
		return nil, err
	}

	return logs, nil
}
