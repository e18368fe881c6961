// model_repository.go implements ModelRepository, providing database queries for
// models and their versions, including the visibility-filtered listing and the
// transactional active-version swap.
package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/model-registry/model-registry/internal/db/models"
)

// ModelRepository handles model and model version database operations
type ModelRepository struct {
	db *sql.DB
}

// NewModelRepository creates a new ModelRepository
func NewModelRepository(db *sql.DB) *ModelRepository {
	return &ModelRepository{db: db}
}

// ListModelsFilter contains filters for the visibility-aware model listing.
// ViewerID nil means an anonymous request.
type ListModelsFilter struct {
	ViewerID *string
	TaskType string
	Limit    int
	Offset   int
}

// CreateModel creates a new model
func (r *ModelRepository) CreateModel(ctx context.Context, model *models.Model) error {
	model.ID = uuid.New().String()
	model.CreatedAt = time.Now()
	model.UpdatedAt = time.Now()

	query := `
		INSERT INTO models (id, name, description, task_type, zoom_level, owner_id, visibility, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		model.ID,
		model.Name,
		model.Description,
		model.TaskType,
		model.ZoomLevel,
		model.OwnerID,
		model.Visibility,
		model.CreatedAt,
		model.UpdatedAt,
	)

	return mapConstraintError(err)
}

// GetModelByID retrieves a model by ID with the owner's username joined.
// Visibility is NOT applied here: callers decide access and collapse denials
// into not-found at the handler edge.
func (r *ModelRepository) GetModelByID(ctx context.Context, modelID string) (*models.Model, error) {
	query := `
		SELECT m.id, m.name, m.description, m.task_type, m.zoom_level, m.owner_id, m.visibility,
		       m.created_at, m.updated_at, u.username
		FROM models m
		JOIN users u ON m.owner_id = u.id
		WHERE m.id = $1
	`

	model := &models.Model{}
	err := r.db.QueryRowContext(ctx, query, modelID).Scan(
		&model.ID,
		&model.Name,
		&model.Description,
		&model.TaskType,
		&model.ZoomLevel,
		&model.OwnerID,
		&model.Visibility,
		&model.CreatedAt,
		&model.UpdatedAt,
		&model.OwnerUsername,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return model, nil
}

// ListModels retrieves a paginated, visibility-filtered list of models with
// each model's active version joined in the same query to avoid N+1 lookups.
// Anonymous viewers see public models only; authenticated viewers additionally
// see members-tier models and their own private models.
func (r *ModelRepository) ListModels(ctx context.Context, filter ListModelsFilter) ([]*models.ModelWithActiveVersion, int, error) {
	where := ""
	args := []interface{}{}
	argCount := 0

	if filter.ViewerID != nil {
		argCount++
		where = fmt.Sprintf("(m.visibility IN ('public', 'members') OR m.owner_id = $%d)", argCount)
		args = append(args, *filter.ViewerID)
	} else {
		where = "m.visibility = 'public'"
	}

	if filter.TaskType != "" {
		argCount++
		where += fmt.Sprintf(" AND m.task_type = $%d", argCount)
		args = append(args, filter.TaskType)
	}

	// Get total count with the same filter
	var total int
	countQuery := `SELECT COUNT(*) FROM models m WHERE ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT m.id, m.name, m.description, m.task_type, m.zoom_level, m.owner_id, m.visibility,
		       m.created_at, m.updated_at, u.username,
		       v.id, v.version, v.storage_path, v.total_byte_size, v.metadata, v.created_at
		FROM models m
		JOIN users u ON m.owner_id = u.id
		LEFT JOIN model_versions v ON v.model_id = m.id AND v.is_active
		WHERE %s
		ORDER BY m.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argCount+1, argCount+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	results := make([]*models.ModelWithActiveVersion, 0)
	for rows.Next() {
		item := &models.ModelWithActiveVersion{}
		var (
			versionID    sql.NullString
			versionLabel sql.NullString
			storagePath  sql.NullString
			byteSize     sql.NullInt64
			metadata     []byte
			versionAt    sql.NullTime
		)
		err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Description,
			&item.TaskType,
			&item.ZoomLevel,
			&item.OwnerID,
			&item.Visibility,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.OwnerUsername,
			&versionID,
			&versionLabel,
			&storagePath,
			&byteSize,
			&metadata,
			&versionAt,
		)
		if err != nil {
			return nil, 0, err
		}
		if versionID.Valid {
			item.ActiveVersion = &models.ModelVersion{
				ID:            versionID.String,
				ModelID:       item.ID,
				Version:       versionLabel.String,
				StoragePath:   storagePath.String,
				TotalByteSize: byteSize.Int64,
				Metadata:      json.RawMessage(metadata),
				IsActive:      true,
				CreatedAt:     versionAt.Time,
			}
		}
		results = append(results, item)
	}

	return results, total, rows.Err()
}

// UpdateVisibility changes a model's visibility tier
func (r *ModelRepository) UpdateVisibility(ctx context.Context, modelID, visibility string) error {
	query := `
		UPDATE models
		SET visibility = $2, updated_at = $3
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, modelID, visibility, time.Now())
	return err
}

// DeleteModel deletes a model (cascades to its versions)
func (r *ModelRepository) DeleteModel(ctx context.Context, modelID string) error {
	query := `DELETE FROM models WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, modelID)
	return err
}

// CreateVersion inserts a new version and makes it the active one. The
// deactivation of the previous active version and the insert happen in a
// single transaction so there is never a moment with two active versions; the
// partial unique index on model_versions backs this up at the schema level.
func (r *ModelRepository) CreateVersion(ctx context.Context, version *models.ModelVersion) error {
	version.ID = uuid.New().String()
	version.IsActive = true
	version.CreatedAt = time.Now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	deactivate := `
		UPDATE model_versions
		SET is_active = FALSE
		WHERE model_id = $1 AND is_active
	`
	if _, err := tx.ExecContext(ctx, deactivate, version.ModelID); err != nil {
		return err
	}

	insert := `
		INSERT INTO model_versions (id, model_id, version, storage_path, total_byte_size, metadata, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = tx.ExecContext(ctx, insert,
		version.ID,
		version.ModelID,
		version.Version,
		version.StoragePath,
		version.TotalByteSize,
		[]byte(version.Metadata),
		version.IsActive,
		version.CreatedAt,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// ListVersions retrieves all versions of a model, newest first
func (r *ModelRepository) ListVersions(ctx context.Context, modelID string) ([]*models.ModelVersion, error) {
	query := `
		SELECT id, model_id, version, storage_path, total_byte_size, metadata, is_active, created_at
		FROM model_versions
		WHERE model_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, modelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	versions := make([]*models.ModelVersion, 0)
	for rows.Next() {
		v := &models.ModelVersion{}
		var metadata []byte
		err := rows.Scan(
			&v.ID,
			&v.ModelID,
			&v.Version,
			&v.StoragePath,
			&v.TotalByteSize,
			&metadata,
			&v.IsActive,
			&v.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		v.Metadata = json.RawMessage(metadata)
		versions = append(versions, v)
	}

	return versions, rows.Err()
}

// GetActiveVersion retrieves the active version of a model, or nil if the
// model has no versions yet
func (r *ModelRepository) GetActiveVersion(ctx context.Context, modelID string) (*models.ModelVersion, error) {
	query := `
		SELECT id, model_id, version, storage_path, total_byte_size, metadata, is_active, created_at
		FROM model_versions
		WHERE model_id = $1 AND is_active
	`

	v := &models.ModelVersion{}
	var metadata []byte
	err := r.db.QueryRowContext(ctx, query, modelID).Scan(
		&v.ID,
		&v.ModelID,
		&v.Version,
		&v.StoragePath,
		&v.TotalByteSize,
		&metadata,
		&v.IsActive,
		&v.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	v.Metadata = json.RawMessage(metadata)
	return v, nil
}
