// Package models - model.go defines the Model and ModelVersion types representing
// ML model artifacts in the registry and their uploaded version metadata.
package models

import (
	"encoding/json"
	"time"
)

// Task types a model can be trained for.
const (
	TaskDetect = "detect"
	TaskOBB    = "obb"
	TaskPose   = "pose"
)

// Visibility tiers. Private models are owner-only, members models are visible
// to any authenticated user, public models are visible to everyone.
const (
	VisibilityPrivate = "private"
	VisibilityMembers = "members"
	VisibilityPublic  = "public"
)

// Zoom level bounds (inclusive) for the imagery a model was trained on.
const (
	MinZoomLevel = 8
	MaxZoomLevel = 21
)

// Model represents an ML model in the registry
type Model struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TaskType    string    `json:"task_type"`
	ZoomLevel   int       `json:"zoom_level"`
	OwnerID     string    `json:"owner_id"`
	Visibility  string    `json:"visibility"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	// Joined fields (not stored in models table)
	OwnerUsername *string `json:"owner_username,omitempty"`
}

// ModelWithActiveVersion is returned by list/get endpoints and includes the
// active version's enriched metadata fetched in a single query to avoid N+1
// lookups.
type ModelWithActiveVersion struct {
	Model
	ActiveVersion *ModelVersion `json:"active_version,omitempty"`
}

// ModelVersion represents one uploaded file set for a model. Versions are
// append-only; at most one version per model is active at a time.
type ModelVersion struct {
	ID            string          `json:"id"`
	ModelID       string          `json:"model_id"`
	Version       string          `json:"version"`
	StoragePath   string          `json:"storage_path"`
	TotalByteSize int64           `json:"total_byte_size"`
	// Metadata holds the enriched training metadata document, including the
	// injected model_hash content fingerprint.
	Metadata  json.RawMessage `json:"metadata"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
}

// MetadataMap decodes the metadata document into a generic map. Returns an
// empty map when no metadata was stored.
func (v *ModelVersion) MetadataMap() (map[string]interface{}, error) {
	if len(v.Metadata) == 0 {
		return map[string]interface{}{}, nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(v.Metadata, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = map[string]interface{}{}
	}
	return m, nil
}
