// model.go validates model attributes (task type, zoom level, visibility tier)
// against the sets the registry recognizes.
package validation

import (
	"fmt"

	"github.com/model-registry/model-registry/internal/db/models"
)

// SupportedTaskTypes lists all task types a model can be registered for
var SupportedTaskTypes = []string{
	models.TaskDetect,
	models.TaskOBB,
	models.TaskPose,
}

// SupportedVisibilities lists the visibility tiers a model can carry
var SupportedVisibilities = []string{
	models.VisibilityPrivate,
	models.VisibilityMembers,
	models.VisibilityPublic,
}

// ValidateTaskType validates that the task type is supported
func ValidateTaskType(taskType string) error {
	if taskType == "" {
		return fmt.Errorf("task type cannot be empty")
	}
	if !contains(SupportedTaskTypes, taskType) {
		return fmt.Errorf("unsupported task type: %s (supported: %v)", taskType, SupportedTaskTypes)
	}
	return nil
}

// ValidateZoomLevel validates that the zoom level is within the supported range
func ValidateZoomLevel(zoomLevel int) error {
	if zoomLevel < models.MinZoomLevel || zoomLevel > models.MaxZoomLevel {
		return fmt.Errorf("zoom level must be between %d and %d, got %d",
			models.MinZoomLevel, models.MaxZoomLevel, zoomLevel)
	}
	return nil
}

// ValidateVisibility validates that the visibility tier is recognized
func ValidateVisibility(visibility string) error {
	if visibility == "" {
		return fmt.Errorf("visibility cannot be empty")
	}
	if !contains(SupportedVisibilities, visibility) {
		return fmt.Errorf("unsupported visibility: %s (supported: %v)", visibility, SupportedVisibilities)
	}
	return nil
}

// ValidateModelName validates the model display name
func ValidateModelName(name string) error {
	if name == "" {
		return fmt.Errorf("model name cannot be empty")
	}
	if len(name) > 255 {
		return fmt.Errorf("model name too long: %d characters (max 255)", len(name))
	}
	return nil
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
