// Package visibility decides whether a viewer may see or manage a model.
// Decisions distinguish "granted" from "denied but hidden": a denial never
// reveals that the model exists, so handlers collapse DeniedHidden into the
// same not-found response as a genuinely missing model. The found/denied
// distinction survives only in audit logs and metrics.
package visibility

import "github.com/model-registry/model-registry/internal/db/models"

// Decision is the outcome of a visibility check.
type Decision int

const (
	// Granted means the viewer may perform the operation.
	Granted Decision = iota
	// DeniedHidden means the viewer may not perform the operation, and the
	// response must be indistinguishable from the model not existing.
	DeniedHidden
)

// CheckRead decides whether the viewer may read the model. viewerID nil means
// an anonymous request.
//
//	public  — anyone, including anonymous
//	members — any authenticated user
//	private — owner only
func CheckRead(model *models.Model, viewerID *string) Decision {
	switch model.Visibility {
	case models.VisibilityPublic:
		return Granted
	case models.VisibilityMembers:
		if viewerID != nil {
			return Granted
		}
	case models.VisibilityPrivate:
		if viewerID != nil && *viewerID == model.OwnerID {
			return Granted
		}
	}
	return DeniedHidden
}

// CheckOwner decides whether the viewer may manage the model (upload versions,
// change visibility, delete). Only the owner may; everyone else gets the
// hidden denial regardless of the model's visibility tier.
func CheckOwner(model *models.Model, viewerID *string) Decision {
	if viewerID != nil && *viewerID == model.OwnerID {
		return Granted
	}
	return DeniedHidden
}
