package visibility

import (
	"testing"

	"github.com/model-registry/model-registry/internal/db/models"
)

func strPtr(s string) *string { return &s }

func TestCheckRead(t *testing.T) {
	owner := "owner-1"
	other := "other-1"

	tests := []struct {
		name       string
		visibility string
		viewerID   *string
		want       Decision
	}{
		{"public anonymous", models.VisibilityPublic, nil, Granted},
		{"public other user", models.VisibilityPublic, strPtr(other), Granted},
		{"public owner", models.VisibilityPublic, strPtr(owner), Granted},

		{"members anonymous", models.VisibilityMembers, nil, DeniedHidden},
		{"members other user", models.VisibilityMembers, strPtr(other), Granted},
		{"members owner", models.VisibilityMembers, strPtr(owner), Granted},

		{"private anonymous", models.VisibilityPrivate, nil, DeniedHidden},
		{"private other user", models.VisibilityPrivate, strPtr(other), DeniedHidden},
		{"private owner", models.VisibilityPrivate, strPtr(owner), Granted},

		{"unknown tier denies", "internal", strPtr(owner), DeniedHidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &models.Model{OwnerID: owner, Visibility: tt.visibility}
			if got := CheckRead(model, tt.viewerID); got != tt.want {
				t.Errorf("CheckRead() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckOwner(t *testing.T) {
	owner := "owner-1"
	other := "other-1"

	tests := []struct {
		name       string
		visibility string
		viewerID   *string
		want       Decision
	}{
		{"owner of private", models.VisibilityPrivate, strPtr(owner), Granted},
		{"owner of public", models.VisibilityPublic, strPtr(owner), Granted},
		{"anonymous", models.VisibilityPublic, nil, DeniedHidden},
		// A public model is readable by anyone, but managing it is still
		// owner-only and the denial stays hidden.
		{"other user on public", models.VisibilityPublic, strPtr(other), DeniedHidden},
		{"other user on private", models.VisibilityPrivate, strPtr(other), DeniedHidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &models.Model{OwnerID: owner, Visibility: tt.visibility}
			if got := CheckOwner(model, tt.viewerID); got != tt.want {
				t.Errorf("CheckOwner() = %v, want %v", got, tt.want)
			}
		})
	}
}
