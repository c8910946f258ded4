package authz

import "github.com/agrobissau/agrobissau-backend/internal/domain"

// Principal is the authenticated caller, extracted once by the auth
// middleware and passed explicitly into services.
type Principal struct {
	UserID uint64
	Name   string
	Role   domain.UserRole
}

// IsAdmin reports whether the principal has the admin role
func (p Principal) IsAdmin() bool {
	return p.Role == domain.RoleAdmin
}

// Action something a principal attempts against a resource
type Action string

const (
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionFeature Action = "feature"
	ActionResolve Action = "resolve"
)

// CanManageOwned is the single ownership policy: the resource owner and
// admins may act, nobody else.
func CanManageOwned(p Principal, ownerID uint64) bool {
	return p.UserID == ownerID || p.IsAdmin()
}

// Allow maps (action, resource owner, principal) to a decision.
// Admin-only actions ignore ownership.
func Allow(p Principal, action Action, ownerID uint64) bool {
	switch action {
	case ActionResolve:
		return p.IsAdmin()
	case ActionUpdate, ActionDelete, ActionFeature:
		return CanManageOwned(p, ownerID)
	default:
		return false
	}
}
