package authz

import (
	"context"

	"github.com/google/uuid"

	"github.com/sidelinehq/sideline-backend/pkg/enums"
	pkgerrors "github.com/sidelinehq/sideline-backend/pkg/errors"
)

// Action is a capability an actor may hold over user accounts.
type Action string

const (
	// ActionRead covers listing users, viewing profiles, and reading group
	// rosters.
	ActionRead Action = "read"
	// ActionManage covers creating, updating, and deleting accounts.
	ActionManage Action = "manage"
	// ActionMasquerade covers browsing the app as another user.
	ActionMasquerade Action = "masquerade"
)

// Actor identifies the real authenticated user behind a request. During a
// masquerade session this is still the admin, never the target.
type Actor struct {
	ID   uuid.UUID
	Role enums.SystemRole
}

// Target is the account an action applies to. Nil for collection-level
// actions such as listing.
type Target struct {
	ID   uuid.UUID
	Role enums.SystemRole
}

// Authorizer answers whether an actor may perform an action. A nil return
// grants; any error denies.
type Authorizer interface {
	Can(ctx context.Context, actor Actor, action Action, target *Target) error
}

// RolePolicy grants capabilities from the actor's system role: admins hold
// every action, members hold read only. Masquerade additionally requires a
// target that is neither the actor nor another admin.
type RolePolicy struct{}

// NewRolePolicy returns the standard role-based policy.
func NewRolePolicy() *RolePolicy {
	return &RolePolicy{}
}

func (p *RolePolicy) Can(_ context.Context, actor Actor, action Action, target *Target) error {
	switch action {
	case ActionRead:
		if actor.Role == enums.SystemRoleAdmin || actor.Role == enums.SystemRoleMember {
			return nil
		}
	case ActionManage:
		if actor.Role == enums.SystemRoleAdmin {
			return nil
		}
	case ActionMasquerade:
		if actor.Role != enums.SystemRoleAdmin {
			break
		}
		if target == nil {
			return pkgerrors.New(pkgerrors.CodeForbidden, "masquerade requires a target user")
		}
		if target.ID == actor.ID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "cannot masquerade as yourself")
		}
		if target.Role == enums.SystemRoleAdmin {
			return pkgerrors.New(pkgerrors.CodeForbidden, "cannot masquerade as an admin")
		}
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeForbidden, "insufficient role")
}
