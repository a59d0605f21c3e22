// Package authz is the opaque authorization boundary. Policy logic lives
// upstream; the core only asks allow/deny before cost-bearing writes.
package authz

import (
	"context"
)

type Gate interface {
	// CanPerform reports whether actor may run action against resource.
	// Resource may be an entity instance or a type name for create checks.
	CanPerform(ctx context.Context, actorID uint, action string, resource interface{}) bool
}

// AllowAll is the default gate: every check passes. Deployments plug a real
// policy engine behind the interface.
type AllowAll struct{}

func (AllowAll) CanPerform(ctx context.Context, actorID uint, action string, resource interface{}) bool {
	return true
}
