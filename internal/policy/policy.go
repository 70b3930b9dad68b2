// Package policy declares which roles may perform each operation. Routes
// consult this single table through the authorization middleware instead of
// carrying ad-hoc role checks.
package policy

import (
	"github.com/JeanCorreaBarros/saas-multitenant-basic/internal/model"
)

// Operation identifies a role-gated API operation.
type Operation string

const (
	TenantList   Operation = "tenant:list"
	TenantGet    Operation = "tenant:get"
	TenantCreate Operation = "tenant:create"
	TenantUpdate Operation = "tenant:update"
	TenantDelete Operation = "tenant:delete"

	UserList   Operation = "user:list"
	UserGet    Operation = "user:get"
	UserCreate Operation = "user:create"
	UserUpdate Operation = "user:update"
	UserDelete Operation = "user:delete"

	ProjectList   Operation = "project:list"
	ProjectGet    Operation = "project:get"
	ProjectCreate Operation = "project:create"
	ProjectUpdate Operation = "project:update"
	ProjectDelete Operation = "project:delete"
)

// allowSets maps each operation to the roles permitted to perform it.
// Enforcement is explicit membership, not a numeric hierarchy. Ownership
// rules (project update by its creator, user self-update) are enforced by
// the handlers on top of these gates.
var allowSets = map[Operation][]model.Role{
	TenantList:   {model.RoleAdmin},
	TenantGet:    {model.RoleAdmin},
	TenantCreate: {model.RoleAdmin},
	TenantUpdate: {model.RoleAdmin},
	TenantDelete: {model.RoleAdmin},

	UserList:   {model.RoleAdmin},
	UserGet:    {model.RoleAdmin},
	UserCreate: {model.RoleAdmin},
	UserUpdate: {model.RoleAdmin},
	UserDelete: {model.RoleAdmin},

	ProjectList:   {model.RoleAdmin, model.RoleUser, model.RoleViewer},
	ProjectGet:    {model.RoleAdmin, model.RoleUser, model.RoleViewer},
	ProjectCreate: {model.RoleAdmin, model.RoleUser},
	ProjectUpdate: {model.RoleAdmin, model.RoleUser},
	ProjectDelete: {model.RoleAdmin},
}

// Allowed reports whether the role may perform the operation. Unknown
// operations are denied.
func Allowed(op Operation, role model.Role) bool {
	for _, allowed := range allowSets[op] {
		if role == allowed {
			return true
		}
	}
	return false
}
