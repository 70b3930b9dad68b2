package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JeanCorreaBarros/saas-multitenant-basic/internal/model"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		name string
		op   Operation
		role model.Role
		want bool
	}{
		{"admin can delete projects", ProjectDelete, model.RoleAdmin, true},
		{"user cannot delete projects", ProjectDelete, model.RoleUser, false},
		{"viewer can list projects", ProjectList, model.RoleViewer, true},
		{"viewer cannot create projects", ProjectCreate, model.RoleViewer, false},
		{"user can create projects", ProjectCreate, model.RoleUser, true},
		{"user can update projects", ProjectUpdate, model.RoleUser, true},
		{"user cannot list users", UserList, model.RoleUser, false},
		{"viewer cannot list users", UserList, model.RoleViewer, false},
		{"admin can manage users", UserDelete, model.RoleAdmin, true},
		{"admin can update tenant", TenantUpdate, model.RoleAdmin, true},
		{"user cannot update tenant", TenantUpdate, model.RoleUser, false},
		{"unknown operation is denied", Operation("nonsense"), model.RoleAdmin, false},
		{"unknown role is denied", ProjectList, model.Role("ROOT"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.op, tt.role))
		})
	}
}

func TestViewerHasNoWriteOperations(t *testing.T) {
	writes := []Operation{
		TenantCreate, TenantUpdate, TenantDelete,
		UserCreate, UserUpdate, UserDelete,
		ProjectCreate, ProjectUpdate, ProjectDelete,
	}
	for _, op := range writes {
		assert.False(t, Allowed(op, model.RoleViewer), "viewer must not be allowed %s", op)
	}
}
