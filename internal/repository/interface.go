// Package repository provides tenant-scoped access to persisted entities.
// Every user and project query carries an implicit tenant filter derived from
// the authenticated principal; callers cannot widen it.
package repository

import (
	"github.com/JeanCorreaBarros/saas-multitenant-basic/internal/model"
)

// TenantStore persists tenants. Tenants are the partition roots and are the
// only entity not scoped by a tenant id.
type TenantStore interface {
	// GetByID returns the tenant regardless of activation state.
	GetByID(id uint) (*model.Tenant, error)
	// GetBySubdomain resolves a tenant by its lowercased subdomain.
	GetBySubdomain(subdomain string) (*model.Tenant, error)
	// Create inserts a tenant, translating subdomain/domain uniqueness
	// violations into conflicts.
	Create(tenant *model.Tenant) error
	// CreateWithAdmin atomically creates a tenant and its first admin user.
	// Partial application is never observable.
	CreateWithAdmin(tenant *model.Tenant, admin *model.User) error
	Update(tenant *model.Tenant) error
	// Deactivate soft-deletes a tenant by flipping is_active to false.
	Deactivate(id uint) error
	CountActive() (int64, error)
}

// UserStore persists users. All lookups except FindActive are scoped to a
// tenant.
type UserStore interface {
	// FindActive returns the user by primary key when is_active is true.
	// Used by the authorization pipeline before a tenant is bound.
	FindActive(id uint) (*model.User, error)
	GetByID(tenantID, id uint) (*model.User, error)
	GetByEmail(tenantID uint, email string) (*model.User, error)
	List(tenantID uint, q ListQuery) ([]model.User, int64, error)
	Create(user *model.User) error
	Update(user *model.User) error
	// Deactivate soft-deletes a user within the tenant.
	Deactivate(tenantID, id uint) error
}

// ProjectStore persists projects, always scoped to a tenant.
type ProjectStore interface {
	GetByID(tenantID, id uint) (*model.Project, error)
	List(tenantID uint, q ListQuery) ([]model.Project, int64, error)
	Create(project *model.Project) error
	Update(project *model.Project) error
	// Delete hard-deletes a project within the tenant.
	Delete(tenantID, id uint) error
}
