package model

import (
	"time"
)

// User represents a user account within a tenant. The same email may exist
// under different tenants as distinct accounts; the (email, tenant_id) pair
// is unique.
type User struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Email       string     `json:"email" gorm:"type:varchar(100);uniqueIndex:idx_users_email_tenant;not null"`
	Password    string     `json:"-" gorm:"type:varchar(255);not null"`
	FirstName   string     `json:"first_name" gorm:"type:varchar(100)"`
	LastName    string     `json:"last_name" gorm:"type:varchar(100)"`
	Role        Role       `json:"role" gorm:"type:varchar(20);not null;default:'USER'"`
	IsActive    bool       `json:"is_active" gorm:"default:true"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	TenantID    uint       `json:"tenant_id" gorm:"uniqueIndex:idx_users_email_tenant;index;not null"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Tenant *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
}
