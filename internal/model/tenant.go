package model

import (
	"time"
)

// Tenant represents an isolated organization. Every user and project row is
// partitioned by its owning tenant.
type Tenant struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	Subdomain string    `json:"subdomain" gorm:"type:varchar(63);uniqueIndex;not null"`
	Domain    *string   `json:"domain,omitempty" gorm:"type:varchar(255);uniqueIndex"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Users    []User    `json:"users,omitempty" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
	Projects []Project `json:"projects,omitempty" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
}
