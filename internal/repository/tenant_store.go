package repository

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/JeanCorreaBarros/saas-multitenant-basic/internal/model"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/pkg/apperror"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/prometheus"
)

// GormTenantStore implements TenantStore on top of an injected gorm handle.
type GormTenantStore struct {
	db *gorm.DB
}

func NewTenantStore(db *gorm.DB) *GormTenantStore {
	return &GormTenantStore{db: db}
}

func (s *GormTenantStore) GetByID(id uint) (*model.Tenant, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var tenant model.Tenant
	if err := s.db.First(&tenant, id).Error; err != nil {
		return nil, apperror.FromDB(err, nil)
	}
	return &tenant, nil
}

func (s *GormTenantStore) GetBySubdomain(subdomain string) (*model.Tenant, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var tenant model.Tenant
	err := s.db.Where("subdomain = ?", strings.ToLower(subdomain)).First(&tenant).Error
	if err != nil {
		return nil, apperror.FromDB(err, nil)
	}
	return &tenant, nil
}

func (s *GormTenantStore) Create(tenant *model.Tenant) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	tenant.Subdomain = strings.ToLower(tenant.Subdomain)
	if err := s.db.Create(tenant).Error; err != nil {
		return translateTenantConflict(err)
	}
	return nil
}

func (s *GormTenantStore) CreateWithAdmin(tenant *model.Tenant, admin *model.User) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	tenant.Subdomain = strings.ToLower(tenant.Subdomain)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(tenant).Error; err != nil {
			return err
		}
		admin.TenantID = tenant.ID
		return tx.Create(admin).Error
	})
	if err != nil {
		if apperror.IsUniqueViolation(err, "idx_users_email_tenant") {
			return apperror.ErrEmailUsed.WithErr(err)
		}
		return translateTenantConflict(err)
	}
	return nil
}

func (s *GormTenantStore) Update(tenant *model.Tenant) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	tenant.Subdomain = strings.ToLower(tenant.Subdomain)
	if err := s.db.Save(tenant).Error; err != nil {
		return translateTenantConflict(err)
	}
	return nil
}

func (s *GormTenantStore) Deactivate(id uint) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	result := s.db.Model(&model.Tenant{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return apperror.FromDB(result.Error, nil)
	}
	if result.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (s *GormTenantStore) CountActive() (int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var count int64
	if err := s.db.Model(&model.Tenant{}).Where("is_active = ?", true).Count(&count).Error; err != nil {
		return 0, apperror.FromDB(err, nil)
	}
	return count, nil
}

// translateTenantConflict maps the tenant table's unique constraints to
// their user-facing conflict codes.
func translateTenantConflict(err error) error {
	switch {
	case apperror.IsUniqueViolation(err, "idx_tenants_subdomain"):
		return apperror.ErrSubdomainUsed.WithErr(err)
	case apperror.IsUniqueViolation(err, "idx_tenants_domain"):
		return apperror.ErrDomainUsed.WithErr(err)
	}
	return apperror.FromDB(err, apperror.ErrSubdomainUsed)
}
