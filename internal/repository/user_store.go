package repository

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/JeanCorreaBarros/saas-multitenant-basic/internal/model"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/pkg/apperror"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/prometheus"
)

// GormUserStore implements UserStore on top of an injected gorm handle.
type GormUserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) FindActive(id uint) (*model.User, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var user model.User
	err := s.db.Where("id = ? AND is_active = ?", id, true).First(&user).Error
	if err != nil {
		return nil, apperror.FromDB(err, nil)
	}
	return &user, nil
}

func (s *GormUserStore) GetByID(tenantID, id uint) (*model.User, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var user model.User
	err := s.db.Where("tenant_id = ?", tenantID).First(&user, id).Error
	if err != nil {
		return nil, apperror.FromDB(err, nil)
	}
	return &user, nil
}

func (s *GormUserStore) GetByEmail(tenantID uint, email string) (*model.User, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var user model.User
	err := s.db.Where("tenant_id = ? AND email = ?", tenantID, strings.ToLower(email)).First(&user).Error
	if err != nil {
		return nil, apperror.FromDB(err, nil)
	}
	return &user, nil
}

func (s *GormUserStore) List(tenantID uint, q ListQuery) ([]model.User, int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	q = q.Normalize()
	query := s.db.Model(&model.User{}).Where("tenant_id = ?", tenantID)

	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		query = query.Where("email ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?",
			pattern, pattern, pattern)
	}
	if q.IsActive != nil {
		query = query.Where("is_active = ?", *q.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.FromDB(err, nil)
	}

	var users []model.User
	err := query.Order("created_at DESC").
		Offset(q.Offset()).
		Limit(q.Limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, apperror.FromDB(err, nil)
	}

	return users, total, nil
}

func (s *GormUserStore) Create(user *model.User) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	user.Email = strings.ToLower(user.Email)
	if err := s.db.Create(user).Error; err != nil {
		return apperror.FromDB(err, apperror.ErrEmailUsed)
	}
	return nil
}

func (s *GormUserStore) Update(user *model.User) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	user.Email = strings.ToLower(user.Email)
	if err := s.db.Save(user).Error; err != nil {
		return apperror.FromDB(err, apperror.ErrEmailUsed)
	}
	return nil
}

func (s *GormUserStore) Deactivate(tenantID, id uint) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	result := s.db.Model(&model.User{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Update("is_active", false)
	if result.Error != nil {
		return apperror.FromDB(result.Error, nil)
	}
	if result.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}
