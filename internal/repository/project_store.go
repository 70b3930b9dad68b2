package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/JeanCorreaBarros/saas-multitenant-basic/internal/model"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/pkg/apperror"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/prometheus"
)

// GormProjectStore implements ProjectStore on top of an injected gorm handle.
type GormProjectStore struct {
	db *gorm.DB
}

func NewProjectStore(db *gorm.DB) *GormProjectStore {
	return &GormProjectStore{db: db}
}

func (s *GormProjectStore) GetByID(tenantID, id uint) (*model.Project, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var project model.Project
	err := s.db.Where("tenant_id = ?", tenantID).First(&project, id).Error
	if err != nil {
		return nil, apperror.FromDB(err, nil)
	}
	return &project, nil
}

func (s *GormProjectStore) List(tenantID uint, q ListQuery) ([]model.Project, int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	q = q.Normalize()
	query := s.db.Model(&model.Project{}).Where("tenant_id = ?", tenantID)

	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if q.IsActive != nil {
		query = query.Where("is_active = ?", *q.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.FromDB(err, nil)
	}

	var projects []model.Project
	err := query.Order("created_at DESC").
		Offset(q.Offset()).
		Limit(q.Limit).
		Find(&projects).Error
	if err != nil {
		return nil, 0, apperror.FromDB(err, nil)
	}

	return projects, total, nil
}

func (s *GormProjectStore) Create(project *model.Project) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := s.db.Create(project).Error; err != nil {
		return apperror.FromDB(err, nil)
	}
	return nil
}

func (s *GormProjectStore) Update(project *model.Project) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	if err := s.db.Save(project).Error; err != nil {
		return apperror.FromDB(err, nil)
	}
	return nil
}

func (s *GormProjectStore) Delete(tenantID, id uint) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())

	result := s.db.Where("tenant_id = ?", tenantID).Delete(&model.Project{}, id)
	if result.Error != nil {
		return apperror.FromDB(result.Error, nil)
	}
	if result.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}
