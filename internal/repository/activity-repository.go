package repository

import (
	"errors"

	"github.com/placementcell/placement_service/internal/domain"
	"gorm.io/gorm"
)

type ActivityLogRepository interface {
	CreateEntry(e *domain.ActivityLog) error
	ListRecent(limit, offset int) ([]domain.ActivityLog, error)
}

type activityLogRepository struct {
	db *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) CreateEntry(e *domain.ActivityLog) error {
	if e == nil {
		return errors.New("nil activity log entry")
	}
	return r.db.Create(e).Error
}

func (r *activityLogRepository) ListRecent(limit, offset int) ([]domain.ActivityLog, error) {
	var entries []domain.ActivityLog
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
