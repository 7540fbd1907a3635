package repository

import (
	"errors"

	"github.com/placementcell/placement_service/internal/domain"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	CreateNotification(n *domain.Notification) error
	ListRecent(recipient string, limit int) ([]domain.Notification, error)
	CountUnread(recipient string) (int64, error)
	MarkRead(recipient string, id uint) error
	MarkAllRead(recipient string) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) CreateNotification(n *domain.Notification) error {
	if n == nil {
		return errors.New("nil notification")
	}
	return r.db.Create(n).Error
}

func (r *notificationRepository) ListRecent(recipient string, limit int) ([]domain.Notification, error) {
	var notifications []domain.Notification
	err := r.db.
		Where("recipient = ?", recipient).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) CountUnread(recipient string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Notification{}).
		Where("recipient = ? AND read = ?", recipient, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// MarkRead is idempotent: marking an already-read notification succeeds
// and leaves read=true.
func (r *notificationRepository) MarkRead(recipient string, id uint) error {
	res := r.db.Model(&domain.Notification{}).
		Where("id = ? AND recipient = ?", id, recipient).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(recipient string) error {
	return r.db.Model(&domain.Notification{}).
		Where("recipient = ? AND read = ?", recipient, false).
		Update("read", true).Error
}
