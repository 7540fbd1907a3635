package domain

import "time"

const (
	NotificationInfo    = "info"
	NotificationSuccess = "success"
	NotificationWarning = "warning"
	NotificationError   = "error"
)

// RecipientAdmin is the shared admin channel; everything else is a
// lowercased student identifier.
const RecipientAdmin = "admin"

// Notification rows are append-only; only the read flag ever changes.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Recipient string    `gorm:"not null;index" json:"recipient"`
	Title     string    `gorm:"not null" json:"title"`
	Message   string    `gorm:"type:text" json:"message"`
	Type      string    `gorm:"type:varchar(10);not null;default:info" json:"type"`
	Read      bool      `gorm:"default:false" json:"read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
