package domain

import "time"

// ActivityLog is an append-only audit entry written on every mutating
// action.
type ActivityLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Actor     string    `gorm:"not null;index" json:"actor"` // student id or "admin"
	Action    string    `gorm:"type:varchar(100);not null" json:"action"`
	Details   string    `gorm:"type:text" json:"details,omitempty"`
	IP        string    `gorm:"type:varchar(45)" json:"ip,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
