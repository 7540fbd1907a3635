package domain

import "time"

// Company maps a canonical company name to a logo URL. Uniqueness is
// approximate: duplicates are folded by the startup merge pass, not by
// a database constraint.
type Company struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Logo      string    `gorm:"type:text" json:"logo,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
