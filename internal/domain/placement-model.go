package domain

import "time"

type Placement struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	StudentID string  `gorm:"not null;index" json:"student_id"` // owning student, by identifier
	Company   string  `gorm:"not null" json:"company"`
	Salary    float64 `json:"salary"` // LPA
	Photo     string  `gorm:"type:text" json:"photo,omitempty"`
	Logo      string  `gorm:"type:text" json:"logo,omitempty"`

	VerificationStatus string    `gorm:"type:varchar(20);not null;default:pending" json:"verification_status"`
	IsOriginal         bool      `gorm:"default:false" json:"is_original"` // legacy bulk-imported row
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
