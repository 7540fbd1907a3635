package domain

import "time"

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type Student struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	StudentID string `gorm:"uniqueIndex;not null" json:"student_id"` // hall-ticket number, stored uppercased
	SNo       int    `json:"sno"`
	Name      string `json:"name"`
	Photo     string `gorm:"type:text" json:"photo,omitempty"`

	// Legacy original-record fields from the bulk import.
	Company string  `json:"company,omitempty"`
	Salary  float64 `json:"salary,omitempty"` // LPA
	Logo    string  `gorm:"type:text" json:"logo,omitempty"`

	PasswordHash       string    `json:"-"`
	Role               string    `gorm:"type:varchar(20);not null;default:student" json:"role"`
	VerificationStatus string    `gorm:"type:varchar(20);not null;default:pending" json:"verification_status"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
