package dto

type StudentCreateRequest struct {
	StudentID string  `json:"student_id" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	Password  string  `json:"password" validate:"required,min=6"`
	SNo       int     `json:"sno,omitempty"`
	Photo     string  `json:"photo,omitempty"`
	Company   string  `json:"company,omitempty"`
	Salary    float64 `json:"salary,omitempty"`
	Logo      string  `json:"logo,omitempty"`
}

type StudentUpdateRequest struct {
	Name    *string  `json:"name,omitempty"`
	Company *string  `json:"company,omitempty"`
	Salary  *float64 `json:"salary,omitempty"`
	Logo    *string  `json:"logo,omitempty"`
}

type StudentResponse struct {
	ID                 uint    `json:"id"`
	StudentID          string  `json:"student_id"`
	SNo                int     `json:"sno"`
	Name               string  `json:"name"`
	Photo              string  `json:"photo,omitempty"`
	Company            string  `json:"company,omitempty"`
	Salary             float64 `json:"salary,omitempty"`
	Logo               string  `json:"logo,omitempty"`
	Role               string  `json:"role"`
	VerificationStatus string  `json:"verification_status"`
}
