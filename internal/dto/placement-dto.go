package dto

type PlacementCreateRequest struct {
	Company string  `json:"company" validate:"required"`
	Salary  float64 `json:"salary" validate:"required,gt=0"`
	Logo    string  `json:"logo,omitempty"`
}

// PlacementUpdateRequest is a PATCH shape; nil fields are untouched.
// Any accepted edit resets the verification status to pending.
type PlacementUpdateRequest struct {
	Company *string  `json:"company,omitempty"`
	Salary  *float64 `json:"salary,omitempty"`
	Logo    *string  `json:"logo,omitempty"`
	Photo   *string  `json:"photo,omitempty"`
}

type PlacementResponse struct {
	ID                 uint    `json:"id"`
	StudentID          string  `json:"student_id"`
	Company            string  `json:"company"`
	Salary             float64 `json:"salary"`
	Photo              string  `json:"photo,omitempty"`
	Logo               string  `json:"logo,omitempty"`
	VerificationStatus string  `json:"verification_status"`
	IsOriginal         bool    `json:"is_original"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}
