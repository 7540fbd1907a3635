package dto

type LoginRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token   string          `json:"token"`
	Student StudentResponse `json:"student"`
}

type AuthResponse struct {
	StudentID string  `json:"student_id"`
	Role      string  `json:"role"`
	Iat       float64 `json:"iat"`
	Expiry    float64 `json:"expiry"`
}
