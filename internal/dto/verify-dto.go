package dto

type VerifyRequest struct {
	Type   string `json:"type" validate:"required,oneof=placement original"`
	ID     string `json:"id" validate:"required"`
	Action string `json:"action" validate:"required,oneof=approve reject"`
}

type VerifyResponse struct {
	Success bool `json:"success"`
}
