package dto

type CompanyCreateRequest struct {
	Name string `json:"name" validate:"required"`
	Logo string `json:"logo,omitempty"`
}

type CompanyUpdateRequest struct {
	Name *string `json:"name,omitempty"`
	Logo *string `json:"logo,omitempty"`
}

type CompanyResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}
