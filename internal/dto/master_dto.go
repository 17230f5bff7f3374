package dto

// Shared request/response shapes for the name-only master entities
// (categories, groups, units).

type CreateNamedRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type UpdateNamedRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type NamedFilter struct {
	Name string `form:"name"`
	Page int    `form:"page,default=1" validate:"min=1"`
	Size int    `form:"size,default=10" validate:"min=1,max=100"`
}

type NamedResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CreateSupplierRequest struct {
	Name    string  `json:"name"    validate:"required,max=100"`
	Address *string `json:"address" validate:"omitempty,max=255"`
	Phone   *string `json:"phone"   validate:"omitempty,max=20"`
	Email   *string `json:"email"   validate:"omitempty,email"`
}

type UpdateSupplierRequest struct {
	Name    string  `json:"name"    validate:"required,max=100"`
	Address *string `json:"address" validate:"omitempty,max=255"`
	Phone   *string `json:"phone"   validate:"omitempty,max=20"`
	Email   *string `json:"email"   validate:"omitempty,email"`
}

type SupplierFilter struct {
	Name  string `form:"name"`
	Phone string `form:"phone"`
	Email string `form:"email"`
	Page  int    `form:"page,default=1" validate:"min=1"`
	Size  int    `form:"size,default=10" validate:"min=1,max=100"`
}

type SupplierResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
}
