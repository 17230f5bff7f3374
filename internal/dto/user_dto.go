package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=6,max=100"`
	Name     string `json:"name"     validate:"required,max=100"`
	Role     string `json:"role"     validate:"required,oneof=SUPERADMIN PRAMUNIAGA"`
}

type UserFilter struct {
	Username string `form:"username"`
	Name     string `form:"name"`
	Role     string `form:"role" validate:"omitempty,oneof=SUPERADMIN PRAMUNIAGA"`
	Page     int    `form:"page,default=1" validate:"min=1"`
	Size     int    `form:"size,default=10" validate:"min=1,max=100"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
	Token    string `json:"token,omitempty"`
}
