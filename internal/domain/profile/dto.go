package profile

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=tutor student"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=3"`
	Role      *string `json:"role" binding:"omitempty,oneof=admin tutor student"`
	AvatarURL *string `json:"avatar_url"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
