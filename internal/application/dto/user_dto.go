package dto

import "time"

// RegisterRequest entrada para registro público. Role vacío = cashier.
type RegisterRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=8"`
	Role        string  `json:"role" validate:"omitempty,oneof=cashier customer"`
	PhoneNumber *string `json:"phone_number"`
}

// UpdateUserRequest edición administrativa; campos nil no se modifican.
type UpdateUserRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Password    *string `json:"password" validate:"omitempty,min=8"`
	Role        *string `json:"role" validate:"omitempty,oneof=admin cashier customer"`
	PhoneNumber *string `json:"phone_number"`
}

// ToggleActiveRequest entrada para activar/desactivar una cuenta de cajero.
type ToggleActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// ChangePasswordRequest entrada para rotar la contraseña propia.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	PhoneNumber *string   `json:"phone_number,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// FederatedProfile datos mínimos devueltos por el proveedor OAuth.
type FederatedProfile struct {
	Email string
	Name  string
}
