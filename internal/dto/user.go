package dto

import "github.com/SscSPs/docflow_app/internal/core/domain"

// LoginRequest represents the login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateUserRequest registers a new user.
type CreateUserRequest struct {
	FirstName      string  `json:"firstName" validate:"required,max=100"`
	LastName       string  `json:"lastName" validate:"required,max=100"`
	Email          string  `json:"email" validate:"required,email"`
	Password       string  `json:"password" validate:"required,min=6,max=72"`
	RoleID         int64   `json:"roleID" validate:"required,gt=0"`
	DepartmentID   *int64  `json:"departmentID" validate:"omitempty,gt=0"`
	WhatsappNumber *string `json:"whatsappNumber"`
}

// UpdateUserRequest changes a user. Omitted fields are left untouched and an
// empty password keeps the current one.
type UpdateUserRequest struct {
	FirstName      *string `json:"firstName" validate:"omitempty,max=100"`
	LastName       *string `json:"lastName" validate:"omitempty,max=100"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Password       *string `json:"password" validate:"omitempty,min=6,max=72"`
	RoleID         *int64  `json:"roleID" validate:"omitempty,gt=0"`
	DepartmentID   *int64  `json:"departmentID" validate:"omitempty,gt=0"`
	WhatsappNumber *string `json:"whatsappNumber" validate:"omitempty,max=30"`
	IsActive       *bool   `json:"isActive"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	UserID         int64   `json:"userID"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Email          string  `json:"email"`
	RoleID         int64   `json:"roleID"`
	RoleName       string  `json:"roleName,omitempty"`
	DepartmentID   *int64  `json:"departmentID,omitempty"`
	WhatsappNumber *string `json:"whatsappNumber,omitempty"`
	IsActive       bool    `json:"isActive"`
}

// ToUserResponse converts a domain user, dropping the password hash.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:         u.UserID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		RoleID:         int64(u.RoleID),
		RoleName:       u.RoleName,
		DepartmentID:   u.DepartmentID,
		WhatsappNumber: u.WhatsappNumber,
		IsActive:       u.IsActive,
	}
}
