// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"habit/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Username  string `json:"username" validate:"required,min=3,max=100,username"`
	Password  string `json:"password" validate:"required"`
	Email     string `json:"email" validate:"required,min=5,max=100,email_address"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
}

// UpdateProfileInput defines a profile edit of the account named by Username.
// Nil fields are left untouched. CurrentPassword is required when the
// username or the email changes.
type UpdateProfileInput struct {
	Username        string  `json:"username" validate:"required"`
	NewUsername     *string `json:"new_username,omitempty" validate:"omitnil,min=3,max=100,username"`
	Email           *string `json:"email,omitempty" validate:"omitnil,min=5,max=100,email_address"`
	FirstName       *string `json:"first_name,omitempty" validate:"omitnil,max=100"`
	LastName        *string `json:"last_name,omitempty" validate:"omitnil,max=100"`
	CurrentPassword string  `json:"current_password,omitempty"`
}

// ChangePasswordInput defines the data required to replace a password.
type ChangePasswordInput struct {
	Username        string `json:"username" validate:"required"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// --- Output DTOs ---

// UpdateProfileOutput returns the stored record and the outcome of the confirmation email.
type UpdateProfileOutput struct {
	User         *entity.User
	Notification NotifyResult
}

// CredentialUsecase defines account registration, authentication, and profile management.
// It owns the single active Session of the process.
type CredentialUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*entity.User, error)
	Login(ctx context.Context, username, password string) (*entity.User, error)
	Logout(ctx context.Context)
	CurrentUser() (*entity.User, bool)
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error)
	ChangePassword(ctx context.Context, input ChangePasswordInput) error
	DeleteAccount(ctx context.Context, username string) error
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListUsers(ctx context.Context) ([]*entity.User, error)
}
