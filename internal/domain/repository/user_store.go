// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"habit/internal/domain/entity"
	"habit/internal/errors"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateUsername is returned by Save and Update when the username is already taken.
var ErrDuplicateUsername = errors.New("username already exists")

// ErrDuplicateEmail is returned by Save and Update when the email is already registered.
var ErrDuplicateEmail = errors.New("email already exists")

// UserStore defines the persistence operations for user accounts.
// Implementations return copies; callers never share memory with the store.
type UserStore interface {
	// FindByUsername retrieves a user by username. Returns ErrUserNotFound when absent.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// Save inserts a new user and returns its assigned ID.
	// Returns ErrDuplicateUsername or ErrDuplicateEmail when a unique key is taken.
	Save(ctx context.Context, user *entity.User) (int64, error)

	// Update rewrites the profile fields of the user with the given ID.
	// Returns ErrUserNotFound when no row matches.
	// Password fields are not touched; use UpdatePasswordHash.
	Update(ctx context.Context, user *entity.User) error

	// UpdatePasswordHash replaces the stored hash of a user and stamps the change time.
	// Returns ErrUserNotFound when absent.
	UpdatePasswordHash(ctx context.Context, username, hash string) error

	// DeleteByUsername removes a user. Returns ErrUserNotFound when absent.
	DeleteByUsername(ctx context.Context, username string) error

	// FindAll returns every user ordered by username.
	FindAll(ctx context.Context) ([]*entity.User, error)
}

// EmailFinder is implemented by stores that can look users up by email directly.
type EmailFinder interface {
	// FindByEmail retrieves a user by lower-cased email. Returns ErrUserNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
