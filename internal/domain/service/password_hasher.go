// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import "context"

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	// Empty or whitespace-only input is rejected with ErrInvalidInput.
	Hash(password string) (string, error)

	// Verify compares a plaintext password with a hash to see if they match.
	// Malformed hashes never verify.
	Verify(password, hash string) bool

	// NeedsUpgrade reports whether a hash was produced under a different hash policy.
	NeedsUpgrade(hash string) bool
}

// PasswordPolicy checks password strength before hashing.
type PasswordPolicy interface {
	Validate(password string) error
}

// HashResult is the outcome of an asynchronous hash or verify job.
type HashResult struct {
	Hash  string
	Match bool
	Err   error
}

// HashWorker runs hashing and verification off the caller's goroutine.
// Both calls return early with the context error when ctx is done.
type HashWorker interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, password, hash string) (bool, error)
}
