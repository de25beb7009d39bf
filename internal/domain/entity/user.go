// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"
)

// User is the account record of a habit tracker user.
// Values are treated as immutable: edits go through Apply, which returns a new version.
type User struct {
	ID                int64     // Store-assigned identifier, zero until first save.
	Username          string    // Unique, case-sensitive business key.
	PasswordHash      string    // Self-describing hash under the current or a previous hash policy.
	Email             string    // Lower-cased contact email.
	FirstName         string    // Given name.
	LastName          string    // Family name.
	CreatedAt         time.Time // Timestamp of when this account was created.
	UpdatedAt         time.Time // Timestamp of the last profile modification.
	PasswordChangedAt time.Time // Timestamp of the last password hash write.

	// plaintext is held only between input and hashing.
	plaintext []byte
}

// ProfileChanges describes an edit of the mutable profile attributes.
// Nil fields are left untouched.
type ProfileChanges struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
}

// IsEmpty reports whether the changes carry no field at all.
func (c ProfileChanges) IsEmpty() bool {
	return c.Username == nil && c.Email == nil && c.FirstName == nil && c.LastName == nil
}

// NormalizeUsername trims surrounding whitespace; usernames stay case-sensitive.
func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SetPlaintext stores a copy of the plaintext password until it is hashed.
func (u *User) SetPlaintext(plaintext string) {
	u.ClearPlaintext()
	u.plaintext = []byte(plaintext)
}

// Plaintext returns the pending plaintext password, if any.
func (u *User) Plaintext() string {
	return string(u.plaintext)
}

// HasPlaintext reports whether a plaintext password is pending.
func (u *User) HasPlaintext() bool {
	return len(u.plaintext) > 0
}

// ClearPlaintext zeroes and drops the plaintext buffer.
func (u *User) ClearPlaintext() {
	for i := range u.plaintext {
		u.plaintext[i] = 0
	}
	u.plaintext = nil
}

// SetPasswordHash records a new hash and discards the plaintext it was computed from.
func (u *User) SetPasswordHash(hash string) {
	u.PasswordHash = hash
	u.ClearPlaintext()
}

// Clone returns a copy of the record without the plaintext buffer.
func (u User) Clone() User {
	u.plaintext = nil
	return u
}

// Apply returns a new version of the record with the given changes applied.
func (u User) Apply(changes ProfileChanges) User {
	next := u.Clone()
	if changes.Username != nil {
		next.Username = NormalizeUsername(*changes.Username)
	}
	if changes.Email != nil {
		next.Email = NormalizeEmail(*changes.Email)
	}
	if changes.FirstName != nil {
		next.FirstName = strings.TrimSpace(*changes.FirstName)
	}
	if changes.LastName != nil {
		next.LastName = strings.TrimSpace(*changes.LastName)
	}

	return next
}

// FullName joins first and last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
