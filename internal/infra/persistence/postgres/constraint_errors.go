package postgres

import (
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation = "23505"

	constraintUsername = "uq_users_username"
	constraintEmail    = "uq_users_email"
)

// uniqueConstraintName returns the violated unique constraint, or "" when err is not a unique violation.
func uniqueConstraintName(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return pgErr.ConstraintName, true
	}

	// Check for GORM's duplicate key error when TranslateError is enabled
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return constraintFromMessage(err.Error()), true
	}

	return "", false
}

func constraintFromMessage(msg string) string {
	switch {
	case strings.Contains(msg, constraintEmail):
		return constraintEmail
	case strings.Contains(msg, constraintUsername):
		return constraintUsername
	default:
		return ""
	}
}
