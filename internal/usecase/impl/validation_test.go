package impl

import (
	"testing"

	domainerrors "habit/internal/domain/errors"
	"habit/internal/errors"
	"habit/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailPattern(t *testing.T) {
	valid := []string{"a@x.com", "first.last+tag@mail.example.org", "under_score@x-y.io"}
	invalid := []string{"", "a@x", "@x.com", "a@.c", "a x@y.com", "a@x.c", "a@x.com1"}

	for _, email := range valid {
		assert.True(t, emailPattern.MatchString(email), email)
	}
	for _, email := range invalid {
		assert.False(t, emailPattern.MatchString(email), email)
	}
}

func TestValidationError_FirstFailedRule(t *testing.T) {
	v := newValidator()

	err := v.Struct(usecase.UpdateProfileInput{
		Username:    "alice",
		NewUsername: strPtr("a b"),
	})
	require.Error(t, err)

	mapped := validationError(err)
	assert.True(t, errors.Is(mapped, domainerrors.ErrValidationFailed))
	assert.Equal(t, "new username must not contain whitespace", domainerrors.MessageOf(mapped))
}

func TestValidationError_NilPointersAreSkipped(t *testing.T) {
	v := newValidator()

	err := v.Struct(usecase.UpdateProfileInput{Username: "alice"})

	assert.NoError(t, err)
}

func TestValidationError_EmptyPointerIsChecked(t *testing.T) {
	v := newValidator()

	err := v.Struct(usecase.UpdateProfileInput{Username: "alice", Email: strPtr("")})
	require.Error(t, err)

	assert.Equal(t, "email must be at least 5 characters long", domainerrors.MessageOf(validationError(err)))
}
