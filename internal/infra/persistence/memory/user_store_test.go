package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"habit/internal/domain/entity"
	"habit/internal/domain/repository"
	"habit/internal/infra/clock"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*UserStore, *clock.MockClock) {
	t.Helper()

	clk := clock.NewMock(testNow)

	return NewUserStore(clk), clk
}

func newUser(username, email string) *entity.User {
	return &entity.User{
		Username:     username,
		PasswordHash: "$2a$04$hash",
		Email:        email,
		FirstName:    "First",
		LastName:     "Last",
	}
}

func TestUserStore_SaveAndFind(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	id, err := store.Save(ctx, newUser("alice", "a@x.com"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	found, err := store.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, id, found.ID)
	assert.Equal(t, "a@x.com", found.Email)
	assert.Equal(t, testNow, found.CreatedAt)

	byEmail, err := store.FindByEmail(ctx, " A@X.com ")
	require.NoError(t, err)
	assert.Equal(t, "alice", byEmail.Username)

	_, err = store.FindByUsername(ctx, "Alice")
	assert.True(t, errors.Is(err, repository.ErrUserNotFound), "usernames are case-sensitive")
}

func TestUserStore_SaveDuplicates(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, newUser("alice", "a@x.com"))
	require.NoError(t, err)

	_, err = store.Save(ctx, newUser("alice", "other@x.com"))
	assert.True(t, errors.Is(err, repository.ErrDuplicateUsername))

	_, err = store.Save(ctx, newUser("bob", "a@x.com"))
	assert.True(t, errors.Is(err, repository.ErrDuplicateEmail))

	users, err := store.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserStore_ReturnsCopies(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	input := newUser("alice", "a@x.com")
	_, err := store.Save(ctx, input)
	require.NoError(t, err)
	input.Email = "mutated@x.com"

	found, err := store.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	found.FirstName = "Mutated"

	again, err := store.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", again.Email)
	assert.Equal(t, "First", again.FirstName)
}

func TestUserStore_Update(t *testing.T) {
	store, clk := newTestStore(t)
	ctx := context.Background()

	id, err := store.Save(ctx, newUser("alice", "a@x.com"))
	require.NoError(t, err)
	_, err = store.Save(ctx, newUser("bob", "b@x.com"))
	require.NoError(t, err)

	clk.Advance(time.Hour)
	err = store.Update(ctx, &entity.User{ID: id, Username: "alicia", Email: "c@x.com", FirstName: "A", LastName: "L", PasswordHash: "ignored"})
	require.NoError(t, err)

	_, err = store.FindByUsername(ctx, "alice")
	assert.True(t, errors.Is(err, repository.ErrUserNotFound))

	renamed, err := store.FindByUsername(ctx, "alicia")
	require.NoError(t, err)
	assert.Equal(t, "c@x.com", renamed.Email)
	assert.Equal(t, "$2a$04$hash", renamed.PasswordHash, "Update never touches the hash")
	assert.Equal(t, testNow.Add(time.Hour), renamed.UpdatedAt)

	err = store.Update(ctx, &entity.User{ID: id, Username: "bob", Email: "c@x.com"})
	assert.True(t, errors.Is(err, repository.ErrDuplicateUsername))

	err = store.Update(ctx, &entity.User{ID: id, Username: "alicia", Email: "b@x.com"})
	assert.True(t, errors.Is(err, repository.ErrDuplicateEmail))

	err = store.Update(ctx, &entity.User{ID: 99, Username: "ghost"})
	assert.True(t, errors.Is(err, repository.ErrUserNotFound))
}

func TestUserStore_UpdatePasswordHash(t *testing.T) {
	store, clk := newTestStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, newUser("alice", "a@x.com"))
	require.NoError(t, err)

	clk.Advance(time.Minute)
	require.NoError(t, store.UpdatePasswordHash(ctx, "alice", "$2a$12$new"))

	found, err := store.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "$2a$12$new", found.PasswordHash)
	assert.Equal(t, testNow.Add(time.Minute), found.PasswordChangedAt)

	err = store.UpdatePasswordHash(ctx, "ghost", "x")
	assert.True(t, errors.Is(err, repository.ErrUserNotFound))
}

func TestUserStore_DeleteAndFindAll(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"carol", "alice", "bob"} {
		_, err := store.Save(ctx, newUser(name, name+"@x.com"))
		require.NoError(t, err)
	}

	require.NoError(t, store.DeleteByUsername(ctx, "bob"))
	assert.True(t, errors.Is(store.DeleteByUsername(ctx, "bob"), repository.ErrUserNotFound))

	users, err := store.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "carol", users[1].Username)
}

func TestUserStore_CancelledContext(t *testing.T) {
	store, _ := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.FindByUsername(ctx, "alice")
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestUserStore_ConcurrentSaves(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if _, err := store.Save(ctx, newUser("alice", "a@x.com")); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
}
