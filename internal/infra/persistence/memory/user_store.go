// Package memory provides an in-process UserStore used for local runs and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"habit/internal/domain/entity"
	"habit/internal/domain/repository"
	"habit/internal/infra/clock"
)

// UserStore keeps users in a map. Records are copied on the way in and out.
type UserStore struct {
	mu     sync.RWMutex
	clock  clock.Clock
	nextID int64
	users  map[string]*entity.User // by username
}

var (
	_ repository.UserStore   = (*UserStore)(nil)
	_ repository.EmailFinder = (*UserStore)(nil)
)

// NewUserStore creates an empty store.
func NewUserStore(clk clock.Clock) *UserStore {
	if clk == nil {
		clk = clock.New()
	}

	return &UserStore{
		clock: clk,
		users: make(map[string]*entity.User),
	}
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return copyOut(user), nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if user := s.findByEmailLocked(entity.NormalizeEmail(email)); user != nil {
		return copyOut(user), nil
	}

	return nil, repository.ErrUserNotFound
}

func (s *UserStore) Save(ctx context.Context, user *entity.User) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Username]; exists {
		return 0, repository.ErrDuplicateUsername
	}
	if user.Email != "" && s.findByEmailLocked(user.Email) != nil {
		return 0, repository.ErrDuplicateEmail
	}

	s.nextID++
	stored := copyOut(user)
	stored.ID = s.nextID
	now := s.clock.Now()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = now
	}
	s.users[stored.Username] = stored

	return stored.ID, nil
}

func (s *UserStore) Update(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.findByIDLocked(user.ID)
	if current == nil {
		return repository.ErrUserNotFound
	}

	if user.Username != current.Username {
		if _, taken := s.users[user.Username]; taken {
			return repository.ErrDuplicateUsername
		}
	}
	if other := s.findByEmailLocked(user.Email); user.Email != "" && other != nil && other.ID != user.ID {
		return repository.ErrDuplicateEmail
	}

	updated := copyOut(current)
	updated.Username = user.Username
	updated.Email = user.Email
	updated.FirstName = user.FirstName
	updated.LastName = user.LastName
	updated.UpdatedAt = s.clock.Now()

	delete(s.users, current.Username)
	s.users[updated.Username] = updated

	return nil
}

func (s *UserStore) UpdatePasswordHash(ctx context.Context, username, hash string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[username]
	if !ok {
		return repository.ErrUserNotFound
	}

	now := s.clock.Now()
	user.PasswordHash = hash
	user.PasswordChangedAt = now
	user.UpdatedAt = now

	return nil
}

func (s *UserStore) DeleteByUsername(ctx context.Context, username string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[username]; !ok {
		return repository.ErrUserNotFound
	}
	delete(s.users, username)

	return nil
}

func (s *UserStore) FindAll(ctx context.Context) ([]*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	users := make([]*entity.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, copyOut(user))
	}
	s.mu.RUnlock()

	sort.Slice(users, func(i, j int) bool {
		return users[i].Username < users[j].Username
	})

	return users, nil
}

func (s *UserStore) findByIDLocked(id int64) *entity.User {
	for _, user := range s.users {
		if user.ID == id {
			return user
		}
	}

	return nil
}

func (s *UserStore) findByEmailLocked(email string) *entity.User {
	for _, user := range s.users {
		if user.Email == email {
			return user
		}
	}

	return nil
}

func copyOut(user *entity.User) *entity.User {
	clone := user.Clone()

	return &clone
}
