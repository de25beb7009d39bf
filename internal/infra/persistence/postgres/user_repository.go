// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"habit/config"
	"habit/internal/domain/entity"
	domainerrors "habit/internal/domain/errors"
	"habit/internal/domain/repository"
	"habit/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements repository.UserStore using GORM.
type userRepository struct {
	db      *gorm.DB
	timeout time.Duration
	now     func() time.Time
}

var (
	_ repository.UserStore   = (*userRepository)(nil)
	_ repository.EmailFinder = (*userRepository)(nil)
)

// NewUserRepository is the constructor for userRepository.
// Every call is bounded by the configured store timeout.
func NewUserRepository(db *gorm.DB, cfg *config.Config) repository.UserStore {
	return newUserRepository(db, cfg.Store.Timeout)
}

func newUserRepository(db *gorm.DB, timeout time.Duration) *userRepository {
	return &userRepository{
		db:      db,
		timeout: timeout,
		now:     time.Now,
	}
}

func (repo *userRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if repo.timeout <= 0 {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, repo.timeout)
}

// FindByUsername retrieves a single user by username.
func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("username = ?", username).First(&userM).Error; err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, domainerrors.NewStorageError(err, "failed to find user by username")
	}

	// Map the persistence model back to a pure domain entity before returning.
	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by email address, compared case-insensitively.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("LOWER(email) = ?", entity.NormalizeEmail(email)).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, domainerrors.NewStorageError(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// Save inserts a new user and returns the generated ID.
func (repo *userRepository) Save(ctx context.Context, user *entity.User) (int64, error) {
	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	userM := fromUserDomain(user)
	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			return 0, mapped
		}

		return 0, domainerrors.NewStorageError(err, "failed to create user")
	}

	return userM.ID, nil
}

// Update rewrites the profile columns of the user identified by ID.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"username":   user.Username,
			"email":      user.Email,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"updated_at": repo.now(),
		})
	if result.Error != nil {
		if mapped := mapConstraintError(result.Error); mapped != nil {
			return mapped
		}

		return domainerrors.NewStorageError(result.Error, "failed to update user")
	}

	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// UpdatePasswordHash replaces the stored hash and stamps last_password_change.
func (repo *userRepository) UpdatePasswordHash(ctx context.Context, username, hash string) error {
	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	now := repo.now()
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("username = ?", username).
		Updates(map[string]any{
			"password_hash":        hash,
			"last_password_change": now,
			"updated_at":           now,
		})
	if result.Error != nil {
		return domainerrors.NewStorageError(result.Error, "failed to update password hash")
	}

	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// DeleteByUsername removes the user row.
func (repo *userRepository) DeleteByUsername(ctx context.Context, username string) error {
	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	result := repo.db.WithContext(ctx).Where("username = ?", username).Delete(&model.UserModel{})
	if result.Error != nil {
		return domainerrors.NewStorageError(result.Error, "failed to delete user")
	}

	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// FindAll returns every user ordered by username.
func (repo *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	var userMs []model.UserModel
	if err := repo.db.WithContext(ctx).Order("username").Find(&userMs).Error; err != nil {
		return nil, domainerrors.NewStorageError(err, "failed to list users")
	}

	users := make([]*entity.User, 0, len(userMs))
	for i := range userMs {
		users = append(users, toUserDomain(&userMs[i]))
	}

	return users, nil
}

func mapConstraintError(err error) error {
	constraint, ok := uniqueConstraintName(err)
	if !ok {
		return nil
	}

	if constraint == constraintEmail {
		return repository.ErrDuplicateEmail
	}

	return repository.ErrDuplicateUsername
}

// --- Mapper Functions ---

func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	user := &entity.User{
		ID:           data.ID,
		Username:     data.Username,
		PasswordHash: data.PasswordHash,
		Email:        data.Email,
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
	if data.PasswordChangedAt != nil {
		user.PasswordChangedAt = *data.PasswordChangedAt
	}

	return user
}

func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	userM := &model.UserModel{
		ID:           data.ID,
		Username:     data.Username,
		PasswordHash: data.PasswordHash,
		Email:        data.Email,
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
	if !data.PasswordChangedAt.IsZero() {
		changed := data.PasswordChangedAt
		userM.PasswordChangedAt = &changed
	}

	return userM
}
