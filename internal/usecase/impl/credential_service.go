// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"habit/config"
	deliverycontext "habit/internal/delivery/context"
	"habit/internal/domain/entity"
	domainerrors "habit/internal/domain/errors"
	"habit/internal/domain/repository"
	"habit/internal/domain/service"
	"habit/internal/errors"
	"habit/internal/infra/clock"
	"habit/internal/usecase"

	"github.com/go-playground/validator/v10"
	"go.uber.org/fx"
)

// dummyPassword is hashed once and verified against when a login names an unknown
// account, so both paths cost one hash verification.
const dummyPassword = "habit-dummy-password"

// credentialService implements the CredentialUsecase interface.
type credentialService struct {
	store           repository.UserStore
	hasher          service.PasswordHasher
	hashWorker      service.HashWorker
	policy          service.PasswordPolicy
	notifications   usecase.NotificationUsecase
	clock           clock.Clock
	session         *Session
	locks           *keyLocks
	validate        *validator.Validate
	maskUnknownUser bool
	logger          *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// CredentialServiceParams holds dependencies for CredentialService, injected by Fx.
type CredentialServiceParams struct {
	fx.In

	Store         repository.UserStore
	Hasher        service.PasswordHasher
	HashWorker    service.HashWorker
	Policy        service.PasswordPolicy
	Notifications usecase.NotificationUsecase
	Clock         clock.Clock
	Config        *config.Config
	Logger        *slog.Logger
}

// NewCredentialService is the constructor for credentialService.
func NewCredentialService(params CredentialServiceParams) usecase.CredentialUsecase {
	maskUnknownUser := false
	if params.Config != nil && params.Config.Auth != nil {
		maskUnknownUser = params.Config.Auth.MaskUnknownUser
	}

	clk := params.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &credentialService{
		store:           params.Store,
		hasher:          params.Hasher,
		hashWorker:      params.HashWorker,
		policy:          params.Policy,
		notifications:   params.Notifications,
		clock:           clk,
		session:         NewSession(),
		locks:           newKeyLocks(),
		validate:        newValidator(),
		maskUnknownUser: maskUnknownUser,
		logger:          params.Logger,
	}
}

// log returns an operation-scoped logger if available, otherwise falls back to the service's logger.
func (srv *credentialService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register validates and stores a new account. The plaintext never outlives the hash job.
func (srv *credentialService) Register(ctx context.Context, input usecase.RegisterInput) (*entity.User, error) {
	input.Username = entity.NormalizeUsername(input.Username)
	input.Email = entity.NormalizeEmail(input.Email)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)

	srv.log(ctx).Info("Starting registration", slog.String("username", input.Username))

	if err := srv.validate.StructCtx(ctx, input); err != nil {
		return nil, validationError(err)
	}
	if err := srv.policy.Validate(input.Password); err != nil {
		return nil, err
	}

	unlock, err := srv.locks.Lock(ctx, usernameKey(input.Username), emailKey(input.Email))
	if err != nil {
		return nil, errors.Wrap(err, "failed to acquire registration locks")
	}
	defer unlock()

	if err := srv.ensureUsernameFree(ctx, input.Username); err != nil {
		return nil, err
	}
	if err := srv.ensureEmailFree(ctx, input.Email, 0); err != nil {
		return nil, err
	}

	now := srv.clock.Now()
	user := &entity.User{
		Username:          input.Username,
		Email:             input.Email,
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		CreatedAt:         now,
		UpdatedAt:         now,
		PasswordChangedAt: now,
	}
	user.SetPlaintext(input.Password)
	defer user.ClearPlaintext()

	hash, err := srv.hash(ctx, user.Plaintext())
	if err != nil {
		srv.log(ctx).Error("Failed to hash password", slog.String("username", user.Username), slog.Any("error", err))

		return nil, err
	}
	user.SetPasswordHash(hash)

	id, err := srv.store.Save(ctx, user)
	if err != nil {
		srv.log(ctx).Error("Failed to save user", slog.String("username", user.Username), slog.Any("error", err))

		return nil, storeError(err, "failed to save user")
	}
	user.ID = id

	srv.log(ctx).Info("Registration completed", slog.String("username", user.Username), slog.Int64("userID", id))

	registered := user.Clone()

	return &registered, nil
}

// Login authenticates an account, upgrades its hash when the policy moved on, and opens the session.
func (srv *credentialService) Login(ctx context.Context, username, password string) (*entity.User, error) {
	username = entity.NormalizeUsername(username)

	unlock, err := srv.locks.Lock(ctx, usernameKey(username))
	if err != nil {
		return nil, errors.Wrap(err, "failed to acquire login lock")
	}
	defer unlock()

	user, err := srv.store.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		srv.log(ctx).Warn("Login attempt for unknown user", slog.String("username", username))

		return nil, srv.unknownUserError(ctx, password)
	}
	if err != nil {
		return nil, storeError(err, "failed to find user")
	}

	ok, err := srv.verify(ctx, password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		srv.log(ctx).Warn("Login attempt with wrong password", slog.String("username", username))

		return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
	}

	if srv.hasher.NeedsUpgrade(user.PasswordHash) {
		if err := srv.upgradeHash(ctx, user, password); err != nil {
			return nil, err
		}
	}

	srv.session.Set(*user)
	srv.log(ctx).Info("User logged in", slog.String("username", username), slog.Int64("userID", user.ID))

	identity := user.Clone()

	return &identity, nil
}

func (srv *credentialService) upgradeHash(ctx context.Context, user *entity.User, password string) error {
	hash, err := srv.hash(ctx, password)
	if err != nil {
		return err
	}

	if err := srv.store.UpdatePasswordHash(ctx, user.Username, hash); err != nil {
		srv.log(ctx).Error("Failed to store upgraded password hash", slog.String("username", user.Username), slog.Any("error", err))

		return storeError(err, "failed to store upgraded password hash")
	}
	user.SetPasswordHash(hash)
	user.PasswordChangedAt = srv.clock.Now()

	srv.log(ctx).Info("Upgraded password hash", slog.String("username", user.Username))

	return nil
}

func (srv *credentialService) unknownUserError(ctx context.Context, password string) error {
	if !srv.maskUnknownUser {
		return errors.WithStack(domainerrors.ErrUserNotFound)
	}

	srv.dummyOnce.Do(func() {
		// A failed dummy hash only costs the timing guarantee.
		srv.dummyHash, _ = srv.hasher.Hash(dummyPassword)
	})
	if _, err := srv.verify(ctx, password, srv.dummyHash); err != nil {
		return err
	}

	return errors.WithStack(domainerrors.ErrInvalidCredentials)
}

// Logout ends the session. It is a no-op when nobody is logged in.
func (srv *credentialService) Logout(ctx context.Context) {
	if user, ok := srv.session.Current(); ok {
		srv.log(ctx).Info("User logged out", slog.String("username", user.Username))
	}
	srv.session.Clear()
}

// CurrentUser returns a copy of the session identity.
func (srv *credentialService) CurrentUser() (*entity.User, bool) {
	user, ok := srv.session.Current()
	if !ok {
		return nil, false
	}

	return &user, true
}

// UpdateProfile applies a profile edit. Changing the username or the email requires the current password.
func (srv *credentialService) UpdateProfile(ctx context.Context, input usecase.UpdateProfileInput) (*usecase.UpdateProfileOutput, error) {
	input.Username = entity.NormalizeUsername(input.Username)
	changes := entity.ProfileChanges{
		Username:  normalized(input.NewUsername, entity.NormalizeUsername),
		Email:     normalized(input.Email, entity.NormalizeEmail),
		FirstName: normalized(input.FirstName, strings.TrimSpace),
		LastName:  normalized(input.LastName, strings.TrimSpace),
	}
	input.NewUsername, input.Email, input.FirstName, input.LastName = changes.Username, changes.Email, changes.FirstName, changes.LastName

	if err := srv.validate.StructCtx(ctx, input); err != nil {
		return nil, validationError(err)
	}

	keys := []string{usernameKey(input.Username)}
	if changes.Username != nil {
		keys = append(keys, usernameKey(*changes.Username))
	}
	if changes.Email != nil {
		keys = append(keys, emailKey(*changes.Email))
	}
	unlock, err := srv.locks.Lock(ctx, keys...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to acquire profile locks")
	}
	defer unlock()

	current, err := srv.findUser(ctx, input.Username)
	if err != nil {
		return nil, err
	}

	updated := current.Apply(changes)
	usernameChanged := updated.Username != current.Username
	emailChanged := updated.Email != current.Email

	if !usernameChanged && !emailChanged && updated.FirstName == current.FirstName && updated.LastName == current.LastName {
		srv.log(ctx).Debug("Profile unchanged", slog.String("username", current.Username))

		return &usecase.UpdateProfileOutput{User: current, Notification: usecase.NotifyResult{Status: usecase.NotifySkipped}}, nil
	}

	if usernameChanged || emailChanged {
		if input.CurrentPassword == "" {
			return nil, errors.WithStack(domainerrors.ErrReauthenticationRequired)
		}
		ok, err := srv.verify(ctx, input.CurrentPassword, current.PasswordHash)
		if err != nil {
			return nil, err
		}
		if !ok {
			srv.log(ctx).Warn("Profile change rejected: wrong password", slog.String("username", current.Username))

			return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
		}
	}
	if usernameChanged {
		if err := srv.ensureUsernameFree(ctx, updated.Username); err != nil {
			return nil, err
		}
	}
	if emailChanged {
		if err := srv.ensureEmailFree(ctx, updated.Email, current.ID); err != nil {
			return nil, err
		}
	}

	updated.UpdatedAt = srv.clock.Now()
	if err := srv.store.Update(ctx, &updated); err != nil {
		srv.log(ctx).Error("Failed to update profile", slog.String("username", current.Username), slog.Any("error", err))

		return nil, storeError(err, "failed to update profile")
	}

	if srv.session.ReplaceIf(updated.ID, updated) {
		srv.log(ctx).Debug("Refreshed session identity", slog.String("username", updated.Username))
	}
	srv.log(ctx).Info("Profile updated",
		slog.String("username", updated.Username),
		slog.Bool("usernameChanged", usernameChanged),
		slog.Bool("emailChanged", emailChanged),
	)

	output := &usecase.UpdateProfileOutput{User: &updated}
	if srv.notifications != nil {
		result, err := srv.notifications.SendProfileUpdateConfirmation(ctx, updated)
		if err != nil {
			srv.log(ctx).Warn("Failed to request profile confirmation email", slog.String("username", updated.Username), slog.Any("error", err))
			result = usecase.NotifyResult{Status: usecase.NotifySkipped}
		}
		output.Notification = result
	}

	return output, nil
}

// ChangePassword replaces the password after checking the current one.
func (srv *credentialService) ChangePassword(ctx context.Context, input usecase.ChangePasswordInput) error {
	input.Username = entity.NormalizeUsername(input.Username)

	if err := srv.validate.StructCtx(ctx, input); err != nil {
		return validationError(err)
	}

	unlock, err := srv.locks.Lock(ctx, usernameKey(input.Username))
	if err != nil {
		return errors.Wrap(err, "failed to acquire password lock")
	}
	defer unlock()

	user, err := srv.findUser(ctx, input.Username)
	if err != nil {
		return err
	}

	ok, err := srv.verify(ctx, input.CurrentPassword, user.PasswordHash)
	if err != nil {
		return err
	}
	if !ok {
		srv.log(ctx).Warn("Password change rejected: wrong password", slog.String("username", user.Username))

		return errors.WithStack(domainerrors.ErrInvalidCredentials)
	}
	if input.NewPassword == input.CurrentPassword {
		return errors.WithStack(domainerrors.ErrPasswordUnchanged)
	}
	if err := srv.policy.Validate(input.NewPassword); err != nil {
		return err
	}

	user.SetPlaintext(input.NewPassword)
	defer user.ClearPlaintext()

	hash, err := srv.hash(ctx, user.Plaintext())
	if err != nil {
		return err
	}

	if err := srv.store.UpdatePasswordHash(ctx, user.Username, hash); err != nil {
		srv.log(ctx).Error("Failed to store new password hash", slog.String("username", user.Username), slog.Any("error", err))

		return storeError(err, "failed to store new password hash")
	}
	user.SetPasswordHash(hash)
	user.PasswordChangedAt = srv.clock.Now()

	srv.session.ReplaceIf(user.ID, *user)
	srv.log(ctx).Info("Password changed", slog.String("username", user.Username))

	return nil
}

// DeleteAccount removes an account and ends the session if it belonged to it.
func (srv *credentialService) DeleteAccount(ctx context.Context, username string) error {
	username = entity.NormalizeUsername(username)

	unlock, err := srv.locks.Lock(ctx, usernameKey(username))
	if err != nil {
		return errors.Wrap(err, "failed to acquire delete lock")
	}
	defer unlock()

	user, err := srv.findUser(ctx, username)
	if err != nil {
		return err
	}

	if err := srv.store.DeleteByUsername(ctx, username); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.WithStack(domainerrors.ErrUserNotFound)
		}
		srv.log(ctx).Error("Failed to delete user", slog.String("username", username), slog.Any("error", err))

		return storeError(err, "failed to delete user")
	}

	if srv.session.ClearIf(user.ID) {
		srv.log(ctx).Info("Ended session of deleted account", slog.String("username", username))
	}
	srv.log(ctx).Info("Account deleted", slog.String("username", username))

	return nil
}

// UsernameExists reports whether an account uses the username.
func (srv *credentialService) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := srv.store.FindByUsername(ctx, entity.NormalizeUsername(username))
	if errors.Is(err, repository.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, storeError(err, "failed to find user")
	}

	return true, nil
}

// EmailExists reports whether an account uses the email, compared case-insensitively.
func (srv *credentialService) EmailExists(ctx context.Context, email string) (bool, error) {
	user, err := srv.findByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		return false, err
	}

	return user != nil, nil
}

// ListUsers returns every account ordered by username.
func (srv *credentialService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.store.FindAll(ctx)
	if err != nil {
		return nil, storeError(err, "failed to list users")
	}

	return users, nil
}

func (srv *credentialService) findUser(ctx context.Context, username string) (*entity.User, error) {
	user, err := srv.store.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.WithStack(domainerrors.ErrUserNotFound)
	}
	if err != nil {
		return nil, storeError(err, "failed to find user")
	}

	return user, nil
}

// findByEmail returns nil without error when no account uses the email.
func (srv *credentialService) findByEmail(ctx context.Context, email string) (*entity.User, error) {
	if email == "" {
		return nil, nil
	}

	if finder, ok := srv.store.(repository.EmailFinder); ok {
		user, err := finder.FindByEmail(ctx, email)
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, storeError(err, "failed to find user by email")
		}

		return user, nil
	}

	users, err := srv.store.FindAll(ctx)
	if err != nil {
		return nil, storeError(err, "failed to list users")
	}
	for _, user := range users {
		if entity.NormalizeEmail(user.Email) == email {
			return user, nil
		}
	}

	return nil, nil
}

func (srv *credentialService) ensureUsernameFree(ctx context.Context, username string) error {
	exists, err := srv.UsernameExists(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return errors.WithStack(domainerrors.ErrUserAlreadyExists)
	}

	return nil
}

// ensureEmailFree fails when an account other than ownerID uses the email.
func (srv *credentialService) ensureEmailFree(ctx context.Context, email string, ownerID int64) error {
	user, err := srv.findByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user != nil && user.ID != ownerID {
		return errors.WithStack(domainerrors.ErrEmailAlreadyExists)
	}

	return nil
}

func (srv *credentialService) hash(ctx context.Context, password string) (string, error) {
	hash, err := srv.hashWorker.Hash(ctx, password)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash password")
	}

	return hash, nil
}

func (srv *credentialService) verify(ctx context.Context, password, hash string) (bool, error) {
	ok, err := srv.hashWorker.Verify(ctx, password, hash)
	if err != nil {
		return false, errors.Wrap(err, "failed to verify password")
	}

	return ok, nil
}

// storeError maps a store failure into the domain taxonomy.
func storeError(err error, details string) error {
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		return errors.WithStack(domainerrors.ErrUserNotFound)
	case errors.Is(err, repository.ErrDuplicateUsername):
		return errors.WithStack(domainerrors.ErrUserAlreadyExists)
	case errors.Is(err, repository.ErrDuplicateEmail):
		return errors.WithStack(domainerrors.ErrEmailAlreadyExists)
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	return domainerrors.NewStorageError(err, details)
}

func normalized(value *string, normalize func(string) string) *string {
	if value == nil {
		return nil
	}
	v := normalize(*value)

	return &v
}
