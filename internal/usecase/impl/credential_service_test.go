package impl

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"habit/config"
	"habit/internal/domain/entity"
	domainerrors "habit/internal/domain/errors"
	"habit/internal/domain/repository"
	"habit/internal/errors"
	"habit/internal/infra/auth"
	"habit/internal/infra/clock"
	"habit/internal/infra/persistence/memory"
	mockRepo "habit/internal/mocks/repository"
	mockSvc "habit/internal/mocks/service"
	mockUsecase "habit/internal/mocks/usecase"
	"habit/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCredentialService_AliceScenario(t *testing.T) {
	f := createTestCredentialService(t)
	ctx := context.Background()

	registered, err := f.service.Register(ctx, aliceInput())
	require.NoError(t, err)
	assert.Equal(t, "alice", registered.Username)

	identity, err := f.service.Login(ctx, "alice", testPassword)
	require.NoError(t, err)
	assert.Equal(t, "alice", identity.Username)
	f.service.Logout(ctx)

	_, err = f.service.Login(ctx, "alice", "wrong")
	assert.Equal(t, domainerrors.KindAuthentication, domainerrors.KindOf(err))
	_, ok := f.service.CurrentUser()
	assert.False(t, ok, "failed login must not open a session")

	_, err = f.service.Login(ctx, "alice", testPassword)
	require.NoError(t, err)

	_, err = f.service.UpdateProfile(ctx, usecase.UpdateProfileInput{Username: "alice", Email: strPtr("b@x.com")})
	assert.Equal(t, domainerrors.KindAuthentication, domainerrors.KindOf(err))

	stored, err := f.store.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", stored.Email)

	out, err := f.service.UpdateProfile(ctx, usecase.UpdateProfileInput{
		Username:        "alice",
		Email:           strPtr("b@x.com"),
		CurrentPassword: testPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, "b@x.com", out.User.Email)

	current, ok := f.service.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "b@x.com", current.Email)
}

func TestCredentialService_Register_Success(t *testing.T) {
	f := createTestCredentialService(t)
	ctx := context.Background()

	user, err := f.service.Register(ctx, usecase.RegisterInput{
		Username:  "  alice ",
		Password:  testPassword,
		Email:     " Alice@Example.COM ",
		FirstName: " Alice ",
		LastName:  "Liddell",
	})
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "Alice", user.FirstName)
	assert.Equal(t, testNow, user.CreatedAt)
	assert.Equal(t, testNow, user.PasswordChangedAt)
	assert.NotEqual(t, testPassword, user.PasswordHash)
	assert.False(t, user.HasPlaintext())
	assert.True(t, f.hasher.Verify(testPassword, user.PasswordHash))

	stored, err := f.store.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.PasswordHash, stored.PasswordHash)

	_, ok := f.service.CurrentUser()
	assert.False(t, ok, "registration does not log in")
}

func TestCredentialService_Register_ValidationErrors(t *testing.T) {
	long := strings.Repeat("x", 101)

	tests := []struct {
		name    string
		mutate  func(*usecase.RegisterInput)
		details string
	}{
		{"blank username", func(in *usecase.RegisterInput) { in.Username = "   " }, "username is required"},
		{"short username", func(in *usecase.RegisterInput) { in.Username = "al" }, "username must be at least 3 characters long"},
		{"username with space", func(in *usecase.RegisterInput) { in.Username = "al ice" }, "username must not contain whitespace"},
		{"missing email", func(in *usecase.RegisterInput) { in.Email = "" }, "email is required"},
		{"email without domain", func(in *usecase.RegisterInput) { in.Email = "alice@example" }, "please enter a valid email address"},
		{"email without at", func(in *usecase.RegisterInput) { in.Email = "alice.example.com" }, "please enter a valid email address"},
		{"long first name", func(in *usecase.RegisterInput) { in.FirstName = long }, "first name must be at most 100 characters long"},
		{"long last name", func(in *usecase.RegisterInput) { in.LastName = long }, "last name must be at most 100 characters long"},
		{"weak password", func(in *usecase.RegisterInput) { in.Password = "short" }, "password must be at least 8 characters long"},
		{"common password", func(in *usecase.RegisterInput) { in.Password = "Password123!" }, "password is too common"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := createTestCredentialService(t)
			input := aliceInput()
			tt.mutate(&input)

			user, err := f.service.Register(context.Background(), input)

			require.Error(t, err)
			assert.Nil(t, user)
			assert.Equal(t, domainerrors.KindValidation, domainerrors.KindOf(err))
			assert.Equal(t, tt.details, domainerrors.MessageOf(err))

			users, err := f.store.FindAll(context.Background())
			require.NoError(t, err)
			assert.Empty(t, users)
		})
	}
}

func TestCredentialService_Register_DuplicateUsername(t *testing.T) {
	f := createTestCredentialService(t)
	ctx := context.Background()
	f.register(t, aliceInput())

	input := aliceInput()
	input.Email = "other@x.com"
	_, err := f.service.Register(ctx, input)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
	assert.Equal(t, domainerrors.KindConflict, domainerrors.KindOf(err))

	users, err := f.store.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "a@x.com", users[0].Email)
}

func TestCredentialService_Register_DuplicateEmailIgnoresCase(t *testing.T) {
	f := createTestCredentialService(t)
	f.register(t, aliceInput())

	input := aliceInput()
	input.Username = "alice2"
	input.Email = "A@X.COM"
	_, err := f.service.Register(context.Background(), input)

	assert.True(t, errors.Is(err, domainerrors.ErrEmailAlreadyExists))
}

func TestCredentialService_Register_UsernamesAreCaseSensitive(t *testing.T) {
	f := createTestCredentialService(t)
	f.register(t, aliceInput())

	input := aliceInput()
	input.Username = "Alice"
	input.Email = "big-a@x.com"
	user, err := f.service.Register(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Username)
}

func TestCredentialService_Register_StoreFailure(t *testing.T) {
	store := mockRepo.NewMockUserStore(t)
	f := createTestCredentialService(t, withStore(store))

	store.EXPECT().FindByUsername(mock.Anything, "alice").Return(nil, repository.ErrUserNotFound)
	store.EXPECT().FindAll(mock.Anything).Return([]*entity.User{}, nil)
	store.EXPECT().Save(mock.Anything, mock.AnythingOfType("*entity.User")).
		Run(func(_ context.Context, user *entity.User) {
			assert.False(t, user.HasPlaintext(), "only the hash reaches the store")
			assert.NotEmpty(t, user.PasswordHash)
		}).
		Return(int64(0), errors.New("connection refused"))

	_, err := f.service.Register(context.Background(), aliceInput())

	require.Error(t, err)
	assert.Equal(t, domainerrors.KindStorage, domainerrors.KindOf(err))
	assert.True(t, errors.Is(err, domainerrors.ErrStorageUnavailable))
}

func TestCredentialService_Register_DuplicateDetectedByStore(t *testing.T) {
	store := mockRepo.NewMockUserStore(t)
	f := createTestCredentialService(t, withStore(store))

	store.EXPECT().FindByUsername(mock.Anything, "alice").Return(nil, repository.ErrUserNotFound)
	store.EXPECT().FindAll(mock.Anything).Return(nil, nil)
	store.EXPECT().Save(mock.Anything, mock.Anything).Return(int64(0), repository.ErrDuplicateEmail)

	_, err := f.service.Register(context.Background(), aliceInput())

	assert.True(t, errors.Is(err, domainerrors.ErrEmailAlreadyExists))
}

func TestCredentialService_Register_ConcurrentSameUsername(t *testing.T) {
	f := createTestCredentialService(t)
	const attempts = 16

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()

			input := aliceInput()
			input.Email = fmt.Sprintf("alice%d@x.com", i)
			_, err := f.service.Register(context.Background(), input)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, domainerrors.ErrUserAlreadyExists):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)

	users, err := f.store.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestCredentialService_Register_ConcurrentSameEmail(t *testing.T) {
	f := createTestCredentialService(t)
	const attempts = 16

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()

			input := aliceInput()
			input.Username = fmt.Sprintf("alice%d", i)
			_, err := f.service.Register(context.Background(), input)
			if err != nil {
				assert.True(t, errors.Is(err, domainerrors.ErrEmailAlreadyExists))

				return
			}

			mu.Lock()
			successes++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
}

func TestCredentialService_Login_RoundTrip(t *testing.T) {
	f := createTestCredentialService(t)
	registered := f.register(t, aliceInput())

	identity, err := f.service.Login(context.Background(), "alice", testPassword)
	require.NoError(t, err)

	assert.Equal(t, registered.ID, identity.ID)
	assert.Equal(t, registered.Username, identity.Username)
	assert.Equal(t, registered.Email, identity.Email)
	assert.Equal(t, registered.FirstName, identity.FirstName)
	assert.Equal(t, registered.LastName, identity.LastName)

	current, ok := f.service.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "alice", current.Username)

	current.Email = "mallory@x.com"
	again, _ := f.service.CurrentUser()
	assert.Equal(t, "a@x.com", again.Email, "CurrentUser returns a copy")
}

func TestCredentialService_Login_UnknownUser(t *testing.T) {
	f := createTestCredentialService(t)

	_, err := f.service.Login(context.Background(), "nobody", testPassword)

	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
	assert.Equal(t, domainerrors.KindNotFound, domainerrors.KindOf(err))
}

func TestCredentialService_Login_UnknownUserMasked(t *testing.T) {
	f := createTestCredentialService(t, withConfig(func(cfg *config.Config) {
		cfg.Auth.MaskUnknownUser = true
	}))
	f.register(t, aliceInput())

	_, unknownErr := f.service.Login(context.Background(), "nobody", testPassword)
	_, wrongErr := f.service.Login(context.Background(), "alice", "Wr0ng!Pass")

	assert.True(t, errors.Is(unknownErr, domainerrors.ErrInvalidCredentials))
	assert.Equal(t, domainerrors.MessageOf(wrongErr), domainerrors.MessageOf(unknownErr))
	assert.NotEmpty(t, f.service.dummyHash)
}

func TestCredentialService_Login_WrongPasswordKeepsSession(t *testing.T) {
	f := createTestCredentialService(t)
	ctx := context.Background()
	f.register(t, aliceInput())
	bob := aliceInput()
	bob.Username, bob.Email = "bob", "bob@x.com"
	f.register(t, bob)

	_, err := f.service.Login(ctx, "bob", testPassword)
	require.NoError(t, err)

	_, err = f.service.Login(ctx, "alice", "wrong")
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	current, ok := f.service.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "bob", current.Username)
}

func TestCredentialService_Login_RehashesOutdatedHash(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMock(testNow)
	store := memory.NewUserStore(clk)

	oldHash, err := auth.NewBcryptHasherWithCost(bcrypt.MinCost).Hash(testPassword)
	require.NoError(t, err)
	_, err = store.Save(ctx, &entity.User{Username: "carol", PasswordHash: oldHash, Email: "c@x.com"})
	require.NoError(t, err)

	current := auth.NewBcryptHasherWithCost(bcrypt.MinCost + 1)
	f := createTestCredentialService(t, withStore(store), withHasher(current))

	identity, err := f.service.Login(ctx, "carol", testPassword)
	require.NoError(t, err)

	stored, err := store.FindByUsername(ctx, "carol")
	require.NoError(t, err)
	assert.NotEqual(t, oldHash, stored.PasswordHash)
	assert.False(t, current.NeedsUpgrade(stored.PasswordHash))
	assert.True(t, current.Verify(testPassword, stored.PasswordHash))
	assert.Equal(t, stored.PasswordHash, identity.PasswordHash)
}

func TestCredentialService_Login_MigratesToArgon2id(t *testing.T) {
	ctx := context.Background()
	store := memory.NewUserStore(clock.NewMock(testNow))

	oldHash, err := auth.NewBcryptHasherWithCost(bcrypt.MinCost).Hash(testPassword)
	require.NoError(t, err)
	_, err = store.Save(ctx, &entity.User{Username: "dave", PasswordHash: oldHash, Email: "d@x.com"})
	require.NoError(t, err)

	hasher, err := auth.NewPasswordHasher(&config.AuthConfig{
		Algorithm: config.AlgorithmArgon2id,
		Argon2: config.Argon2Config{
			Memory:      1024,
			Iterations:  1,
			Parallelism: 1,
			SaltLength:  16,
			KeyLength:   32,
		},
	})
	require.NoError(t, err)
	f := createTestCredentialService(t, withStore(store), withHasher(hasher))

	_, err = f.service.Login(ctx, "dave", testPassword)
	require.NoError(t, err)

	stored, err := store.FindByUsername(ctx, "dave")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.PasswordHash, "$argon2id$"))

	f.service.Logout(ctx)
	_, err = f.service.Login(ctx, "dave", testPassword)
	assert.NoError(t, err)
}

func TestCredentialService_Login_UpgradeFollowsHasher(t *testing.T) {
	tests := []struct {
		name         string
		needsUpgrade bool
		wantHash     string
	}{
		{name: "current hash is kept", needsUpgrade: false, wantHash: "stored-hash"},
		{name: "outdated hash is replaced", needsUpgrade: true, wantHash: "upgraded-hash"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := memory.NewUserStore(clock.NewMock(testNow))
			_, err := store.Save(ctx, &entity.User{Username: "erin", PasswordHash: "stored-hash", Email: "e@x.com"})
			require.NoError(t, err)

			hasher := mockSvc.NewMockPasswordHasher(t)
			hasher.EXPECT().Verify(testPassword, "stored-hash").Return(true).Once()
			hasher.EXPECT().NeedsUpgrade("stored-hash").Return(tt.needsUpgrade).Once()
			if tt.needsUpgrade {
				hasher.EXPECT().Hash(testPassword).Return("upgraded-hash", nil).Once()
			}
			f := createTestCredentialService(t, withStore(store), withHasher(hasher))

			identity, err := f.service.Login(ctx, "erin", testPassword)
			require.NoError(t, err)
			assert.Equal(t, tt.wantHash, identity.PasswordHash)

			stored, err := store.FindByUsername(ctx, "erin")
			require.NoError(t, err)
			assert.Equal(t, tt.wantHash, stored.PasswordHash)
		})
	}
}

func TestCredentialService_Login_WrongPasswordSkipsUpgrade(t *testing.T) {
	ctx := context.Background()
	store := memory.NewUserStore(clock.NewMock(testNow))
	_, err := store.Save(ctx, &entity.User{Username: "erin", PasswordHash: "stored-hash", Email: "e@x.com"})
	require.NoError(t, err)

	hasher := mockSvc.NewMockPasswordHasher(t)
	hasher.EXPECT().Verify("wrong", "stored-hash").Return(false).Once()
	f := createTestCredentialService(t, withStore(store), withHasher(hasher))

	_, err = f.service.Login(ctx, "erin", "wrong")

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	hasher.AssertNotCalled(t, "NeedsUpgrade", mock.Anything)
	hasher.AssertNotCalled(t, "Hash", mock.Anything)
}

func TestCredentialService_Login_RehashStoreFailure(t *testing.T) {
	store := mockRepo.NewMockUserStore(t)
	oldHash, err := auth.NewBcryptHasherWithCost(bcrypt.MinCost).Hash(testPassword)
	require.NoError(t, err)
	f := createTestCredentialService(t, withStore(store), withHasher(auth.NewBcryptHasherWithCost(bcrypt.MinCost+1)))

	store.EXPECT().FindByUsername(mock.Anything, "carol").
		Return(&entity.User{ID: 7, Username: "carol", PasswordHash: oldHash}, nil)
	store.EXPECT().UpdatePasswordHash(mock.Anything, "carol", mock.AnythingOfType("string")).
		Return(errors.New("disk full"))

	_, err = f.service.Login(context.Background(), "carol", testPassword)

	assert.Equal(t, domainerrors.KindStorage, domainerrors.KindOf(err))
	_, ok := f.service.CurrentUser()
	assert.False(t, ok)
}

func TestCredentialService_Login_StoreFailure(t *testing.T) {
	store := mockRepo.NewMockUserStore(t)
	f := createTestCredentialService(t, withStore(store))

	store.EXPECT().FindByUsername(mock.Anything, "alice").Return(nil, context.DeadlineExceeded)

	_, err := f.service.Login(context.Background(), "alice", testPassword)

	assert.Equal(t, domainerrors.KindStorage, domainerrors.KindOf(err))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestCredentialService_Logout_Idempotent(t *testing.T) {
	f := createTestCredentialService(t)
	ctx := context.Background()
	f.register(t, aliceInput())
	_, err := f.service.Login(ctx, "alice", testPassword)
	require.NoError(t, err)

	f.service.Logout(ctx)
	_, ok := f.service.CurrentUser()
	assert.False(t, ok)

	f.service.Logout(ctx)
	_, ok = f.service.CurrentUser()
	assert.False(t, ok)
}

func TestCredentialService_UpdateProfile_NamesWithoutPassword(t *testing.T) {
	f := createTestCredentialService(t)
	ctx := context.Background()
	f.register(t, aliceInput())

	out, err := f.service.UpdateProfile(ctx, usecase.UpdateProfileInput{
		Username:  "alice",
		FirstName: strPtr("Alicia"),
		LastName:  strPtr(" Liddell "),
	})
	require.NoError(t, err)

	assert.Equal(t, "Alicia", out.User.FirstName)
	assert.Equal(t, "Liddell", out.User.LastName)
	assert.Equal(t, usecase.NotifyQueued, out.Notification.Status)

	stored, err := f.store.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", stored.FirstName)

	f.notifications.Wait()
	mails := f.notifier.messages()
	require.Len(t, mails, 1)
	assert.Equal(t, "a@x.com", mails[0].to)
	assert.Equal(t, profileUpdateSubject, mails[0].subject)
	assert.Contains(t, mails[0].body, "Dear Alicia,")
	assert.Contains(t, mails[0].body, "- Name: Alicia Liddell")
}

func TestCredentialService_UpdateProfile_EmailRequiresPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"missing password", "", domainerrors.ErrReauthenticationRequired},
		{"wrong password", "Wr0ng!Pass", domainerrors.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := createTestCredentialService(t)
			ctx := context.Background()
			f.register(t, aliceInput())

			_, err := f.service.UpdateProfile(ctx, usecase.UpdateProfileInput{
				Username:        "alice",
				Email:           strPtr("b@x.com"),
				CurrentPassword: tt.password,
			})

			assert.True(t, errors.Is(err, tt.wantErr))
			assert.Equal(t, domainerrors.KindAuthentication, domainerrors.KindOf(err))

			stored, err := f.store.FindByUsername(ctx, "alice")
			require.NoError(t, err)
			assert.Equal(t, "a@x.com", stored.Email)
			assert.Empty(t, f.notifier.messages())
		})
	}
}

func TestCredentialService_UpdateProfile_RenameRequiresPassword(t *testing.T) {
	f := createTestCredentialService(t)
	ctx := context.Background()
	f.register(t, aliceInput())

	_, err := f.service.UpdateProfile(ctx, usecase.UpdateProfileInput{Username: "alice", NewUsername: strPtr("alicia")})
	assert.True(t, errors.Is(err, domainerrors.ErrReauthenticationRequired))

	_, err = f.service.Login(ctx, "alice", testPassword)
	require.NoError(t, err)

	out, err := f.service.UpdateProfile(ctx, usecase.UpdateProfileInput{
		Username:        "alice",
		NewUsername:     strPtr("alicia"),
		CurrentPassword: testPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, "alicia", out.User.Username)

	exists, err := f.service.UsernameExists(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, exists)

	current, ok := f.service.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "alicia", current.Username)

	f.service.Logout(ctx)
	_, err = f.service.Login(ctx, "alicia", testPassword)
	assert.NoError(t, err)
}

func TestCredentialService_UpdateProfile_Conflicts(t *testing.T) {
	f := createTestCredentialService(t)
	ctx := context.Background()
	f.register(t, aliceInput())
	bob := aliceInput()
	bob.Username, bob.Email = "bob", "bob@x.com"
	f.register(t, bob)

	_, err := f.service.UpdateProfile(ctx, usecase.UpdateProfileInput{
		Username:        "alice",
		NewUsername:     strPtr("bob"),
		CurrentPassword: testPassword,
	})
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))

	_, err = f.service.UpdateProfile(ctx, usecase.UpdateProfileInput{
		Username:        "alice",
		Email:           strPtr("BOB@x.com"),
		CurrentPassword: testPassword,
	})
	assert.True(t, errors.Is(err, domainerrors.ErrEmailAlreadyExists))
	assert.Equal(t, domainerrors.KindConflict, domainerrors.KindOf(err))
}

func TestCredentialService_UpdateProfile_SameEmailDifferentCase(t *testing.T) {
	f := createTestCredentialService(t)
	f.register(t, aliceInput())

	out, err := f.service.UpdateProfile(context.Background(), usecase.UpdateProfileInput{
		Username: "alice",
		Email:    strPtr("A@X.com"),
	})

	require.NoError(t, err, "normalizing to the stored address is not a change")
	assert.Equal(t, usecase.NotifySkipped, out.Notification.Status)
}

func TestCredentialService_UpdateProfile_Validation(t *testing.T) {
	f := createTestCredentialService(t)
	f.register(t, aliceInput())

	_, err := f.service.UpdateProfile(context.Background(), usecase.UpdateProfileInput{
		Username:        "alice",
		Email:           strPtr("not-an-email"),
		CurrentPassword: testPassword,
	})

	assert.Equal(t, domainerrors.KindValidation, domainerrors.KindOf(err))
	assert.Equal(t, "please enter a valid email address", domainerrors.MessageOf(err))
}

func TestCredentialService_UpdateProfile_UnknownUser(t *testing.T) {
	f := createTestCredentialService(t)

	_, err := f.service.UpdateProfile(context.Background(), usecase.UpdateProfileInput{
		Username:  "nobody",
		FirstName: strPtr("N"),
	})

	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestCredentialService_UpdateProfile_Cooldown(t *testing.T) {
	f := createTestCredentialService(t)
	ctx := context.Background()
	f.register(t, aliceInput())

	edit := func(first string) usecase.NotifyResult {
		out, err := f.service.UpdateProfile(ctx, usecase.UpdateProfileInput{Username: "alice", FirstName: strPtr(first)})
		require.NoError(t, err)

		return out.Notification
	}

	assert.Equal(t, usecase.NotifyQueued, edit("Alicia").Status)

	f.clock.Advance(20 * time.Second)
	second := edit("Ally")
	assert.Equal(t, usecase.NotifyCoolingDown, second.Status)
	assert.Equal(t, 40*time.Second, second.RetryAfter)

	stored, err := f.store.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Ally", stored.FirstName, "the edit is stored even when the email is held back")

	f.clock.Advance(41 * time.Second)
	assert.Equal(t, usecase.NotifyQueued, edit("Al").Status)

	f.notifications.Wait()
	assert.Len(t, f.notifier.messages(), 2)
}

func TestCredentialService_UpdateProfile_NotificationErrorIsNotFatal(t *testing.T) {
	f := createTestCredentialService(t)
	notifications := mockUsecase.NewMockNotificationUsecase(t)
	f.service.notifications = notifications
	f.register(t, aliceInput())

	notifications.EXPECT().
		SendProfileUpdateConfirmation(mock.Anything, mock.AnythingOfType("entity.User")).
		Return(usecase.NotifyResult{}, errors.New("redis unavailable"))

	out, err := f.service.UpdateProfile(context.Background(), usecase.UpdateProfileInput{
		Username:  "alice",
		FirstName: strPtr("Alicia"),
	})

	require.NoError(t, err)
	assert.Equal(t, usecase.NotifySkipped, out.Notification.Status)
}

func TestCredentialService_UpdateProfile_StoreFailureLeavesSession(t *testing.T) {
	store := mockRepo.NewMockUserStore(t)
	f := createTestCredentialService(t, withStore(store))
	alice := entity.User{ID: 1, Username: "alice", Email: "a@x.com", FirstName: "A"}
	f.service.session.Set(alice)

	store.EXPECT().FindByUsername(mock.Anything, "alice").Return(&alice, nil)
	store.EXPECT().Update(mock.Anything, mock.AnythingOfType("*entity.User")).Return(errors.New("connection reset"))

	_, err := f.service.UpdateProfile(context.Background(), usecase.UpdateProfileInput{
		Username:  "alice",
		FirstName: strPtr("Alicia"),
	})

	assert.Equal(t, domainerrors.KindStorage, domainerrors.KindOf(err))
	current, ok := f.service.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "A", current.FirstName)
}

func TestCredentialService_ChangePassword(t *testing.T) {
	f := createTestCredentialService(t)
	ctx := context.Background()
	f.register(t, aliceInput())
	_, err := f.service.Login(ctx, "alice", testPassword)
	require.NoError(t, err)
	before, _ := f.service.CurrentUser()

	f.clock.Advance(time.Hour)
	err = f.service.ChangePassword(ctx, usecase.ChangePasswordInput{
		Username:        "alice",
		CurrentPassword: testPassword,
		NewPassword:     testNewPassword,
	})
	require.NoError(t, err)

	after, ok := f.service.CurrentUser()
	require.True(t, ok)
	assert.NotEqual(t, before.PasswordHash, after.PasswordHash)
	assert.Equal(t, testNow.Add(time.Hour), after.PasswordChangedAt)

	f.service.Logout(ctx)
	_, err = f.service.Login(ctx, "alice", testPassword)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	_, err = f.service.Login(ctx, "alice", testNewPassword)
	assert.NoError(t, err)
}

func TestCredentialService_ChangePassword_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		next     string
		wantKind domainerrors.Kind
		wantErr  error
	}{
		{"wrong current password", "Wr0ng!Pass", testNewPassword, domainerrors.KindAuthentication, domainerrors.ErrInvalidCredentials},
		{"empty current password", "", testNewPassword, domainerrors.KindAuthentication, domainerrors.ErrInvalidCredentials},
		{"unchanged password", testPassword, testPassword, domainerrors.KindValidation, domainerrors.ErrPasswordUnchanged},
		{"weak new password", testPassword, "weakpass", domainerrors.KindValidation, domainerrors.ErrWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := createTestCredentialService(t)
			ctx := context.Background()
			registered := f.register(t, aliceInput())

			err := f.service.ChangePassword(ctx, usecase.ChangePasswordInput{
				Username:        "alice",
				CurrentPassword: tt.current,
				NewPassword:     tt.next,
			})

			assert.Equal(t, tt.wantKind, domainerrors.KindOf(err))
			assert.True(t, errors.Is(err, tt.wantErr))

			stored, err := f.store.FindByUsername(ctx, "alice")
			require.NoError(t, err)
			assert.Equal(t, registered.PasswordHash, stored.PasswordHash)
		})
	}
}

func TestCredentialService_ChangePassword_UnknownUser(t *testing.T) {
	f := createTestCredentialService(t)

	err := f.service.ChangePassword(context.Background(), usecase.ChangePasswordInput{
		Username:        "nobody",
		CurrentPassword: testPassword,
		NewPassword:     testNewPassword,
	})

	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestCredentialService_DeleteAccount(t *testing.T) {
	f := createTestCredentialService(t)
	ctx := context.Background()
	f.register(t, aliceInput())
	_, err := f.service.Login(ctx, "alice", testPassword)
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteAccount(ctx, "alice"))

	_, ok := f.service.CurrentUser()
	assert.False(t, ok)
	exists, err := f.service.UsernameExists(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, exists)

	err = f.service.DeleteAccount(ctx, "alice")
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestCredentialService_DeleteAccount_OtherSessionSurvives(t *testing.T) {
	f := createTestCredentialService(t)
	ctx := context.Background()
	f.register(t, aliceInput())
	bob := aliceInput()
	bob.Username, bob.Email = "bob", "bob@x.com"
	f.register(t, bob)
	_, err := f.service.Login(ctx, "bob", testPassword)
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteAccount(ctx, "alice"))

	current, ok := f.service.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "bob", current.Username)
}

func TestCredentialService_Exists(t *testing.T) {
	f := createTestCredentialService(t)
	ctx := context.Background()
	f.register(t, aliceInput())

	exists, err := f.service.UsernameExists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = f.service.UsernameExists(ctx, "ALICE")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = f.service.EmailExists(ctx, " A@X.COM ")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = f.service.EmailExists(ctx, "")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCredentialService_EmailExists_ScansStoresWithoutEmailLookup(t *testing.T) {
	store := mockRepo.NewMockUserStore(t)
	f := createTestCredentialService(t, withStore(store))

	store.EXPECT().FindAll(mock.Anything).Return([]*entity.User{
		{Username: "alice", Email: "a@x.com"},
		{Username: "bob", Email: "bob@x.com"},
	}, nil).Twice()

	exists, err := f.service.EmailExists(context.Background(), "BOB@x.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = f.service.EmailExists(context.Background(), "carol@x.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCredentialService_ListUsers(t *testing.T) {
	f := createTestCredentialService(t)
	for _, name := range []string{"carol", "alice", "bob"} {
		input := aliceInput()
		input.Username, input.Email = name, name+"@x.com"
		f.register(t, input)
	}

	users, err := f.service.ListUsers(context.Background())
	require.NoError(t, err)

	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Username)
	}
	assert.Equal(t, []string{"alice", "bob", "carol"}, names)
}

func TestCredentialService_CancelledContext(t *testing.T) {
	f := createTestCredentialService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.service.Register(ctx, aliceInput())

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestStoreError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"not found", repository.ErrUserNotFound, domainerrors.ErrUserNotFound},
		{"duplicate username", repository.ErrDuplicateUsername, domainerrors.ErrUserAlreadyExists},
		{"duplicate email", errors.Wrap(repository.ErrDuplicateEmail, "insert"), domainerrors.ErrEmailAlreadyExists},
		{"already a storage error", domainerrors.NewStorageError(errors.New("boom"), "query"), domainerrors.ErrStorageUnavailable},
		{"anything else", errors.New("boom"), domainerrors.ErrStorageUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(storeError(tt.in, "op"), tt.want))
		})
	}
}
