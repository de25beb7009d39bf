package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"habit/config"
	"habit/internal/domain/entity"
	"habit/internal/domain/repository"
	"habit/internal/domain/service"
	"habit/internal/infra/auth"
	"habit/internal/infra/clock"
	"habit/internal/infra/cooldown"
	"habit/internal/infra/persistence/memory"
	"habit/internal/usecase"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testPassword    = "Str0ng!Pass"
	testNewPassword = "N3w!Secret"
)

var testNow = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.ApplyDefaults()

	return cfg
}

type sentMail struct {
	to      string
	subject string
	body    string
}

// recordingNotifier keeps every message it is asked to send.
type recordingNotifier struct {
	mu     sync.Mutex
	sent   []sentMail
	result bool
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{result: true}
}

func (n *recordingNotifier) Send(_ context.Context, to, subject, body string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.sent = append(n.sent, sentMail{to: to, subject: subject, body: body})

	return n.result
}

func (n *recordingNotifier) messages() []sentMail {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]sentMail(nil), n.sent...)
}

// credentialFixtures holds all test dependencies for credential service tests.
type credentialFixtures struct {
	service       *credentialService
	store         *memory.UserStore
	hasher        service.PasswordHasher
	notifier      *recordingNotifier
	notifications usecase.NotificationUsecase
	clock         *clock.MockClock
}

type fixtureOption func(*fixtureSetup)

type fixtureSetup struct {
	cfg    *config.Config
	hasher service.PasswordHasher
	store  repository.UserStore
}

func withConfig(mutate func(*config.Config)) fixtureOption {
	return func(s *fixtureSetup) { mutate(s.cfg) }
}

func withHasher(hasher service.PasswordHasher) fixtureOption {
	return func(s *fixtureSetup) { s.hasher = hasher }
}

func withStore(store repository.UserStore) fixtureOption {
	return func(s *fixtureSetup) { s.store = store }
}

func createTestCredentialService(t *testing.T, opts ...fixtureOption) credentialFixtures {
	t.Helper()

	clk := clock.NewMock(testNow)
	memStore := memory.NewUserStore(clk)
	setup := &fixtureSetup{
		cfg:    newTestConfig(),
		hasher: auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		store:  memStore,
	}
	for _, opt := range opts {
		opt(setup)
	}

	worker := auth.NewHashWorker(setup.hasher, 2, 8)
	t.Cleanup(worker.Close)

	notifier := newRecordingNotifier()
	notifications := NewNotificationService(NotificationServiceParams{
		Notifier: notifier,
		Limiter:  cooldown.NewMemoryLimiter(clk),
		Config:   setup.cfg,
		Logger:   newDiscardLogger(),
	})
	t.Cleanup(notifications.Wait)

	srv := NewCredentialService(CredentialServiceParams{
		Store:         setup.store,
		Hasher:        setup.hasher,
		HashWorker:    worker,
		Policy:        auth.NewPasswordPolicy(setup.cfg.PasswordStrength),
		Notifications: notifications,
		Clock:         clk,
		Config:        setup.cfg,
		Logger:        newDiscardLogger(),
	})

	return credentialFixtures{
		service:       srv.(*credentialService),
		store:         memStore,
		hasher:        setup.hasher,
		notifier:      notifier,
		notifications: notifications,
		clock:         clk,
	}
}

func aliceInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Username:  "alice",
		Password:  testPassword,
		Email:     "a@x.com",
		FirstName: "A",
		LastName:  "L",
	}
}

func (f credentialFixtures) register(t *testing.T, input usecase.RegisterInput) *entity.User {
	t.Helper()

	user, err := f.service.Register(context.Background(), input)
	require.NoError(t, err)

	return user
}

func strPtr(s string) *string {
	return &s
}
