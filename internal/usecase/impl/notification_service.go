package impl

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"habit/config"
	deliverycontext "habit/internal/delivery/context"
	"habit/internal/domain/entity"
	"habit/internal/domain/service"
	"habit/internal/errors"
	"habit/internal/usecase"
	"habit/internal/util"

	"go.uber.org/fx"
)

// DefaultNotificationCooldown is the minimum gap between two emails of the same kind to one account.
const DefaultNotificationCooldown = 60 * time.Second

const (
	kindProfileUpdate = "profile_update"
	kindTestEmail     = "test_email"
)

const profileUpdateSubject = "Profile Updated - Habit System"

const profileUpdateBody = `Dear %s,

Your profile has been successfully updated in Habit System.

Updated Information:
- Name: %s %s
- Email: %s

If you did not make these changes, please contact support immediately.

Thank you,
Habit System Team
`

const testEmailSubject = "Test Email from Habit System"

const testEmailBody = `Hello %s,

This is a test email sent from your Habit System profile.

Your Profile Information:
- Username: %s
- Name: %s %s
- Email: %s

If you received this email, your email settings are working correctly!

Thank you for using Habit System.

Best regards,
Habit System Team
`

// notificationService implements the NotificationUsecase interface.
type notificationService struct {
	notifier service.Notifier
	limiter  service.CooldownLimiter
	cooldown time.Duration
	logger   *slog.Logger

	wg sync.WaitGroup
}

// NotificationServiceParams holds dependencies for NotificationService, injected by Fx.
type NotificationServiceParams struct {
	fx.In

	Notifier service.Notifier
	Limiter  service.CooldownLimiter
	Config   *config.Config
	Logger   *slog.Logger
}

// NewNotificationService is the constructor for notificationService.
func NewNotificationService(params NotificationServiceParams) usecase.NotificationUsecase {
	cooldown := DefaultNotificationCooldown
	if params.Config != nil && params.Config.Notification != nil && params.Config.Notification.Cooldown > 0 {
		cooldown = params.Config.Notification.Cooldown
	}

	return &notificationService{
		notifier: params.Notifier,
		limiter:  params.Limiter,
		cooldown: cooldown,
		logger:   params.Logger,
	}
}

func (srv *notificationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *notificationService) SendProfileUpdateConfirmation(ctx context.Context, user entity.User) (usecase.NotifyResult, error) {
	body := fmt.Sprintf(profileUpdateBody, user.FirstName, user.FirstName, user.LastName, user.Email)

	return srv.enqueue(ctx, kindProfileUpdate, user, profileUpdateSubject, body)
}

func (srv *notificationService) SendTestEmail(ctx context.Context, user entity.User) (usecase.NotifyResult, error) {
	body := fmt.Sprintf(testEmailBody, user.FirstName, user.Username, user.FirstName, user.LastName, user.Email)

	return srv.enqueue(ctx, kindTestEmail, user, testEmailSubject, body)
}

// Wait blocks until every queued message has been attempted.
func (srv *notificationService) Wait() {
	srv.wg.Wait()
}

// enqueue checks the cooldown for kind and account, then sends on a background goroutine.
// The user value is already a snapshot, so later profile edits do not leak into the message.
func (srv *notificationService) enqueue(ctx context.Context, kind string, user entity.User, subject, body string) (usecase.NotifyResult, error) {
	if user.Email == "" {
		srv.log(ctx).Debug("Skipping email: no address on record", slog.String("kind", kind), slog.String("username", user.Username))

		return usecase.NotifyResult{Status: usecase.NotifySkipped}, nil
	}

	ok, retryAfter, err := srv.limiter.Acquire(ctx, kind+":"+user.Username, srv.cooldown)
	if err != nil {
		return usecase.NotifyResult{}, errors.Wrap(err, "failed to check email cooldown")
	}
	if !ok {
		srv.log(ctx).Info("Email cooling down",
			slog.String("kind", kind),
			slog.String("username", user.Username),
			slog.String("retryAfter", util.FormatDuration(retryAfter)),
		)

		return usecase.NotifyResult{Status: usecase.NotifyCoolingDown, RetryAfter: retryAfter}, nil
	}

	sendCtx := context.WithoutCancel(ctx)
	to := user.Email

	srv.wg.Add(1)
	go func() {
		defer srv.wg.Done()

		if srv.notifier.Send(sendCtx, to, subject, body) {
			srv.log(sendCtx).Info("Email sent", slog.String("kind", kind), slog.String("to", util.MaskEmail(to)))

			return
		}
		srv.log(sendCtx).Warn("Email delivery failed", slog.String("kind", kind), slog.String("to", util.MaskEmail(to)))
	}()

	return usecase.NotifyResult{Status: usecase.NotifyQueued}, nil
}
