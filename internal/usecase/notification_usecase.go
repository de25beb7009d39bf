package usecase

import (
	"context"
	"time"

	"habit/internal/domain/entity"
)

// NotifyStatus is the immediate outcome of a notification request.
type NotifyStatus int

const (
	// NotifyQueued means the message was handed to a background sender.
	NotifyQueued NotifyStatus = iota
	// NotifyCoolingDown means a message of the same kind went out recently; nothing was sent.
	NotifyCoolingDown
	// NotifySkipped means the account has no email address on record.
	NotifySkipped
)

func (s NotifyStatus) String() string {
	switch s {
	case NotifyQueued:
		return "queued"
	case NotifyCoolingDown:
		return "cooling_down"
	case NotifySkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// NotifyResult reports what happened to a notification request.
type NotifyResult struct {
	Status     NotifyStatus
	RetryAfter time.Duration // Set when Status is NotifyCoolingDown.
}

// NotificationUsecase sends account emails, limited to one per kind and account within a cooldown window.
type NotificationUsecase interface {
	// SendProfileUpdateConfirmation tells the account owner that their profile changed.
	SendProfileUpdateConfirmation(ctx context.Context, user entity.User) (NotifyResult, error)

	// SendTestEmail sends a message listing the profile so the owner can check delivery.
	SendTestEmail(ctx context.Context, user entity.User) (NotifyResult, error)

	// Wait blocks until every queued message has been attempted.
	Wait()
}
