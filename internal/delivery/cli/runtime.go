package cli

import (
	"context"
	"log/slog"

	"habit/config"
	"habit/internal/app"
	"habit/internal/domain/lifecycle"
	"habit/internal/errors"
	"habit/internal/usecase"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// deps are the services a command works with.
type deps struct {
	fx.In

	Credentials   usecase.CredentialUsecase
	Notifications usecase.NotificationUsecase
	Config        *config.Config
	Logger        *slog.Logger
}

// runWithApp starts the application graph, hands its services to run and stops the graph afterwards.
func runWithApp(ctx context.Context, run func(ctx context.Context, d deps) error) error {
	var captured deps

	application := fx.New(
		app.Options(),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			l := &fxevent.SlogLogger{Logger: logger}
			l.UseLogLevel(slog.LevelDebug)

			return l
		}),
		fx.Invoke(func(d deps) {
			captured = d
		}),
	)
	if err := application.Err(); err != nil {
		return errors.Wrap(err, "failed to build application")
	}

	startCtx, cancelStart := context.WithTimeout(ctx, 2*lifecycle.DefaultTimeout)
	defer cancelStart()
	if err := application.Start(startCtx); err != nil {
		return errors.Wrap(err, "failed to start application")
	}

	runErr := run(ctx, captured)

	stopCtx, cancelStop := context.WithTimeout(context.WithoutCancel(ctx), lifecycle.DefaultTimeout)
	defer cancelStop()
	if err := application.Stop(stopCtx); err != nil && runErr == nil {
		return errors.Wrap(err, "failed to stop application")
	}

	return runErr
}
