// Package app assembles the account core with fx.
package app

import (
	"context"
	"log/slog"

	"habit/config"
	"habit/internal/domain/lifecycle"
	"habit/internal/domain/repository"
	"habit/internal/domain/service"
	"habit/internal/errors"
	"habit/internal/infra/auth"
	"habit/internal/infra/clock"
	"habit/internal/infra/cooldown"
	logs "habit/internal/infra/log"
	"habit/internal/infra/notification"
	"habit/internal/infra/persistence/memory"
	"habit/internal/infra/persistence/postgres"
	"habit/internal/usecase"
	"habit/internal/usecase/impl"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// Options returns every provider of the application graph.
func Options() fx.Option {
	return fx.Options(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
	)
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		clock.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newUserStore,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newPasswordHasher,
			newPasswordPolicy,
			newHashWorker,
			newCooldownLimiter,
			newNotifier,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewNotificationService,
			impl.NewCredentialService,
		),
		fx.Invoke(drainNotifications),
	)
}

type storeParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Clock  clock.Clock
	Logger *slog.Logger
}

// newUserStore opens the configured store. The postgres driver migrates the schema on start.
func newUserStore(params storeParams) (repository.UserStore, error) {
	switch params.Config.Store.Driver {
	case config.StoreDriverPostgres:
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return nil, err
		}

		migrator := postgres.NewMigrator(db, params.Logger)
		params.Append(fx.Hook{
			OnStart: migrator.Up,
		})

		return postgres.NewUserRepository(db, params.Config), nil
	default:
		params.Logger.Info("Using in-memory user store; accounts are lost on exit")

		return memory.NewUserStore(params.Clock), nil
	}
}

func newPasswordHasher(cfg *config.Config) (service.PasswordHasher, error) {
	return auth.NewPasswordHasher(cfg.Auth)
}

func newPasswordPolicy(cfg *config.Config) service.PasswordPolicy {
	return auth.NewPasswordPolicy(cfg.PasswordStrength)
}

func newHashWorker(lc fx.Lifecycle, cfg *config.Config, hasher service.PasswordHasher) service.HashWorker {
	worker := auth.NewHashWorker(hasher, cfg.Auth.HashWorkers, cfg.Auth.HashQueueSize)
	lc.Append(fx.StopHook(worker.Close))

	return worker
}

func newCooldownLimiter(lc fx.Lifecycle, cfg *config.Config, clk clock.Clock) service.CooldownLimiter {
	if cfg.Cooldown.Driver != config.CooldownDriverRedis {
		return cooldown.NewMemoryLimiter(clk)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "failed to ping Redis")
			}

			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return cooldown.NewRedisLimiter(client, cfg.Redis.Prefix)
}

func newNotifier(cfg *config.Config, logger *slog.Logger) service.Notifier {
	if cfg.Notification.SMTP.Host == "" {
		return notification.NewLogNotifier(logger)
	}

	return notification.NewSMTPNotifier(cfg.Notification.SMTP, cfg.Notification.From, logger)
}

// drainNotifications waits for queued emails before the graph stops.
func drainNotifications(lc fx.Lifecycle, notifications usecase.NotificationUsecase) {
	lc.Append(fx.StopHook(notifications.Wait))
}
