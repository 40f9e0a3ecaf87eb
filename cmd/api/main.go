package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"samakicash_backend/internal/analysis"
	"samakicash_backend/internal/analysis/domain"
	"samakicash_backend/internal/analysis/service"
	"samakicash_backend/internal/auth"
	"samakicash_backend/internal/catches"
	catchesrepo "samakicash_backend/internal/catches/repository"
	"samakicash_backend/internal/credit"
	"samakicash_backend/internal/email"
	"samakicash_backend/internal/events"
	apphttp "samakicash_backend/internal/http"
	"samakicash_backend/internal/http/router"
	"samakicash_backend/internal/media"
	"samakicash_backend/internal/notification"
	"samakicash_backend/internal/scheduler"
	"samakicash_backend/internal/users"
	"samakicash_backend/platform/config"
	"samakicash_backend/platform/db"
	"samakicash_backend/platform/logger"
	"samakicash_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// Voice message storage (MinIO)
	voiceStorage, err := media.NewVoiceStorage(ctx, cfg)
	if err != nil {
		log.Error("failed to initialize voice storage", "error", err)
		panic("failed to initialize voice storage: " + err.Error())
	}
	log.Info("voice storage initialized", "bucket", cfg.GetMinioBucketVoiceMessages())

	// Task queue client for deferred match alerts. Without Redis the
	// pipeline's notify stage becomes a no-op.
	notifier, closeQueue := initNotifier(cfg, log)
	if closeQueue != nil {
		defer closeQueue()
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	authModule := auth.NewModule(pool, cfg, eventBus, val)

	// Welcome mail rides the in-process event bus; match alerts go
	// through the queue and are delivered by the worker.
	notificationSvc := notification.NewService(authModule.Repository(), newSender(cfg, log), log)
	notificationSvc.SubscribeWelcome(eventBus)

	analysisModule := analysis.NewModule(pool, cfg, eventBus, val, log, voiceStorage, notifier)
	catchStore := catchesrepo.New(pool)
	catchesModule := catches.NewModule(catchStore)
	creditModule := credit.NewModule(catchStore, val)
	usersModule := users.NewModule(authModule.Repository())
	mediaModule := media.NewModule(voiceStorage)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			analysisModule,
			catchesModule,
			creditModule,
			usersModule,
			mediaModule,
		},
	}

	engine := router.New(app)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server error", "error", err)
		panic("server error: " + err.Error())
	}
}

// initNotifier returns the pipeline's match-alert notifier. The
// returned close function is nil when the queue is disabled.
func initNotifier(cfg config.SchedulerConfig, log *logger.Logger) (service.Notifier, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; match alerts disabled")
		return noopNotifier{}, nil
	}

	queueClient, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize task queue client", "error", err)
		return noopNotifier{}, nil
	}

	return notification.NewQueueNotifier(queueClient), func() {
		_ = queueClient.Close()
	}
}

func newSender(cfg *config.Config, log *logger.Logger) email.Sender {
	if !cfg.GetEmailEnabled() || cfg.GetSMTPHost() == "" {
		log.Warn("email delivery disabled; welcome mail will be dropped")
		return email.NoopSender{}
	}

	return email.NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	)
}

type noopNotifier struct{}

func (noopNotifier) NotifyMatches(ctx context.Context, userID string, matches []domain.BuyerMatch, price domain.PriceEstimate) error {
	return nil
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
