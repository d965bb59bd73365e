package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "club-recruitment/internal/adapter/http"
	"club-recruitment/internal/adapter/memory"
	natsadapter "club-recruitment/internal/adapter/nats"
	"club-recruitment/internal/adapter/postgres"
	"club-recruitment/internal/adapter/usecase"
	"club-recruitment/internal/config"
	"club-recruitment/internal/config/configs"
	"club-recruitment/internal/core/domain"
	"club-recruitment/internal/core/port"
	"club-recruitment/internal/db"
)

// storage bundles the repositories selected by configuration.
type storage struct {
	campaigns    port.CampaignRepository
	applications port.ApplicationRepository
	memberships  port.MembershipStore
	clubs        port.ClubDirectory
	close        func()
}

// main is the entry point of the recruitment service. It loads
// configuration, prepares storage and event publishing, then serves HTTP
// until SIGINT or SIGTERM.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(exitCode)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		return
	}
	logger := cfg.Log.NewLogger(os.Stdout).With(slog.String("env", cfg.Env))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("storage error", slog.Any("error", err))
		return
	}
	defer store.close()

	if cfg.Psql.Seed {
		if err = db.Seed(ctx, store.campaigns, store.memberships, time.Now(), logger); err != nil {
			logger.Error("seed error", slog.Any("error", err))
			return
		}
	}

	var notifier port.Notifier = natsadapter.NewLogNotifier(logger)
	if cfg.NATS.Enabled() {
		nc, err := natsadapter.Connect(cfg.NATS.URL, logger)
		if err != nil {
			logger.Error("nats connection error", slog.Any("error", err))
			return
		}
		defer nc.Drain()
		notifier = natsadapter.NewNotifier(nc, cfg.NATS.SubjectPrefix, logger)
	}

	provisioner := usecase.NewMembershipProvisioner(store.memberships, logger)
	svc := usecase.NewRecruitmentUseCase(
		store.campaigns, store.applications, provisioner, store.clubs, notifier, logger,
		usecase.WithPaging(cfg.Recruitment.DefaultPageSize, cfg.Recruitment.MaxPageSize),
		usecase.WithDefaultRole(domain.Role(cfg.Recruitment.DefaultRole)),
	)

	handler := httpadapter.NewHandler(svc, store.clubs, logger)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)), slog.String("storage", cfg.Storage.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()
	exitCode = 0

	shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer stop()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		exitCode = 1
	} else {
		logger.Info("server gracefully stopped")
	}
}

func openStorage(ctx context.Context, cfg config.Config, logger *slog.Logger) (storage, error) {
	if cfg.Storage.Driver == configs.StorageMemory {
		logger.Warn("using in-memory storage, data is lost on restart")
		s := memory.NewStore()
		return storage{
			campaigns:    s.Campaigns(),
			applications: s.Applications(),
			memberships:  s.Memberships(),
			clubs:        s.Clubs(),
			close:        func() {},
		}, nil
	}

	if cfg.Psql.RunMigrations {
		if err := db.Migrate(cfg.Psql.Addr.String()); err != nil {
			return storage{}, fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migrations applied successfully")
	}
	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		return storage{}, fmt.Errorf("database connection: %w", err)
	}
	members := postgres.NewMembershipRepository(pool)
	return storage{
		campaigns:    postgres.NewCampaignRepository(pool),
		applications: postgres.NewApplicationRepository(pool),
		memberships:  members,
		clubs:        members,
		close:        pool.Close,
	}, nil
}
