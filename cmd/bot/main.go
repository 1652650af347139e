package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pressly/goose/v3"
	"github.com/subosito/gotenv"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/childpsy/adaptation-bot/internal/bot"
	"github.com/childpsy/adaptation-bot/internal/config"
	"github.com/childpsy/adaptation-bot/internal/dialog"
	"github.com/childpsy/adaptation-bot/internal/domain/claims"
	"github.com/childpsy/adaptation-bot/internal/domain/consultations"
	"github.com/childpsy/adaptation-bot/internal/domain/users"
	"github.com/childpsy/adaptation-bot/internal/infra/db"
	httpx "github.com/childpsy/adaptation-bot/internal/infra/http"
	"github.com/childpsy/adaptation-bot/internal/infra/logger"
	"github.com/childpsy/adaptation-bot/internal/scheduler"
	"github.com/childpsy/adaptation-bot/internal/verify"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	_ = gotenv.Load()

	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		usersStore    users.Store
		statesStore   dialog.Store
		claimsStore   claims.Store
		consultsStore consultations.Store
	)
	switch cfg.Storage.Driver {
	case "memory":
		usersStore = users.NewMemory()
		statesStore = dialog.NewMemory()
		claimsStore = claims.NewMemory()
		consultsStore = consultations.NewMemory()
		log.Info("using in-memory storage")
	default:
		if err := runMigrations(cfg.Postgres.DSN); err != nil {
			log.Error("migrations failed", "err", err)
			return
		}
		log.Info("migrations applied")

		pool, err := db.Connect(ctx, cfg.Postgres.DSN)
		if err != nil {
			log.Error("db connect failed", "err", err)
			return
		}
		defer pool.Close()
		log.Info("db connected")

		usersStore = users.NewRepo(pool)
		statesStore = dialog.NewRepo(pool)
		claimsStore = claims.NewRepo(pool)
		consultsStore = consultations.NewRepo(pool)
	}

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Error("telegram auth failed", "err", err)
		return
	}
	log.Info("telegram authorized", "bot", api.Self.UserName)

	checker := verify.FromConfig(cfg.Verify.Mode, cfg.Verify.PassRate)
	b := bot.New(api, log, usersStore, statesStore, claimsStore, consultsStore,
		checker, cfg.Telegram.AdminChatID, cfg.Booking.MinProblemLen)

	ttl, err := time.ParseDuration(cfg.Booking.WizardTTL)
	if err != nil {
		log.Warn("bad booking.wizard_ttl, using 24h", "value", cfg.Booking.WizardTTL)
		ttl = 24 * time.Hour
	}
	sched, err := scheduler.New(log, statesStore, ttl)
	if err != nil {
		log.Error("scheduler init failed", "err", err)
		return
	}
	sched.Start()
	defer sched.Stop()

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled, b.StatsSnapshot)
	go func() {
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	go func() {
		if err := b.Run(ctx, cfg.Telegram.PollTimeout); err != nil {
			log.Error("bot stopped", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete", slog.String("env", cfg.App.Env))
}
