// Package scheduler крутит фоновые задачи бота.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/childpsy/adaptation-bot/internal/dialog"
)

type Scheduler struct {
	s   gocron.Scheduler
	log *slog.Logger
}

// New настраивает ежечасный сброс мастеров, брошенных дольше ttl назад.
// Пользователь, вернувшийся после сброса, просто начнёт с главного меню.
func New(log *slog.Logger, states dialog.Store, ttl time.Duration) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	_, err = s.NewJob(
		gocron.DurationJob(time.Hour),
		gocron.NewTask(func() {
			n, err := states.ResetStale(context.Background(), ttl)
			if err != nil {
				log.Error("reset stale dialogs failed", "err", err)
				return
			}
			if n > 0 {
				log.Info("stale dialogs reset", "count", n)
			}
		}),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, err
	}
	return &Scheduler{s: s, log: log}, nil
}

func (sc *Scheduler) Start() {
	sc.s.Start()
	sc.log.Info("scheduler started")
}

func (sc *Scheduler) Stop() {
	if err := sc.s.Shutdown(); err != nil {
		sc.log.Error("scheduler shutdown failed", "err", err)
	}
}
