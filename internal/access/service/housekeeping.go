package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/counterline/posgate/internal/access/store"
)

// HousekeepingService periodically deletes rows past their retention
// window: dead identity sessions, old session logs, and terminal super
// tokens. It is retention only and never flips a token to expired; that
// transition is derived lazily on every read.
type HousekeepingService struct {
	Store  store.Store
	Logger *slog.Logger

	Interval         time.Duration
	SessionLogMaxAge time.Duration
	SuperTokenMaxAge time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service. Zero durations
// fall back to sensible defaults (1h interval, 90d logs, 24h tokens).
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval, logMaxAge, tokenMaxAge time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if logMaxAge <= 0 {
		logMaxAge = 90 * 24 * time.Hour
	}
	if tokenMaxAge <= 0 {
		tokenMaxAge = 24 * time.Hour
	}

	return &HousekeepingService{
		Store:            st,
		Logger:           logger,
		Interval:         interval,
		SessionLogMaxAge: logMaxAge,
		SuperTokenMaxAge: tokenMaxAge,
		stopCh:           make(chan struct{}),
		doneCh:           make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop to shut it
// down gracefully.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// cleanup performs the actual deletions. Each one is independent;
// failures in one do not stop the others.
func (s *HousekeepingService) cleanup() {
	ctx := context.Background()
	now := time.Now()
	s.Logger.Info("starting housekeeping cleanup")

	if err := s.Store.Sessions().DeleteDeadSessions(ctx, now); err != nil {
		s.Logger.Error("failed to delete dead sessions", "error", err)
	} else {
		s.Logger.Debug("deleted dead sessions")
	}

	if err := s.Store.SessionLogs().PurgeSessionLogsBefore(ctx, now.Add(-s.SessionLogMaxAge)); err != nil {
		s.Logger.Error("failed to purge old session logs", "error", err)
	} else {
		s.Logger.Debug("purged old session logs")
	}

	if err := s.Store.SuperTokens().PurgeTerminalSuperTokensBefore(ctx, now.Add(-s.SuperTokenMaxAge)); err != nil {
		s.Logger.Error("failed to purge terminal super tokens", "error", err)
	} else {
		s.Logger.Debug("purged terminal super tokens")
	}

	s.Logger.Info("housekeeping cleanup completed")
}
