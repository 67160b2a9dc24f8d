package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/boardify/internal/boardify/store"
)

// HousekeepingService periodically removes expired sessions and invites.
// Expired rows are already ignored by every lookup; this only bounds growth.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	Now      func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping worker. A non-positive
// interval defaults to one hour.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the worker in the background. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", slog.Duration("interval", s.Interval))
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

	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// CleanupReport counts the rows removed by one Cleanup pass.
type CleanupReport struct {
	Sessions int64
	Invites  int64
}

// Cleanup deletes expired records once. Each deletion is independent; a
// failure in one does not stop the other.
func (s *HousekeepingService) Cleanup(ctx context.Context) CleanupReport {
	now := nowFrom(s.Now)
	var report CleanupReport

	n, err := s.Store.Sessions().DeleteExpiredSessions(ctx, now)
	if err != nil {
		s.Logger.Error("failed to delete expired sessions", slog.Any("error", err))
	} else {
		report.Sessions = n
	}

	n, err = s.Store.Invites().DeleteExpiredInvites(ctx, now)
	if err != nil {
		s.Logger.Error("failed to delete expired invites", slog.Any("error", err))
	} else {
		report.Invites = n
	}

	s.Logger.Info("housekeeping cleanup completed",
		slog.Int64("sessions", report.Sessions),
		slog.Int64("invites", report.Invites),
	)
	return report
}
