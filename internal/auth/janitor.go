package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-co-op/gocron/v2"
)

// PurgeExpiredRevocations deletes revocations of tokens that have expired.
// Those tokens fail validation on their own.
func (s *Service) PurgeExpiredRevocations(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM revoked_tokens WHERE expires_at <= ?", time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to purge revoked tokens: %w", err)
	}
	return res.RowsAffected()
}

// StartJanitor schedules PurgeExpiredRevocations every interval. The caller
// owns the returned scheduler and must shut it down.
func (s *Service) StartJanitor(interval time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			n, err := s.PurgeExpiredRevocations(ctx)
			if err != nil {
				log.Error("Revocation purge failed", "error", err)
				return
			}
			if n > 0 {
				log.Info("Purged expired revocations", "count", n)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		sched.Shutdown()
		return nil, fmt.Errorf("failed to schedule revocation purge: %w", err)
	}

	sched.Start()
	log.Info("Started revocation janitor", "interval", interval)
	return sched, nil
}
