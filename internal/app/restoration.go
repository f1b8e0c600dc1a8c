package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-reminder-alarm/internal/domain"
	"github.com/KasumiMercury/primind-reminder-alarm/internal/observability/logging"
)

// RestorationRoutine rebuilds the job table from durable storage. Stored
// execution dates are ignored; every reminder is calculated again.
type RestorationRoutine struct {
	repo          domain.ReminderRepository
	scheduler     *Scheduler
	batchSize     int
	retryInterval time.Duration
}

// Run retries until a full pass over storage succeeds or ctx ends.
func (r *RestorationRoutine) Run(ctx context.Context) (int, error) {
	ctx = logging.WithModule(ctx, logging.ModuleRestoration)

	for attempt := 1; ; attempt++ {
		started := time.Now()

		scheduled, err := r.restore(ctx)
		if err == nil {
			slog.InfoContext(ctx, "restoration completed",
				"scheduled", scheduled,
				"attempt", attempt,
				"duration", time.Since(started),
			)

			return scheduled, nil
		}

		if ctx.Err() != nil {
			return 0, fmt.Errorf("restoration aborted: %w", ctx.Err())
		}

		slog.WarnContext(ctx, "restoration failed, retrying",
			"attempt", attempt,
			"retry_in", r.retryInterval,
			"error", err,
		)

		wait := time.NewTimer(r.retryInterval)

		select {
		case <-ctx.Done():
			wait.Stop()

			return 0, fmt.Errorf("restoration aborted: %w", ctx.Err())
		case <-wait.C:
		}
	}
}

func (r *RestorationRoutine) restore(ctx context.Context) (int, error) {
	if dropped := r.scheduler.jobs.reset(); dropped > 0 {
		slog.InfoContext(ctx, "discarded in-memory jobs before restoration", "dropped", dropped)
	}

	var (
		after     domain.ReminderID
		scheduled int
		seen      int
	)

	for {
		page, err := r.repo.FindRestorable(ctx, after, r.batchSize)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInternalError, err)
		}

		for _, reminder := range page.Reminders {
			if _, ok := r.scheduler.Create(ctx, reminder); ok {
				scheduled++
			}
		}

		seen += page.Scanned

		if page.Scanned < r.batchSize {
			slog.DebugContext(ctx, "restoration scanned reminders",
				"seen", seen,
				"scheduled", scheduled,
			)

			return scheduled, nil
		}

		after = page.Last
	}
}
