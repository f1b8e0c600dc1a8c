package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/KasumiMercury/primind-reminder-alarm/internal/domain"
	"github.com/KasumiMercury/primind-reminder-alarm/internal/infra/pubsub"
	"github.com/KasumiMercury/primind-reminder-alarm/internal/observability/logging"
	"github.com/KasumiMercury/primind-reminder-alarm/internal/observability/metrics"
)

const tracerName = "github.com/KasumiMercury/primind-reminder-alarm/internal/app"

// Notifier receives fired alarms. Dispatch must not block on delivery.
type Notifier interface {
	Dispatch(familyID domain.FamilyID, reminderID domain.ReminderID, dueAt time.Time)
	CancelFollowUp(reminderID domain.ReminderID) bool
}

type SchedulerConfig struct {
	// FireTimeout bounds the storage work done when a job fires.
	FireTimeout time.Duration
	// RetryDelay re-arms a job whose reminder could not be loaded at fire time.
	RetryDelay           time.Duration
	RestoreBatchSize     int
	RestoreRetryInterval time.Duration
}

func (c SchedulerConfig) withDefaults() SchedulerConfig {
	if c.FireTimeout <= 0 {
		c.FireTimeout = 10 * time.Second
	}

	if c.RetryDelay <= 0 {
		c.RetryDelay = 30 * time.Second
	}

	if c.RestoreBatchSize <= 0 {
		c.RestoreBatchSize = 500
	}

	if c.RestoreRetryInterval <= 0 {
		c.RestoreRetryInterval = 5 * time.Second
	}

	return c
}

type SchedulerParams struct {
	Repository domain.ReminderRepository
	Calculator *domain.ExecutionCalculator
	Notifier   Notifier
	// Publisher is optional; fired events are not emitted when nil.
	Publisher pubsub.Publisher
	// Clock defaults to the system clock.
	Clock   Clock
	Metrics *metrics.AlarmMetrics
	Config  SchedulerConfig
}

// Scheduler owns the job table. Each job fires on its own timer; firing loads
// the reminder again, hands it to the notifier, persists the post fire state
// and arms the following occurrence.
type Scheduler struct {
	jobs      *JobTable
	repo      domain.ReminderRepository
	calc      *domain.ExecutionCalculator
	notifier  Notifier
	publisher pubsub.Publisher
	clock     Clock
	metrics   *metrics.AlarmMetrics
	tracer    trace.Tracer
	cfg       SchedulerConfig

	restoration *RestorationRoutine

	ctx    context.Context
	cancel context.CancelFunc

	lifecycle sync.RWMutex
	closed    bool
	inflight  sync.WaitGroup
}

func NewScheduler(p SchedulerParams) *Scheduler {
	clock := p.Clock
	if clock == nil {
		clock = NewSystemClock()
	}

	calc := p.Calculator
	if calc == nil {
		calc = domain.NewExecutionCalculator(time.UTC)
	}

	cfg := p.Config.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	s := &Scheduler{
		jobs:      NewJobTable(),
		repo:      p.Repository,
		calc:      calc,
		notifier:  p.Notifier,
		publisher: p.Publisher,
		clock:     clock,
		metrics:   p.Metrics,
		tracer:    otel.Tracer(tracerName),
		cfg:       cfg,
		ctx:       logging.WithModule(ctx, logging.ModuleScheduler),
		cancel:    cancel,
	}

	s.restoration = &RestorationRoutine{
		repo:          p.Repository,
		scheduler:     s,
		batchSize:     cfg.RestoreBatchSize,
		retryInterval: cfg.RestoreRetryInterval,
	}

	if err := s.metrics.ObservePending(s.jobs.Len); err != nil {
		slog.Warn("failed to register pending jobs gauge", "error", err)
	}

	return s
}

// Init rebuilds the job table from storage. It only returns an error when ctx
// ends before storage could be read.
func (s *Scheduler) Init(ctx context.Context) (int, error) {
	return s.restoration.Run(ctx)
}

// Create arms a job for the next occurrence of r, replacing any job already
// pending for it. The second result is false when r has no next occurrence.
func (s *Scheduler) Create(ctx context.Context, r *domain.Reminder) (time.Time, bool) {
	unlock := s.jobs.lock(r.ID())
	defer unlock()

	return s.schedule(ctx, r)
}

// Upsert drops whatever is pending for r, including a follow-up, and then
// behaves as Create.
func (s *Scheduler) Upsert(ctx context.Context, r *domain.Reminder) (time.Time, bool) {
	unlock := s.jobs.lock(r.ID())
	defer unlock()

	s.notifier.CancelFollowUp(r.ID())
	s.jobs.remove(r.ID())

	return s.schedule(ctx, r)
}

// Cancel drops the pending job and follow-up of id. It is safe to call for
// reminders that were never scheduled.
func (s *Scheduler) Cancel(ctx context.Context, id domain.ReminderID) bool {
	unlock := s.jobs.lock(id)
	defer unlock()

	followUp := s.notifier.CancelFollowUp(id)
	removed := s.jobs.remove(id)

	slog.DebugContext(ctx, "reminder schedule cancelled",
		"reminder_id", id.String(),
		"job_removed", removed,
		"follow_up_removed", followUp,
	)

	return removed
}

func (s *Scheduler) Snapshot() []JobSnapshot {
	return s.jobs.Snapshot()
}

func (s *Scheduler) Pending(id domain.ReminderID) (JobSnapshot, bool) {
	return s.jobs.Get(id)
}

func (s *Scheduler) Len() int {
	return s.jobs.Len()
}

// Closed reports whether Shutdown was called.
func (s *Scheduler) Closed() bool {
	s.lifecycle.RLock()
	defer s.lifecycle.RUnlock()

	return s.closed
}

// Shutdown stops every pending timer and waits for fires already running.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	s.lifecycle.Lock()
	if s.closed {
		s.lifecycle.Unlock()

		return nil
	}
	s.closed = true
	s.lifecycle.Unlock()

	dropped := s.jobs.reset()

	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()

	defer s.cancel()

	select {
	case <-done:
		slog.Info("scheduler stopped", "dropped_jobs", dropped)

		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// schedule must be called with the lock of r held.
func (s *Scheduler) schedule(ctx context.Context, r *domain.Reminder) (time.Time, bool) {
	next, ok := s.calc.NextFireInstant(r, r.ExecutionBasis())
	if !ok {
		slog.DebugContext(ctx, "reminder has no next occurrence",
			"reminder_id", r.ID().String(),
			"type", string(r.Type()),
			"enabled", r.IsEnabled(),
		)

		return time.Time{}, false
	}

	if !s.arm(r.ID(), next) {
		return time.Time{}, false
	}

	slog.DebugContext(ctx, "reminder scheduled",
		"reminder_id", r.ID().String(),
		"fire_at", next,
	)

	return next, true
}

// arm registers a timer for id. A fire instant already in the past fires on
// the next timer tick, never synchronously.
func (s *Scheduler) arm(id domain.ReminderID, fireAt time.Time) bool {
	s.lifecycle.RLock()
	defer s.lifecycle.RUnlock()

	if s.closed {
		return false
	}

	version := s.jobs.nextVersion()

	delay := fireAt.Sub(s.clock.Now())
	if delay < 0 {
		delay = 0
	}

	timer := s.clock.AfterFunc(delay, func() {
		s.onFire(id, version)
	})

	s.jobs.put(id, &job{version: version, fireAt: fireAt, timer: timer})

	return true
}

func (s *Scheduler) enter() bool {
	s.lifecycle.RLock()
	defer s.lifecycle.RUnlock()

	if s.closed {
		return false
	}

	s.inflight.Add(1)

	return true
}

func (s *Scheduler) onFire(id domain.ReminderID, version uint64) {
	if !s.enter() {
		return
	}
	defer s.inflight.Done()

	unlock := s.jobs.lock(id)
	defer unlock()

	if !s.jobs.claim(id, version) {
		slog.DebugContext(s.ctx, "discarding stale timer",
			"reminder_id", id.String(),
			"version", version,
		)

		return
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.FireTimeout)
	defer cancel()

	ctx, span := s.tracer.Start(ctx, "scheduler.fire",
		trace.WithAttributes(attribute.String("reminder.id", id.String())),
	)
	defer span.End()

	if err := s.fire(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// fire runs with the lock of id held and the job already claimed.
func (s *Scheduler) fire(ctx context.Context, id domain.ReminderID) error {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrReminderNotFound) {
			slog.InfoContext(ctx, "reminder no longer exists, dropping job",
				"reminder_id", id.String(),
			)

			return nil
		}

		retryAt := s.clock.Now().Add(s.cfg.RetryDelay)
		slog.ErrorContext(ctx, "failed to load reminder at fire time",
			"reminder_id", id.String(),
			"retry_at", retryAt,
			"error", err,
		)
		s.arm(id, retryAt)

		return err
	}

	if !r.IsActive() {
		slog.InfoContext(ctx, "reminder inactive, dropping job",
			"reminder_id", id.String(),
			"enabled", r.IsEnabled(),
			"deleted", r.IsDeleted(),
		)

		return nil
	}

	now := s.clock.Now()

	due, ok := s.calc.NextFireInstant(r, r.ExecutionBasis())
	if !ok {
		slog.InfoContext(ctx, "reminder has no occurrence left, dropping job",
			"reminder_id", id.String(),
		)

		return nil
	}

	if due.After(now) {
		slog.DebugContext(ctx, "reminder changed since scheduling, rearming",
			"reminder_id", id.String(),
			"fire_at", due,
		)
		s.arm(id, due)

		return nil
	}

	s.notifier.Dispatch(r.FamilyID(), r.ID(), due)
	s.metrics.RecordFired(ctx, string(r.Type()))

	r.MarkFired(now, due)

	next, hasNext := s.calc.NextFireInstant(r, r.ExecutionBasis())
	if hasNext {
		r.SetExecutionDate(&next)
	}

	if err := s.repo.UpdateExecution(ctx, r); err != nil {
		slog.ErrorContext(ctx, "failed to persist fired reminder state",
			"reminder_id", id.String(),
			"error", err,
		)
	}

	s.publishFired(ctx, r, due, now)

	if hasNext {
		s.arm(id, next)
	}

	slog.InfoContext(ctx, "reminder fired",
		"reminder_id", id.String(),
		"family_id", r.FamilyID().String(),
		"type", string(r.Type()),
		"due_at", due,
		"next_fire_at", r.ExecutionDate(),
	)

	return nil
}

func (s *Scheduler) publishFired(ctx context.Context, r *domain.Reminder, due, firedAt time.Time) {
	if s.publisher == nil {
		return
	}

	event := pubsub.ReminderFiredEvent{
		ReminderID:   r.ID().String(),
		FamilyID:     r.FamilyID().String(),
		DogID:        r.DogID().String(),
		ReminderType: string(r.Type()),
		DueAt:        due,
		FiredAt:      firedAt,
		NextFireAt:   r.ExecutionDate(),
	}

	if err := s.publisher.PublishReminderFired(ctx, event); err != nil {
		slog.ErrorContext(ctx, "failed to publish reminder fired event",
			"reminder_id", event.ReminderID,
			"error", err.Error(),
		)
	}
}
