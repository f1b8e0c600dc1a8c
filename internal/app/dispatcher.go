package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/KasumiMercury/primind-reminder-alarm/internal/domain"
	"github.com/KasumiMercury/primind-reminder-alarm/internal/infra/push"
	"github.com/KasumiMercury/primind-reminder-alarm/internal/observability/logging"
	"github.com/KasumiMercury/primind-reminder-alarm/internal/observability/metrics"
)

const (
	deliveryPrimary  = "primary"
	deliveryFollowUp = "follow_up"

	fallbackDogName = "your dog"
)

type DispatcherConfig struct {
	// TTL is how long the gateway keeps an undelivered notification.
	TTL time.Duration
	// RatePerSec paces gateway requests.
	RatePerSec int
	// SendTimeout bounds one dispatch including storage lookups.
	SendTimeout time.Duration
}

func (c DispatcherConfig) withDefaults() DispatcherConfig {
	if c.TTL <= 0 {
		c.TTL = time.Hour
	}

	if c.RatePerSec <= 0 {
		c.RatePerSec = 20
	}

	if c.SendTimeout <= 0 {
		c.SendTimeout = 30 * time.Second
	}

	return c
}

type DispatcherParams struct {
	Families  domain.FamilyRepository
	Reminders domain.ReminderRepository
	Gateway   push.Gateway
	Clock     Clock
	Metrics   *metrics.AlarmMetrics
	Config    DispatcherConfig
}

type DeliveryReport struct {
	Recipients int
	Sent       int
	Failed     int
}

// Dispatcher turns fired alarms into push notifications for a household and
// owns the follow-up timers.
type Dispatcher struct {
	families  domain.FamilyRepository
	reminders domain.ReminderRepository
	gateway   push.Gateway
	limiter   *rate.Limiter
	clock     Clock
	metrics   *metrics.AlarmMetrics
	tracer    trace.Tracer
	cfg       DispatcherConfig

	followUps *followUpTable

	ctx    context.Context
	cancel context.CancelFunc

	lifecycle sync.RWMutex
	closed    bool
	inflight  sync.WaitGroup
}

func NewDispatcher(p DispatcherParams) *Dispatcher {
	clock := p.Clock
	if clock == nil {
		clock = NewSystemClock()
	}

	cfg := p.Config.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	return &Dispatcher{
		families:  p.Families,
		reminders: p.Reminders,
		gateway:   p.Gateway,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.RatePerSec),
		clock:     clock,
		metrics:   p.Metrics,
		tracer:    otel.Tracer(tracerName),
		cfg:       cfg,
		followUps: newFollowUpTable(),
		ctx:       logging.WithModule(ctx, logging.ModuleDispatcher),
		cancel:    cancel,
	}
}

// Dispatch sends the alarm of a timer fire in the background to every
// eligible member. A fire has no acting user, so nobody is excluded from the
// primary alert; members leave the follow-up through Acknowledge.
//
// The delivery is marked before Dispatch returns, while the scheduler still
// holds the reminder's lock, so a later CancelFollowUp always wins.
func (d *Dispatcher) Dispatch(familyID domain.FamilyID, reminderID domain.ReminderID, dueAt time.Time) {
	if !d.enter() {
		slog.WarnContext(d.ctx, "dispatcher stopped, dropping alarm",
			"reminder_id", reminderID.String(),
		)

		return
	}

	send := d.followUps.beginSend(reminderID)

	go func() {
		defer d.inflight.Done()
		defer d.followUps.endSend(reminderID, send)

		ctx, cancel := context.WithTimeout(d.ctx, d.cfg.SendTimeout)
		defer cancel()

		if _, err := d.send(ctx, familyID, reminderID, dueAt, nil, send); err != nil {
			slog.ErrorContext(ctx, "failed to dispatch alarm",
				"reminder_id", reminderID.String(),
				"family_id", familyID.String(),
				"error", err,
			)
		}
	}()
}

// Send delivers the alarm of reminderID to the eligible members of familyID,
// leaving out exclude when set, and arms the household follow-up if configured.
// Rejected tokens are logged and counted, never returned as an error.
func (d *Dispatcher) Send(
	ctx context.Context,
	familyID domain.FamilyID,
	reminderID domain.ReminderID,
	dueAt time.Time,
	exclude *domain.UserID,
) (DeliveryReport, error) {
	send := d.followUps.beginSend(reminderID)
	defer d.followUps.endSend(reminderID, send)

	return d.send(ctx, familyID, reminderID, dueAt, exclude, send)
}

func (d *Dispatcher) send(
	ctx context.Context,
	familyID domain.FamilyID,
	reminderID domain.ReminderID,
	dueAt time.Time,
	exclude *domain.UserID,
	send uint64,
) (DeliveryReport, error) {
	ctx, span := d.tracer.Start(ctx, "dispatcher.send", trace.WithAttributes(
		attribute.String("reminder.id", reminderID.String()),
		attribute.String("family.id", familyID.String()),
	))
	defer span.End()

	household, err := d.families.FindHousehold(ctx, familyID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())

		return DeliveryReport{}, fmt.Errorf("failed to resolve household: %w", err)
	}

	reminder, err := d.reminders.FindByID(ctx, reminderID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())

		return DeliveryReport{}, fmt.Errorf("failed to load reminder: %w", err)
	}

	alert := domain.ReminderAlert(d.dogName(ctx, reminder.DogID()), reminder)
	recipients := household.Recipients(exclude)

	report := d.deliver(ctx, deliveryPrimary, reminderID, recipients, alert)

	if settings := household.FollowUp(); settings.Active() && report.Recipients > 0 {
		d.scheduleFollowUp(ctx, familyID, reminderID, dueAt, settings.Delay, send)
	}

	span.SetAttributes(
		attribute.Int("notification.sent", report.Sent),
		attribute.Int("notification.failed", report.Failed),
	)

	return report, nil
}

func (d *Dispatcher) dogName(ctx context.Context, dogID domain.DogID) string {
	name, err := d.families.FindDogName(ctx, dogID)
	if err != nil || name == "" {
		if err != nil && !errors.Is(err, domain.ErrDogNotFound) {
			slog.WarnContext(ctx, "failed to resolve dog name",
				"dog_id", dogID.String(),
				"error", err,
			)
		}

		return fallbackDogName
	}

	return name
}

func (d *Dispatcher) deliver(
	ctx context.Context,
	kind string,
	reminderID domain.ReminderID,
	recipients []domain.Member,
	alert domain.Alert,
) DeliveryReport {
	report := DeliveryReport{Recipients: len(recipients)}
	if len(recipients) == 0 {
		slog.InfoContext(ctx, "no eligible recipients",
			"reminder_id", reminderID.String(),
			"kind", kind,
		)

		return report
	}

	owners := make(map[string]domain.UserID, len(recipients))
	tokens := make([]string, 0, len(recipients))

	for _, m := range recipients {
		if _, dup := owners[m.DeviceToken()]; dup {
			continue
		}

		owners[m.DeviceToken()] = m.UserID()
		tokens = append(tokens, m.DeviceToken())
	}

	for start := 0; start < len(tokens); start += push.MaxTokensPerRequest {
		end := min(start+push.MaxTokensPerRequest, len(tokens))
		batch := tokens[start:end]

		if err := d.limiter.Wait(ctx); err != nil {
			report.Failed += len(tokens) - start
			slog.WarnContext(ctx, "notification pacing aborted",
				"reminder_id", reminderID.String(),
				"remaining", len(tokens)-start,
				"error", err,
			)

			break
		}

		result, err := d.gateway.Send(ctx, push.Notification{
			Tokens:   batch,
			Title:    alert.Title(),
			Body:     alert.Body(),
			Category: string(alert.Category()),
			Data: map[string]string{
				"reminder_id": reminderID.String(),
				"kind":        kind,
			},
			TTL: d.cfg.TTL,
		})
		if err != nil {
			report.Failed += len(batch)
			slog.ErrorContext(ctx, "push gateway request failed",
				"reminder_id", reminderID.String(),
				"tokens", len(batch),
				"error", err,
			)

			continue
		}

		report.Sent += result.SuccessCount
		report.Failed += result.FailureCount

		for _, failed := range result.Failed() {
			slog.WarnContext(ctx, "push token rejected",
				"reminder_id", reminderID.String(),
				"user_id", owners[failed.Token].String(),
				"error", failed.Err,
			)
		}
	}

	d.metrics.RecordDelivery(ctx, kind, report.Sent, report.Failed)

	slog.InfoContext(ctx, "notification delivered",
		"reminder_id", reminderID.String(),
		"kind", kind,
		"recipients", report.Recipients,
		"sent", report.Sent,
		"failed", report.Failed,
	)

	return report
}

func (d *Dispatcher) enter() bool {
	d.lifecycle.RLock()
	defer d.lifecycle.RUnlock()

	if d.closed {
		return false
	}

	d.inflight.Add(1)

	return true
}

// Shutdown cancels pending follow-ups and waits for sends in progress.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.lifecycle.Lock()
	if d.closed {
		d.lifecycle.Unlock()

		return nil
	}
	d.closed = true
	d.lifecycle.Unlock()

	dropped := d.followUps.reset()

	done := make(chan struct{})
	go func() {
		d.inflight.Wait()
		close(done)
	}()

	defer d.cancel()

	select {
	case <-done:
		slog.Info("dispatcher stopped", "dropped_follow_ups", dropped)

		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
