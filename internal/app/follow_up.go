package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/KasumiMercury/primind-reminder-alarm/internal/domain"
)

type followUp struct {
	familyID domain.FamilyID
	dueAt    time.Time
	fireAt   time.Time
	version  uint64
	timer    Timer
	// excluded holds members who acknowledged the alarm or left the household.
	excluded map[domain.UserID]struct{}
}

// followUpTable keeps at most one pending follow-up per reminder, separate
// from the scheduler's job table. sends marks primary deliveries still in
// flight; a follow-up may only be armed by the delivery holding the current
// mark, so an edit or cancel during delivery also stops the follow-up.
type followUpTable struct {
	mu      sync.Mutex
	entries map[domain.ReminderID]*followUp
	sends   map[domain.ReminderID]uint64
	version uint64
}

func newFollowUpTable() *followUpTable {
	return &followUpTable{
		entries: make(map[domain.ReminderID]*followUp),
		sends:   make(map[domain.ReminderID]uint64),
	}
}

func (t *followUpTable) beginSend(reminderID domain.ReminderID) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.version++
	t.sends[reminderID] = t.version

	return t.version
}

func (t *followUpTable) endSend(reminderID domain.ReminderID, send uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.sends[reminderID] == send {
		delete(t.sends, reminderID)
	}
}

func (t *followUpTable) reset() int {
	t.mu.Lock()
	entries := t.entries
	t.entries = make(map[domain.ReminderID]*followUp)
	t.sends = make(map[domain.ReminderID]uint64)
	t.mu.Unlock()

	for _, f := range entries {
		f.timer.Stop()
	}

	return len(entries)
}

func (d *Dispatcher) scheduleFollowUp(
	ctx context.Context,
	familyID domain.FamilyID,
	reminderID domain.ReminderID,
	dueAt time.Time,
	delay time.Duration,
	send uint64,
) {
	d.lifecycle.RLock()
	defer d.lifecycle.RUnlock()

	if d.closed {
		return
	}

	t := d.followUps

	t.mu.Lock()
	defer t.mu.Unlock()

	if current, ok := t.sends[reminderID]; !ok || current != send {
		slog.InfoContext(ctx, "follow-up not armed, reminder changed during delivery",
			"reminder_id", reminderID.String(),
		)

		return
	}

	if prev, ok := t.entries[reminderID]; ok {
		prev.timer.Stop()
	}

	t.version++
	version := t.version

	entry := &followUp{
		familyID: familyID,
		dueAt:    dueAt,
		fireAt:   d.clock.Now().Add(delay),
		version:  version,
		excluded: make(map[domain.UserID]struct{}),
	}
	entry.timer = d.clock.AfterFunc(delay, func() {
		d.fireFollowUp(reminderID, version)
	})

	t.entries[reminderID] = entry

	slog.DebugContext(ctx, "follow-up scheduled",
		"reminder_id", reminderID.String(),
		"fire_at", entry.fireAt,
	)
}

// Acknowledge keeps userID out of the pending follow-up of reminderID. It
// reports whether a follow-up was pending.
func (d *Dispatcher) Acknowledge(reminderID domain.ReminderID, userID domain.UserID) bool {
	t := d.followUps

	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[reminderID]
	if !ok {
		return false
	}

	entry.excluded[userID] = struct{}{}

	return true
}

// CancelFollowUp drops the pending follow-up of reminderID and keeps a
// delivery still in flight from arming one.
func (d *Dispatcher) CancelFollowUp(reminderID domain.ReminderID) bool {
	t := d.followUps

	t.mu.Lock()
	entry, ok := t.entries[reminderID]
	delete(t.entries, reminderID)
	_, sending := t.sends[reminderID]
	delete(t.sends, reminderID)
	t.mu.Unlock()

	if ok {
		entry.timer.Stop()
	}

	return ok || sending
}

// CancelFollowUpsForMember withdraws a member who left familyID from every
// pending follow-up of that household and returns how many were affected.
func (d *Dispatcher) CancelFollowUpsForMember(familyID domain.FamilyID, userID domain.UserID) int {
	t := d.followUps

	t.mu.Lock()
	defer t.mu.Unlock()

	affected := 0
	for _, entry := range t.entries {
		if !entry.familyID.Equals(familyID) {
			continue
		}

		entry.excluded[userID] = struct{}{}
		affected++
	}

	return affected
}

// PendingFollowUp returns the fire instant of the follow-up of reminderID.
func (d *Dispatcher) PendingFollowUp(reminderID domain.ReminderID) (time.Time, bool) {
	t := d.followUps

	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[reminderID]
	if !ok {
		return time.Time{}, false
	}

	return entry.fireAt, true
}

func (d *Dispatcher) takeFollowUp(reminderID domain.ReminderID, version uint64) (*followUp, bool) {
	t := d.followUps

	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[reminderID]
	if !ok || entry.version != version {
		return nil, false
	}

	delete(t.entries, reminderID)

	return entry, true
}

func (d *Dispatcher) fireFollowUp(reminderID domain.ReminderID, version uint64) {
	if !d.enter() {
		return
	}
	defer d.inflight.Done()

	entry, ok := d.takeFollowUp(reminderID, version)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(d.ctx, d.cfg.SendTimeout)
	defer cancel()

	ctx, span := d.tracer.Start(ctx, "dispatcher.follow_up", trace.WithAttributes(
		attribute.String("reminder.id", reminderID.String()),
	))
	defer span.End()

	reminder, err := d.reminders.FindByID(ctx, reminderID)
	if err != nil {
		slog.WarnContext(ctx, "skipping follow-up, reminder unavailable",
			"reminder_id", reminderID.String(),
			"error", err,
		)

		return
	}

	// a one time reminder is disabled by its own fire
	if reminder.IsDeleted() || (!reminder.IsEnabled() && reminder.Type() != domain.ReminderTypeOneTime) {
		slog.InfoContext(ctx, "skipping follow-up, reminder inactive",
			"reminder_id", reminderID.String(),
		)

		return
	}

	// members who left since the primary alert are no longer in the household
	household, err := d.families.FindHousehold(ctx, entry.familyID)
	if err != nil {
		slog.WarnContext(ctx, "skipping follow-up, household unavailable",
			"reminder_id", reminderID.String(),
			"family_id", entry.familyID.String(),
			"error", err,
		)

		return
	}

	candidates := household.Recipients(nil)
	recipients := make([]domain.Member, 0, len(candidates))

	for _, m := range candidates {
		if _, skip := entry.excluded[m.UserID()]; skip {
			continue
		}

		recipients = append(recipients, m)
	}

	if len(recipients) == 0 {
		slog.InfoContext(ctx, "follow-up not needed, everyone acknowledged",
			"reminder_id", reminderID.String(),
		)

		return
	}

	alert := domain.FollowUpAlert(d.dogName(ctx, reminder.DogID()), reminder)
	d.deliver(ctx, deliveryFollowUp, reminderID, recipients, alert)
}
