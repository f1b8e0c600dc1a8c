package app_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-reminder-alarm/internal/app"
	"github.com/KasumiMercury/primind-reminder-alarm/internal/domain"
	"github.com/KasumiMercury/primind-reminder-alarm/internal/testutil"
)

// monday is 2025-01-06T08:00:00Z.
var monday = time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)

func newFamilyID() domain.FamilyID {
	return domain.FamilyIDFromUUID(uuid.Must(uuid.NewV7()))
}

func newDogID() domain.DogID {
	return domain.DogIDFromUUID(uuid.Must(uuid.NewV7()))
}

func newUserID() domain.UserID {
	return domain.UserIDFromUUID(uuid.Must(uuid.NewV7()))
}

func countdownParams(basis time.Time, interval, elapsed time.Duration) domain.ReminderParams {
	return domain.ReminderParams{
		ID:             domain.NewReminderID(),
		DogID:          newDogID(),
		FamilyID:       newFamilyID(),
		Action:         domain.ActionFeed,
		Type:           domain.ReminderTypeCountdown,
		IsEnabled:      true,
		ExecutionBasis: basis,
		Countdown: domain.CountdownComponents{
			ExecutionInterval: interval,
			IntervalElapsed:   elapsed,
		},
	}
}

func weeklyParams(t *testing.T, basis time.Time, hour int, days ...domain.Weekday) domain.ReminderParams {
	t.Helper()

	weekdays, err := domain.NewWeekdays(days...)
	if err != nil {
		t.Fatalf("invalid weekdays: %v", err)
	}

	return domain.ReminderParams{
		ID:             domain.NewReminderID(),
		DogID:          newDogID(),
		FamilyID:       newFamilyID(),
		Action:         domain.ActionWalk,
		Type:           domain.ReminderTypeWeekly,
		IsEnabled:      true,
		ExecutionBasis: basis,
		Weekly:         domain.WeeklyComponents{Hour: hour, Weekdays: weekdays},
	}
}

func oneTimeParams(basis, fireDate time.Time) domain.ReminderParams {
	return domain.ReminderParams{
		ID:             domain.NewReminderID(),
		DogID:          newDogID(),
		FamilyID:       newFamilyID(),
		Action:         domain.ActionDoctor,
		Type:           domain.ReminderTypeOneTime,
		IsEnabled:      true,
		ExecutionBasis: basis,
		OneTime:        domain.OneTimeComponents{FireDate: fireDate},
	}
}

func paramsOf(r *domain.Reminder) domain.ReminderParams {
	return domain.ReminderParams{
		ID:               r.ID(),
		DogID:            r.DogID(),
		FamilyID:         r.FamilyID(),
		Action:           r.Action(),
		CustomActionName: r.CustomActionName(),
		Type:             r.Type(),
		IsEnabled:        r.IsEnabled(),
		IsDeleted:        r.IsDeleted(),
		ExecutionBasis:   r.ExecutionBasis(),
		ExecutionDate:    r.ExecutionDate(),
		Snooze:           r.Snooze(),
		Countdown:        r.Countdown(),
		Weekly:           r.Weekly(),
		Monthly:          r.Monthly(),
		OneTime:          r.OneTime(),
		UpdatedAt:        r.UpdatedAt(),
	}
}

// memoryReminders is an in-memory domain.ReminderRepository. Every read
// returns a fresh entity so callers never share state with the store.
type memoryReminders struct {
	mu      sync.Mutex
	items   map[domain.ReminderID]domain.ReminderParams
	updates int
}

func newMemoryReminders(params ...domain.ReminderParams) *memoryReminders {
	m := &memoryReminders{items: make(map[domain.ReminderID]domain.ReminderParams)}
	for _, p := range params {
		m.items[p.ID] = p
	}

	return m
}

func (m *memoryReminders) put(p domain.ReminderParams) *domain.Reminder {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[p.ID] = p

	return domain.Reconstitute(p)
}

func (m *memoryReminders) get(id domain.ReminderID) domain.ReminderParams {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.items[id]
}

func (m *memoryReminders) updateCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.updates
}

func (m *memoryReminders) FindByID(_ context.Context, id domain.ReminderID) (*domain.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.items[id]
	if !ok {
		return nil, domain.ErrReminderNotFound
	}

	return domain.Reconstitute(p), nil
}

func (m *memoryReminders) FindRestorable(_ context.Context, after domain.ReminderID, limit int) (domain.RestorePage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]domain.ReminderID, 0, len(m.items))
	for id, p := range m.items {
		if p.IsEnabled && !p.IsDeleted && id.String() > after.String() {
			ids = append(ids, id)
		}
	}

	sort.Slice(ids, func(i, k int) bool { return ids[i].String() < ids[k].String() })

	if len(ids) > limit {
		ids = ids[:limit]
	}

	page := domain.RestorePage{Scanned: len(ids)}
	for _, id := range ids {
		page.Reminders = append(page.Reminders, domain.Reconstitute(m.items[id]))
		page.Last = id
	}

	return page, nil
}

func (m *memoryReminders) UpdateExecution(_ context.Context, r *domain.Reminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[r.ID()] = paramsOf(r)
	m.updates++

	return nil
}

type dispatchCall struct {
	FamilyID   domain.FamilyID
	ReminderID domain.ReminderID
	DueAt      time.Time
}

type recordingNotifier struct {
	mu        sync.Mutex
	calls     []dispatchCall
	cancelled []domain.ReminderID
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{}
}

func (n *recordingNotifier) Dispatch(familyID domain.FamilyID, reminderID domain.ReminderID, dueAt time.Time) {
	n.mu.Lock()
	n.calls = append(n.calls, dispatchCall{FamilyID: familyID, ReminderID: reminderID, DueAt: dueAt})
	n.mu.Unlock()
}

func (n *recordingNotifier) CancelFollowUp(reminderID domain.ReminderID) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.cancelled = append(n.cancelled, reminderID)

	return false
}

func (n *recordingNotifier) Calls() []dispatchCall {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]dispatchCall(nil), n.calls...)
}

func (n *recordingNotifier) Cancelled() []domain.ReminderID {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]domain.ReminderID(nil), n.cancelled...)
}

// leakyClock hands out timers whose Stop never prevents the callback, so
// every armed callback eventually runs.
type leakyClock struct {
	*testutil.FakeClock
}

type leakyTimer struct{}

func (leakyTimer) Stop() bool { return false }

func (c leakyClock) AfterFunc(d time.Duration, f func()) app.Timer {
	c.FakeClock.AfterFunc(d, f)

	return leakyTimer{}
}

type schedulerOption func(*app.SchedulerParams)

func newTestScheduler(
	repo domain.ReminderRepository,
	clock app.Clock,
	notifier app.Notifier,
	opts ...schedulerOption,
) *app.Scheduler {
	p := app.SchedulerParams{
		Repository: repo,
		Calculator: domain.NewExecutionCalculator(time.UTC),
		Notifier:   notifier,
		Clock:      clock,
		Config: app.SchedulerConfig{
			RetryDelay:           time.Minute,
			RestoreBatchSize:     2,
			RestoreRetryInterval: 10 * time.Millisecond,
		},
	}

	for _, opt := range opts {
		opt(&p)
	}

	return app.NewScheduler(p)
}
