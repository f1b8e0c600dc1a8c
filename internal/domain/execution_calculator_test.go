package domain_test

import (
	"math/rand"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-reminder-alarm/internal/domain"
)

func mustWeekdays(t *testing.T, days ...domain.Weekday) domain.Weekdays {
	t.Helper()

	w, err := domain.NewWeekdays(days...)
	require.NoError(t, err)

	return w
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func newReminder(p domain.ReminderParams) *domain.Reminder {
	p.IsEnabled = true
	if p.Action == "" {
		p.Action = domain.ActionWalk
	}

	return domain.Reconstitute(p)
}

func weeklyReminder(basis time.Time, w domain.WeeklyComponents) *domain.Reminder {
	return newReminder(domain.ReminderParams{
		Type:           domain.ReminderTypeWeekly,
		ExecutionBasis: basis,
		Weekly:         w,
	})
}

func monthlyReminder(basis time.Time, m domain.MonthlyComponents) *domain.Reminder {
	return newReminder(domain.ReminderParams{
		Type:           domain.ReminderTypeMonthly,
		ExecutionBasis: basis,
		Monthly:        m,
	})
}

func TestNextFireInstantWeekly(t *testing.T) {
	calc := domain.NewExecutionCalculator(time.UTC)
	mwf := mustWeekdays(t, domain.Monday, domain.Wednesday, domain.Friday)

	tests := []struct {
		name      string
		reference time.Time
		weekly    domain.WeeklyComponents
		expected  time.Time
	}{
		{
			name:      "thursday morning moves to friday",
			reference: time.Date(2025, 1, 16, 10, 0, 0, 0, time.UTC),
			weekly:    domain.WeeklyComponents{Hour: 9, Minute: 0, Weekdays: mwf},
			expected:  time.Date(2025, 1, 17, 9, 0, 0, 0, time.UTC),
		},
		{
			name:      "reference exactly on a slot keeps that slot",
			reference: time.Date(2025, 1, 17, 9, 0, 0, 0, time.UTC),
			weekly:    domain.WeeklyComponents{Hour: 9, Minute: 0, Weekdays: mwf},
			expected:  time.Date(2025, 1, 17, 9, 0, 0, 0, time.UTC),
		},
		{
			name:      "one second after a slot moves to the next slot",
			reference: time.Date(2025, 1, 17, 9, 0, 1, 0, time.UTC),
			weekly:    domain.WeeklyComponents{Hour: 9, Minute: 0, Weekdays: mwf},
			expected:  time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC),
		},
		{
			name:      "single weekday already passed today wraps a full week",
			reference: time.Date(2025, 1, 16, 10, 0, 0, 0, time.UTC),
			weekly:    domain.WeeklyComponents{Hour: 9, Minute: 30, Weekdays: mustWeekdays(t, domain.Thursday)},
			expected:  time.Date(2025, 1, 23, 9, 30, 0, 0, time.UTC),
		},
		{
			name:      "later slot on the same day",
			reference: time.Date(2025, 1, 16, 10, 0, 0, 0, time.UTC),
			weekly:    domain.WeeklyComponents{Hour: 18, Minute: 45, Weekdays: mustWeekdays(t, domain.Thursday)},
			expected:  time.Date(2025, 1, 16, 18, 45, 0, 0, time.UTC),
		},
		{
			name:      "skip suppresses the next occurrence",
			reference: time.Date(2025, 1, 16, 10, 0, 0, 0, time.UTC),
			weekly: domain.WeeklyComponents{
				Hour: 9, Minute: 0, Weekdays: mwf,
				IsSkipping: true, SkipUntilDate: timePtr(time.Date(2025, 1, 17, 9, 0, 0, 0, time.UTC)),
			},
			expected: time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC),
		},
		{
			name:      "elapsed skip date is ignored",
			reference: time.Date(2025, 1, 16, 10, 0, 0, 0, time.UTC),
			weekly: domain.WeeklyComponents{
				Hour: 9, Minute: 0, Weekdays: mwf,
				IsSkipping: true, SkipUntilDate: timePtr(time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)),
			},
			expected: time.Date(2025, 1, 17, 9, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := weeklyReminder(tt.reference, tt.weekly)

			next, ok := calc.NextFireInstant(r, tt.reference)

			require.True(t, ok)
			assert.True(t, tt.expected.Equal(next), "expected %s, got %s", tt.expected, next)
		})
	}
}

func TestNextFireInstantWeeklyProperty(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	calc := domain.NewExecutionCalculator(loc)
	rng := rand.New(rand.NewSource(42))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, loc)

	for i := 0; i < 2000; i++ {
		var days []domain.Weekday
		for d := domain.Sunday; d <= domain.Saturday; d++ {
			if rng.Intn(2) == 0 {
				days = append(days, d)
			}
		}
		if len(days) == 0 {
			days = append(days, domain.Weekday(rng.Intn(7)+1))
		}

		weekly := domain.WeeklyComponents{
			Hour:     rng.Intn(24),
			Minute:   rng.Intn(60),
			Weekdays: mustWeekdays(t, days...),
		}
		// stay clear of the 02:xx daylight saving gap for this property
		if weekly.Hour == 2 {
			weekly.Hour = 3
		}

		reference := start.Add(time.Duration(rng.Int63n(int64(2 * 365 * 24 * time.Hour))))
		r := weeklyReminder(reference, weekly)

		next, ok := calc.NextFireInstant(r, reference)
		require.True(t, ok)

		local := next.In(loc)
		assert.False(t, next.Before(reference))
		assert.True(t, weekly.Weekdays.Contains(domain.WeekdayOf(local)))
		assert.Equal(t, weekly.Hour, local.Hour())
		assert.Equal(t, weekly.Minute, local.Minute())
		assert.LessOrEqual(t, next.Sub(reference), 7*24*time.Hour+time.Hour)
	}
}

func TestNextFireInstantMonthly(t *testing.T) {
	calc := domain.NewExecutionCalculator(time.UTC)

	tests := []struct {
		name      string
		reference time.Time
		monthly   domain.MonthlyComponents
		expected  time.Time
	}{
		{
			name:      "later this month",
			reference: time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC),
			monthly:   domain.MonthlyComponents{Hour: 9, Minute: 15, DayOfMonth: 15},
			expected:  time.Date(2025, 1, 15, 9, 15, 0, 0, time.UTC),
		},
		{
			name:      "already passed this month",
			reference: time.Date(2025, 1, 20, 8, 0, 0, 0, time.UTC),
			monthly:   domain.MonthlyComponents{Hour: 9, Minute: 15, DayOfMonth: 15},
			expected:  time.Date(2025, 2, 15, 9, 15, 0, 0, time.UTC),
		},
		{
			name:      "day 31 clamps to february 28",
			reference: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			monthly:   domain.MonthlyComponents{Hour: 9, Minute: 0, DayOfMonth: 31},
			expected:  time.Date(2025, 2, 28, 9, 0, 0, 0, time.UTC),
		},
		{
			name:      "day 30 clamps to leap day",
			reference: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			monthly:   domain.MonthlyComponents{Hour: 9, Minute: 0, DayOfMonth: 30},
			expected:  time.Date(2024, 2, 29, 9, 0, 0, 0, time.UTC),
		},
		{
			name:      "day 31 clamps to april 30",
			reference: time.Date(2025, 3, 31, 10, 0, 0, 0, time.UTC),
			monthly:   domain.MonthlyComponents{Hour: 9, Minute: 0, DayOfMonth: 31},
			expected:  time.Date(2025, 4, 30, 9, 0, 0, 0, time.UTC),
		},
		{
			name:      "december rolls into january",
			reference: time.Date(2025, 12, 31, 10, 0, 0, 0, time.UTC),
			monthly:   domain.MonthlyComponents{Hour: 9, Minute: 0, DayOfMonth: 31},
			expected:  time.Date(2026, 1, 31, 9, 0, 0, 0, time.UTC),
		},
		{
			name:      "skip suppresses one month",
			reference: time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC),
			monthly: domain.MonthlyComponents{
				Hour: 9, Minute: 15, DayOfMonth: 15,
				IsSkipping: true, SkipUntilDate: timePtr(time.Date(2025, 1, 15, 9, 15, 0, 0, time.UTC)),
			},
			expected: time.Date(2025, 2, 15, 9, 15, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := monthlyReminder(tt.reference, tt.monthly)

			next, ok := calc.NextFireInstant(r, tt.reference)

			require.True(t, ok)
			assert.True(t, tt.expected.Equal(next), "expected %s, got %s", tt.expected, next)
		})
	}
}

func TestNextFireInstantMonthlyClampProperty(t *testing.T) {
	calc := domain.NewExecutionCalculator(time.UTC)

	for day := 29; day <= 31; day++ {
		for month := time.January; month <= time.December; month++ {
			for _, year := range []int{2024, 2025} {
				reference := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
				r := monthlyReminder(reference, domain.MonthlyComponents{Hour: 7, Minute: 0, DayOfMonth: day})

				next, ok := calc.NextFireInstant(r, reference)
				require.True(t, ok)

				expectedDay := min(day, domain.DaysIn(year, month))
				assert.Equal(t, month, next.Month())
				assert.Equal(t, expectedDay, next.Day())
			}
		}
	}
}

func TestNextFireInstantDaylightSaving(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	calc := domain.NewExecutionCalculator(loc)

	tests := []struct {
		name      string
		reference time.Time
		weekly    domain.WeeklyComponents
		expected  time.Time
	}{
		{
			name:      "time inside the spring gap shifts forward",
			reference: time.Date(2025, 3, 8, 12, 0, 0, 0, loc),
			weekly:    domain.WeeklyComponents{Hour: 2, Minute: 30, Weekdays: mustWeekdays(t, domain.Sunday)},
			expected:  time.Date(2025, 3, 9, 7, 30, 0, 0, time.UTC),
		},
		{
			name:      "repeated autumn time resolves to the first occurrence",
			reference: time.Date(2025, 11, 1, 12, 0, 0, 0, loc),
			weekly:    domain.WeeklyComponents{Hour: 1, Minute: 30, Weekdays: mustWeekdays(t, domain.Sunday)},
			expected:  time.Date(2025, 11, 2, 5, 30, 0, 0, time.UTC),
		},
		{
			name:      "second occurrence of the repeated hour is not picked again",
			reference: time.Date(2025, 11, 2, 5, 30, 1, 0, time.UTC),
			weekly:    domain.WeeklyComponents{Hour: 1, Minute: 30, Weekdays: mustWeekdays(t, domain.Sunday)},
			expected:  time.Date(2025, 11, 9, 6, 30, 0, 0, time.UTC),
		},
		{
			name:      "wall clock is kept across the transition",
			reference: time.Date(2025, 3, 7, 12, 0, 0, 0, loc),
			weekly:    domain.WeeklyComponents{Hour: 9, Minute: 0, Weekdays: mustWeekdays(t, domain.Monday)},
			expected:  time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := weeklyReminder(tt.reference, tt.weekly)

			next, ok := calc.NextFireInstant(r, tt.reference)

			require.True(t, ok)
			assert.True(t, tt.expected.Equal(next), "expected %s, got %s", tt.expected, next.UTC())
		})
	}
}

func TestNextFireInstantCountdown(t *testing.T) {
	calc := domain.NewExecutionCalculator(time.UTC)
	basis := time.Date(2025, 1, 16, 10, 0, 0, 0, time.UTC)

	r := newReminder(domain.ReminderParams{
		Type:           domain.ReminderTypeCountdown,
		ExecutionBasis: basis,
		Countdown: domain.CountdownComponents{
			ExecutionInterval: 3600 * time.Second,
			IntervalElapsed:   600 * time.Second,
		},
	})

	next, ok := calc.NextFireInstant(r, basis.Add(time.Minute))

	require.True(t, ok)
	assert.Equal(t, basis.Add(3000*time.Second), next)
}

func TestNextFireInstantSnoozeOverridesRecurrence(t *testing.T) {
	calc := domain.NewExecutionCalculator(time.UTC)
	basis := time.Date(2025, 1, 16, 10, 0, 0, 0, time.UTC)

	r := newReminder(domain.ReminderParams{
		Type:           domain.ReminderTypeWeekly,
		ExecutionBasis: basis,
		Weekly:         domain.WeeklyComponents{Hour: 9, Weekdays: mustWeekdays(t, domain.Friday)},
		Snooze: domain.SnoozeComponents{
			IsEnabled:         true,
			ExecutionInterval: 15 * time.Minute,
			IntervalElapsed:   5 * time.Minute,
		},
	})

	next, ok := calc.NextFireInstant(r, basis)

	require.True(t, ok)
	assert.Equal(t, basis.Add(10*time.Minute), next)
}

func TestNextFireInstantOneTime(t *testing.T) {
	calc := domain.NewExecutionCalculator(time.UTC)
	reference := time.Date(2025, 1, 16, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		fireDate time.Time
		expected bool
	}{
		{
			name:     "future fire date",
			fireDate: reference.Add(time.Hour),
			expected: true,
		},
		{
			name:     "fire date equal to reference",
			fireDate: reference,
			expected: true,
		},
		{
			name:     "fire date already passed",
			fireDate: reference.Add(-time.Second),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newReminder(domain.ReminderParams{
				Type:           domain.ReminderTypeOneTime,
				ExecutionBasis: reference.Add(-time.Hour),
				OneTime:        domain.OneTimeComponents{FireDate: tt.fireDate},
			})

			next, ok := calc.NextFireInstant(r, reference)

			assert.Equal(t, tt.expected, ok)
			if tt.expected {
				assert.Equal(t, tt.fireDate, next)
			}
		})
	}
}

func TestNextFireInstantNone(t *testing.T) {
	calc := domain.NewExecutionCalculator(time.UTC)
	reference := time.Date(2025, 1, 16, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		params    domain.ReminderParams
		reference time.Time
	}{
		{
			name: "disabled reminder",
			params: domain.ReminderParams{
				Type:           domain.ReminderTypeCountdown,
				ExecutionBasis: reference,
				Countdown:      domain.CountdownComponents{ExecutionInterval: time.Hour},
			},
			reference: reference,
		},
		{
			name: "weekly without weekdays",
			params: domain.ReminderParams{
				IsEnabled:      true,
				Type:           domain.ReminderTypeWeekly,
				ExecutionBasis: reference,
				Weekly:         domain.WeeklyComponents{Hour: 9},
			},
			reference: reference,
		},
		{
			name: "monthly day out of range",
			params: domain.ReminderParams{
				IsEnabled:      true,
				Type:           domain.ReminderTypeMonthly,
				ExecutionBasis: reference,
				Monthly:        domain.MonthlyComponents{Hour: 9, DayOfMonth: 32},
			},
			reference: reference,
		},
		{
			name: "unknown type",
			params: domain.ReminderParams{
				IsEnabled:      true,
				Type:           domain.ReminderType("yearly"),
				ExecutionBasis: reference,
			},
			reference: reference,
		},
		{
			name: "reference before epoch",
			params: domain.ReminderParams{
				IsEnabled:      true,
				Type:           domain.ReminderTypeCountdown,
				ExecutionBasis: reference,
				Countdown:      domain.CountdownComponents{ExecutionInterval: time.Hour},
			},
			reference: time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "deleted reminder",
			params: domain.ReminderParams{
				IsEnabled:      true,
				IsDeleted:      true,
				Type:           domain.ReminderTypeCountdown,
				ExecutionBasis: reference,
				Countdown:      domain.CountdownComponents{ExecutionInterval: time.Hour},
			},
			reference: reference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.params.Action = domain.ActionFeed
			r := domain.Reconstitute(tt.params)

			_, ok := calc.NextFireInstant(r, tt.reference)

			assert.False(t, ok)
		})
	}
}
