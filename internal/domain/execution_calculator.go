package domain

import (
	"time"
)

// maxMonthlySearch bounds the month scan; any valid day of month matches within a year.
const maxMonthlySearch = 13

var epoch = time.Unix(0, 0)

// ExecutionCalculator computes the next due instant of a reminder. Weekly and
// monthly wall clock components are interpreted in location.
type ExecutionCalculator struct {
	location *time.Location
}

func NewExecutionCalculator(location *time.Location) *ExecutionCalculator {
	if location == nil {
		location = time.UTC
	}

	return &ExecutionCalculator{location: location}
}

func (c *ExecutionCalculator) Location() *time.Location {
	return c.location
}

// NextFireInstant returns the next instant at or after reference at which the
// reminder is due. The second result is false when the reminder cannot fire
// again without intervention, including when its state is malformed.
//
// Countdown and snooze schedules are relative to the execution basis; weekly,
// monthly and one time schedules are searched from reference.
func (c *ExecutionCalculator) NextFireInstant(r *Reminder, reference time.Time) (time.Time, bool) {
	if r == nil || !r.IsActive() {
		return time.Time{}, false
	}

	if reference.Before(epoch) || r.executionBasis.Before(epoch) {
		return time.Time{}, false
	}

	if r.snooze.IsEnabled {
		if r.snooze.Validate() != nil {
			return time.Time{}, false
		}

		return r.executionBasis.Add(r.snooze.ExecutionInterval - r.snooze.IntervalElapsed), true
	}

	switch r.reminderType {
	case ReminderTypeCountdown:
		if r.countdown.Validate() != nil {
			return time.Time{}, false
		}

		return r.executionBasis.Add(r.countdown.ExecutionInterval - r.countdown.IntervalElapsed), true
	case ReminderTypeWeekly:
		return c.nextWeekly(r.weekly, reference)
	case ReminderTypeMonthly:
		return c.nextMonthly(r.monthly, reference)
	case ReminderTypeOneTime:
		if r.oneTime.Validate() != nil || r.oneTime.FireDate.Before(reference) {
			return time.Time{}, false
		}

		return r.oneTime.FireDate, true
	default:
		return time.Time{}, false
	}
}

func (c *ExecutionCalculator) nextWeekly(w WeeklyComponents, reference time.Time) (time.Time, bool) {
	if w.Validate() != nil {
		return time.Time{}, false
	}

	next, ok := c.weeklySlot(w, reference)
	if !ok {
		return time.Time{}, false
	}

	if skipActive(w.IsSkipping, w.SkipUntilDate, reference) && !next.After(*w.SkipUntilDate) {
		return c.weeklySlot(w, next.Add(time.Second))
	}

	return next, true
}

// weeklySlot finds the earliest slot at or after from.
func (c *ExecutionCalculator) weeklySlot(w WeeklyComponents, from time.Time) (time.Time, bool) {
	local := from.In(c.location)

	// eight days covers a slot earlier in the day on the same weekday next week
	for i := 0; i <= 7; i++ {
		day := time.Date(local.Year(), local.Month(), local.Day()+i, 12, 0, 0, 0, c.location)
		if !w.Weekdays.Contains(WeekdayOf(day)) {
			continue
		}

		candidate := c.wallClock(day.Year(), day.Month(), day.Day(), w.Hour, w.Minute)
		if !candidate.Before(from) {
			return candidate, true
		}
	}

	return time.Time{}, false
}

func (c *ExecutionCalculator) nextMonthly(m MonthlyComponents, reference time.Time) (time.Time, bool) {
	if m.Validate() != nil {
		return time.Time{}, false
	}

	next, ok := c.monthlySlot(m, reference)
	if !ok {
		return time.Time{}, false
	}

	if skipActive(m.IsSkipping, m.SkipUntilDate, reference) && !next.After(*m.SkipUntilDate) {
		return c.monthlySlot(m, next.Add(time.Second))
	}

	return next, true
}

func (c *ExecutionCalculator) monthlySlot(m MonthlyComponents, from time.Time) (time.Time, bool) {
	local := from.In(c.location)

	for i := 0; i < maxMonthlySearch; i++ {
		first := time.Date(local.Year(), local.Month()+time.Month(i), 1, 12, 0, 0, 0, c.location)

		day := m.DayOfMonth
		if last := DaysIn(first.Year(), first.Month()); day > last {
			day = last
		}

		candidate := c.wallClock(first.Year(), first.Month(), day, m.Hour, m.Minute)
		if !candidate.Before(from) {
			return candidate, true
		}
	}

	return time.Time{}, false
}

// wallClock resolves a local date and time to an instant. A time that occurs
// twice resolves to the earlier occurrence; a time skipped by a daylight
// saving gap is shifted forward by the length of the gap.
func (c *ExecutionCalculator) wallClock(year int, month time.Month, day, hour, minute int) time.Time {
	naive := time.Date(year, month, day, hour, minute, 0, 0, time.UTC)

	_, before := naive.Add(-12 * time.Hour).In(c.location).Zone()
	_, after := naive.Add(12 * time.Hour).In(c.location).Zone()

	var resolved time.Time
	for _, offset := range []int{before, after} {
		candidate := naive.Add(-time.Duration(offset) * time.Second).In(c.location)
		if candidate.Day() != day || candidate.Hour() != hour || candidate.Minute() != minute {
			continue
		}

		if resolved.IsZero() || candidate.Before(resolved) {
			resolved = candidate
		}
	}

	if resolved.IsZero() {
		resolved = naive.Add(-time.Duration(before) * time.Second).In(c.location)
	}

	return resolved
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
