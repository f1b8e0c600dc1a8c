package domain

import (
	"time"
)

// Weekday numbers run from 1 (Sunday) to 7 (Saturday).
type Weekday int

const (
	Sunday Weekday = iota + 1
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

func WeekdayOf(t time.Time) Weekday {
	return Weekday(int(t.Weekday()) + 1)
}

// Weekdays is a set of weekdays stored as a bit mask.
type Weekdays uint8

func NewWeekdays(days ...Weekday) (Weekdays, error) {
	var set Weekdays

	for _, d := range days {
		if d < Sunday || d > Saturday {
			return 0, ErrInvalidWeekday
		}

		set |= 1 << uint(d-1)
	}

	return set, nil
}

func (w Weekdays) Contains(d Weekday) bool {
	if d < Sunday || d > Saturday {
		return false
	}

	return w&(1<<uint(d-1)) != 0
}

func (w Weekdays) IsEmpty() bool {
	return w&0x7f == 0
}

func (w Weekdays) Days() []Weekday {
	days := make([]Weekday, 0, 7)
	for d := Sunday; d <= Saturday; d++ {
		if w.Contains(d) {
			days = append(days, d)
		}
	}

	return days
}

type CountdownComponents struct {
	ExecutionInterval time.Duration
	IntervalElapsed   time.Duration
}

func (c CountdownComponents) Validate() error {
	if c.ExecutionInterval <= 0 {
		return ErrInvalidInterval
	}

	if c.IntervalElapsed < 0 {
		return ErrInvalidElapsed
	}

	return nil
}

type WeeklyComponents struct {
	Hour          int
	Minute        int
	Weekdays      Weekdays
	IsSkipping    bool
	SkipUntilDate *time.Time
}

func (c WeeklyComponents) Validate() error {
	if err := validateClock(c.Hour, c.Minute); err != nil {
		return err
	}

	if c.Weekdays.IsEmpty() {
		return ErrEmptyWeekdays
	}

	if c.IsSkipping && c.SkipUntilDate == nil {
		return ErrSkipWithoutDate
	}

	return nil
}

type MonthlyComponents struct {
	Hour          int
	Minute        int
	DayOfMonth    int
	IsSkipping    bool
	SkipUntilDate *time.Time
}

func (c MonthlyComponents) Validate() error {
	if err := validateClock(c.Hour, c.Minute); err != nil {
		return err
	}

	if c.DayOfMonth < 1 || c.DayOfMonth > 31 {
		return ErrInvalidDayOfMonth
	}

	if c.IsSkipping && c.SkipUntilDate == nil {
		return ErrSkipWithoutDate
	}

	return nil
}

type OneTimeComponents struct {
	FireDate time.Time
}

func (c OneTimeComponents) Validate() error {
	if c.FireDate.IsZero() {
		return ErrMissingFireDate
	}

	return nil
}

// SnoozeComponents overlays the base recurrence while enabled.
type SnoozeComponents struct {
	IsEnabled         bool
	ExecutionInterval time.Duration
	IntervalElapsed   time.Duration
}

func (c SnoozeComponents) Validate() error {
	if !c.IsEnabled {
		return nil
	}

	if c.ExecutionInterval <= 0 {
		return ErrInvalidInterval
	}

	if c.IntervalElapsed < 0 {
		return ErrInvalidElapsed
	}

	return nil
}

func validateClock(hour, minute int) error {
	if hour < 0 || hour > 23 {
		return ErrInvalidHour
	}

	if minute < 0 || minute > 59 {
		return ErrInvalidMinute
	}

	return nil
}

// skipActive reports whether skipping still applies at reference.
func skipActive(isSkipping bool, until *time.Time, reference time.Time) bool {
	return isSkipping && until != nil && reference.Before(*until)
}
