package domain

import "fmt"

type ReminderType string

const (
	ReminderTypeCountdown ReminderType = "countdown"
	ReminderTypeWeekly    ReminderType = "weekly"
	ReminderTypeMonthly   ReminderType = "monthly"
	ReminderTypeOneTime   ReminderType = "oneTime"
)

func NewReminderType(t string) (ReminderType, error) {
	switch t {
	case string(ReminderTypeCountdown), string(ReminderTypeWeekly),
		string(ReminderTypeMonthly), string(ReminderTypeOneTime):
		return ReminderType(t), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidReminderType, t)
	}
}

// IsRecurring reports whether the type produces further occurrences after firing.
func (t ReminderType) IsRecurring() bool {
	return t == ReminderTypeCountdown || t == ReminderTypeWeekly || t == ReminderTypeMonthly
}
