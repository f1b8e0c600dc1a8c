package domain

import "errors"

var (
	ErrReminderNotFound = errors.New("reminder not found")
	ErrFamilyNotFound   = errors.New("family not found")
	ErrDogNotFound      = errors.New("dog not found")

	ErrInvalidReminderID = errors.New("invalid reminder ID")
	ErrInvalidDogID      = errors.New("invalid dog ID")
	ErrInvalidFamilyID   = errors.New("invalid family ID")
	ErrInvalidUserID     = errors.New("invalid user ID")

	ErrInvalidReminderType   = errors.New("invalid reminder type")
	ErrInvalidReminderAction = errors.New("invalid reminder action")

	ErrEmptyWeekdays        = errors.New("weekly reminder requires at least one weekday")
	ErrInvalidWeekday       = errors.New("weekday must be between 1 and 7")
	ErrInvalidDayOfMonth    = errors.New("day of month must be between 1 and 31")
	ErrInvalidHour          = errors.New("hour must be between 0 and 23")
	ErrInvalidMinute        = errors.New("minute must be between 0 and 59")
	ErrInvalidInterval      = errors.New("execution interval must be positive")
	ErrInvalidElapsed       = errors.New("interval elapsed must not be negative")
	ErrSkipWithoutDate      = errors.New("skipping requires a skip until date")
	ErrMissingFireDate      = errors.New("one time reminder requires a fire date")
	ErrMissingExecutionBase = errors.New("execution basis is required")
)
