package domain

import (
	"context"
)

//go:generate mockgen -source=reminder_repository.go -destination=reminder_repository_mock.go -package=domain

// RestorePage is one keyset page of restorable reminders. Scanned and Last
// describe the rows read from storage, including rows that could not be
// turned into reminders, so paging never depends on which rows converted.
type RestorePage struct {
	Reminders []*Reminder
	Scanned   int
	Last      ReminderID
}

type ReminderRepository interface {
	// FindByID returns the reminder including soft deleted ones.
	FindByID(ctx context.Context, id ReminderID) (*Reminder, error)
	// FindRestorable returns up to limit enabled, non-deleted reminders of
	// non-deleted households ordered by ID, starting after the given ID.
	FindRestorable(ctx context.Context, after ReminderID, limit int) (RestorePage, error)
	// UpdateExecution writes back the scheduling state of a reminder.
	UpdateExecution(ctx context.Context, reminder *Reminder) error
}
