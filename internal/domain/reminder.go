package domain

import (
	"time"
)

type ReminderParams struct {
	ID               ReminderID
	DogID            DogID
	FamilyID         FamilyID
	Action           ReminderAction
	CustomActionName string
	Type             ReminderType
	IsEnabled        bool
	IsDeleted        bool
	ExecutionBasis   time.Time
	ExecutionDate    *time.Time
	Snooze           SnoozeComponents
	Countdown        CountdownComponents
	Weekly           WeeklyComponents
	Monthly          MonthlyComponents
	OneTime          OneTimeComponents
	UpdatedAt        time.Time
}

type Reminder struct {
	id               ReminderID
	dogID            DogID
	familyID         FamilyID
	action           ReminderAction
	customActionName string
	reminderType     ReminderType
	isEnabled        bool
	isDeleted        bool
	executionBasis   time.Time
	executionDate    *time.Time
	snooze           SnoozeComponents
	countdown        CountdownComponents
	weekly           WeeklyComponents
	monthly          MonthlyComponents
	oneTime          OneTimeComponents
	updatedAt        time.Time
}

// NewReminder validates params before building the reminder.
func NewReminder(p ReminderParams) (*Reminder, error) {
	r := Reconstitute(p)
	if err := r.Validate(); err != nil {
		return nil, err
	}

	return r, nil
}

// Reconstitute rebuilds a reminder from stored state without validation.
func Reconstitute(p ReminderParams) *Reminder {
	if p.ID.IsZero() {
		p.ID = NewReminderID()
	}

	return &Reminder{
		id:               p.ID,
		dogID:            p.DogID,
		familyID:         p.FamilyID,
		action:           p.Action,
		customActionName: p.CustomActionName,
		reminderType:     p.Type,
		isEnabled:        p.IsEnabled,
		isDeleted:        p.IsDeleted,
		executionBasis:   p.ExecutionBasis,
		executionDate:    copyTime(p.ExecutionDate),
		snooze:           p.Snooze,
		countdown:        p.Countdown,
		weekly:           p.Weekly,
		monthly:          p.Monthly,
		oneTime:          p.OneTime,
		updatedAt:        p.UpdatedAt,
	}
}

func (r *Reminder) Validate() error {
	if r.executionBasis.IsZero() {
		return ErrMissingExecutionBase
	}

	if _, err := NewReminderType(string(r.reminderType)); err != nil {
		return err
	}

	if _, err := NewReminderAction(string(r.action)); err != nil {
		return err
	}

	if err := r.snooze.Validate(); err != nil {
		return err
	}

	switch r.reminderType {
	case ReminderTypeCountdown:
		return r.countdown.Validate()
	case ReminderTypeWeekly:
		return r.weekly.Validate()
	case ReminderTypeMonthly:
		return r.monthly.Validate()
	case ReminderTypeOneTime:
		return r.oneTime.Validate()
	}

	return nil
}

// IsActive reports whether the reminder may hold a scheduled job.
func (r *Reminder) IsActive() bool {
	return r.isEnabled && !r.isDeleted
}

// MarkFired applies the state change caused by the alarm that was due at dueAt
// and delivered at firedAt.
func (r *Reminder) MarkFired(firedAt, dueAt time.Time) {
	r.updatedAt = firedAt
	r.executionDate = nil

	if r.snooze.IsEnabled {
		r.snooze.IsEnabled = false
		r.snooze.IntervalElapsed = 0
		r.executionBasis = firedAt

		if r.reminderType == ReminderTypeCountdown {
			r.countdown.IntervalElapsed = 0
		}

		return
	}

	switch r.reminderType {
	case ReminderTypeCountdown:
		r.executionBasis = firedAt
		r.countdown.IntervalElapsed = 0
	case ReminderTypeWeekly:
		r.executionBasis = pastSlot(firedAt, dueAt)
		if !skipActive(r.weekly.IsSkipping, r.weekly.SkipUntilDate, r.executionBasis) {
			r.weekly.IsSkipping = false
			r.weekly.SkipUntilDate = nil
		}
	case ReminderTypeMonthly:
		r.executionBasis = pastSlot(firedAt, dueAt)
		if !skipActive(r.monthly.IsSkipping, r.monthly.SkipUntilDate, r.executionBasis) {
			r.monthly.IsSkipping = false
			r.monthly.SkipUntilDate = nil
		}
	case ReminderTypeOneTime:
		r.executionBasis = firedAt
		r.isEnabled = false
	}
}

func (r *Reminder) SetExecutionDate(t *time.Time) {
	r.executionDate = copyTime(t)
}

func (r *Reminder) ID() ReminderID {
	return r.id
}

func (r *Reminder) DogID() DogID {
	return r.dogID
}

func (r *Reminder) FamilyID() FamilyID {
	return r.familyID
}

func (r *Reminder) Action() ReminderAction {
	return r.action
}

func (r *Reminder) CustomActionName() string {
	return r.customActionName
}

func (r *Reminder) DisplayActionName() string {
	return r.action.DisplayName(r.customActionName)
}

func (r *Reminder) Type() ReminderType {
	return r.reminderType
}

func (r *Reminder) IsEnabled() bool {
	return r.isEnabled
}

func (r *Reminder) IsDeleted() bool {
	return r.isDeleted
}

func (r *Reminder) ExecutionBasis() time.Time {
	return r.executionBasis
}

func (r *Reminder) ExecutionDate() *time.Time {
	return copyTime(r.executionDate)
}

func (r *Reminder) Snooze() SnoozeComponents {
	return r.snooze
}

func (r *Reminder) Countdown() CountdownComponents {
	return r.countdown
}

func (r *Reminder) Weekly() WeeklyComponents {
	return r.weekly
}

func (r *Reminder) Monthly() MonthlyComponents {
	return r.monthly
}

func (r *Reminder) OneTime() OneTimeComponents {
	return r.oneTime
}

func (r *Reminder) UpdatedAt() time.Time {
	return r.updatedAt
}

// pastSlot returns a basis strictly after the slot that just fired.
func pastSlot(firedAt, dueAt time.Time) time.Time {
	if firedAt.After(dueAt) {
		return firedAt
	}

	return dueAt.Add(time.Second)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	c := *t

	return &c
}
