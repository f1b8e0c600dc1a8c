package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/KasumiMercury/primind-reminder-alarm/internal/domain"
)

// FollowUpTracker is the part of the dispatcher the use case drives.
type FollowUpTracker interface {
	Acknowledge(reminderID domain.ReminderID, userID domain.UserID) bool
	CancelFollowUpsForMember(familyID domain.FamilyID, userID domain.UserID) int
}

type scheduleUseCaseImpl struct {
	repo      domain.ReminderRepository
	scheduler *Scheduler
	followUps FollowUpTracker
}

func NewScheduleUseCase(repo domain.ReminderRepository, scheduler *Scheduler, followUps FollowUpTracker) ScheduleUseCase {
	return &scheduleUseCaseImpl{
		repo:      repo,
		scheduler: scheduler,
		followUps: followUps,
	}
}

func (uc *scheduleUseCaseImpl) Schedule(ctx context.Context, input ScheduleInput) (ScheduleOutput, error) {
	reminder, err := uc.load(ctx, input.ReminderID)
	if err != nil {
		return ScheduleOutput{}, err
	}

	fireAt, ok := uc.scheduler.Create(ctx, reminder)
	if !ok && uc.scheduler.Closed() {
		return ScheduleOutput{}, ErrShuttingDown
	}

	slog.DebugContext(ctx, "reminder schedule created",
		"reminder_id", input.ReminderID,
		"scheduled", ok,
	)

	return newScheduleOutput(reminder.ID(), fireAt, ok), nil
}

func (uc *scheduleUseCaseImpl) Reschedule(ctx context.Context, input ScheduleInput) (ScheduleOutput, error) {
	reminder, err := uc.load(ctx, input.ReminderID)
	if err != nil {
		return ScheduleOutput{}, err
	}

	fireAt, ok := uc.scheduler.Upsert(ctx, reminder)
	if !ok && uc.scheduler.Closed() {
		return ScheduleOutput{}, ErrShuttingDown
	}

	slog.DebugContext(ctx, "reminder schedule replaced",
		"reminder_id", input.ReminderID,
		"scheduled", ok,
	)

	return newScheduleOutput(reminder.ID(), fireAt, ok), nil
}

func (uc *scheduleUseCaseImpl) Cancel(ctx context.Context, input CancelInput) (CancelOutput, error) {
	id, err := domain.ReminderIDFromString(input.ReminderID)
	if err != nil {
		return CancelOutput{}, NewValidationError("reminder_id", err.Error())
	}

	cancelled := uc.scheduler.Cancel(ctx, id)

	if !cancelled {
		slog.DebugContext(ctx, "no pending job to cancel (idempotency)",
			"reminder_id", input.ReminderID,
		)
	}

	return CancelOutput{ReminderID: id.String(), Cancelled: cancelled}, nil
}

func (uc *scheduleUseCaseImpl) Acknowledge(ctx context.Context, input AcknowledgeInput) (AcknowledgeOutput, error) {
	reminderID, err := domain.ReminderIDFromString(input.ReminderID)
	if err != nil {
		return AcknowledgeOutput{}, NewValidationError("reminder_id", err.Error())
	}

	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return AcknowledgeOutput{}, NewValidationError("user_id", err.Error())
	}

	pending := uc.followUps.Acknowledge(reminderID, userID)

	slog.InfoContext(ctx, "alarm acknowledged",
		"reminder_id", reminderID.String(),
		"user_id", userID.String(),
		"follow_up_pending", pending,
	)

	return AcknowledgeOutput{
		ReminderID:      reminderID.String(),
		UserID:          userID.String(),
		FollowUpPending: pending,
	}, nil
}

func (uc *scheduleUseCaseImpl) RemoveMember(ctx context.Context, input RemoveMemberInput) (RemoveMemberOutput, error) {
	familyID, err := domain.FamilyIDFromString(input.FamilyID)
	if err != nil {
		return RemoveMemberOutput{}, NewValidationError("family_id", err.Error())
	}

	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return RemoveMemberOutput{}, NewValidationError("user_id", err.Error())
	}

	affected := uc.followUps.CancelFollowUpsForMember(familyID, userID)

	slog.InfoContext(ctx, "member withdrawn from follow-ups",
		"family_id", familyID.String(),
		"user_id", userID.String(),
		"affected", affected,
	)

	return RemoveMemberOutput{
		FamilyID:          familyID.String(),
		UserID:            userID.String(),
		FollowUpsAffected: affected,
	}, nil
}

func (uc *scheduleUseCaseImpl) ListJobs(_ context.Context) (JobsOutput, error) {
	return FromSnapshot(uc.scheduler.Snapshot()), nil
}

// load reads the committed reminder. Active reminders must be well formed
// before they are scheduled; inactive ones only need to be cancellable.
func (uc *scheduleUseCaseImpl) load(ctx context.Context, rawID string) (*domain.Reminder, error) {
	id, err := domain.ReminderIDFromString(rawID)
	if err != nil {
		return nil, NewValidationError("reminder_id", err.Error())
	}

	reminder, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrReminderNotFound) {
			slog.WarnContext(ctx, "reminder not found for scheduling",
				"reminder_id", rawID,
			)

			return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}

		slog.ErrorContext(ctx, "failed to load reminder",
			"reminder_id", rawID,
			"error", err,
		)

		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if reminder.IsActive() {
		if err := reminder.Validate(); err != nil {
			return nil, NewValidationError(validationField(err), err.Error())
		}
	}

	return reminder, nil
}

func validationField(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidReminderType):
		return "type"
	case errors.Is(err, domain.ErrInvalidReminderAction):
		return "action"
	case errors.Is(err, domain.ErrMissingExecutionBase):
		return "execution_basis"
	case errors.Is(err, domain.ErrMissingFireDate):
		return "fire_date"
	case errors.Is(err, domain.ErrEmptyWeekdays), errors.Is(err, domain.ErrInvalidWeekday):
		return "weekdays"
	case errors.Is(err, domain.ErrInvalidDayOfMonth):
		return "day_of_month"
	case errors.Is(err, domain.ErrInvalidHour), errors.Is(err, domain.ErrInvalidMinute):
		return "time_of_day"
	case errors.Is(err, domain.ErrSkipWithoutDate):
		return "skip_until_date"
	default:
		return "components"
	}
}
