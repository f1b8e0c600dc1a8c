package app

import (
	"context"
)

//go:generate mockgen -source=schedule_usecase.go -destination=schedule_usecase_mock.go -package=app

// ScheduleUseCase is what the reminder CRUD service calls once its own
// transaction has committed.
type ScheduleUseCase interface {
	// Schedule arms the next occurrence of a stored reminder.
	Schedule(ctx context.Context, input ScheduleInput) (ScheduleOutput, error)
	// Reschedule drops pending work for the reminder and arms it again.
	Reschedule(ctx context.Context, input ScheduleInput) (ScheduleOutput, error)
	Cancel(ctx context.Context, input CancelInput) (CancelOutput, error)
	Acknowledge(ctx context.Context, input AcknowledgeInput) (AcknowledgeOutput, error)
	RemoveMember(ctx context.Context, input RemoveMemberInput) (RemoveMemberOutput, error)
	ListJobs(ctx context.Context) (JobsOutput, error)
}
