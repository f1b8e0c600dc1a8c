package app

import (
	"time"

	"github.com/KasumiMercury/primind-reminder-alarm/internal/domain"
)

type ScheduleOutput struct {
	ReminderID string
	Scheduled  bool
	FireAt     *time.Time
}

type CancelOutput struct {
	ReminderID string
	Cancelled  bool
}

type AcknowledgeOutput struct {
	ReminderID      string
	UserID          string
	FollowUpPending bool
}

type RemoveMemberOutput struct {
	FamilyID          string
	UserID            string
	FollowUpsAffected int
}

type JobOutput struct {
	ReminderID string
	FireAt     time.Time
}

type JobsOutput struct {
	Jobs  []JobOutput
	Count int32
}

func newScheduleOutput(id domain.ReminderID, fireAt time.Time, ok bool) ScheduleOutput {
	out := ScheduleOutput{ReminderID: id.String(), Scheduled: ok}
	if ok {
		out.FireAt = &fireAt
	}

	return out
}

func FromSnapshot(snapshot []JobSnapshot) JobsOutput {
	jobs := make([]JobOutput, 0, len(snapshot))
	for _, j := range snapshot {
		jobs = append(jobs, JobOutput{
			ReminderID: j.ReminderID.String(),
			FireAt:     j.FireAt,
		})
	}

	return JobsOutput{
		Jobs:  jobs,
		Count: int32(len(jobs)), //nolint:gosec
	}
}
