package handler

import (
	"time"

	"github.com/KasumiMercury/primind-reminder-alarm/internal/app"
)

type ScheduleResponse struct {
	ReminderID string     `json:"reminder_id"`
	Scheduled  bool       `json:"scheduled"`
	FireAt     *time.Time `json:"fire_at"`
}

type CancelResponse struct {
	ReminderID string `json:"reminder_id"`
	Cancelled  bool   `json:"cancelled"`
}

type AcknowledgeResponse struct {
	ReminderID      string `json:"reminder_id"`
	UserID          string `json:"user_id"`
	FollowUpPending bool   `json:"follow_up_pending"`
}

type RemoveMemberResponse struct {
	FamilyID          string `json:"family_id"`
	UserID            string `json:"user_id"`
	FollowUpsAffected int    `json:"follow_ups_affected"`
}

type JobResponse struct {
	ReminderID string    `json:"reminder_id"`
	FireAt     time.Time `json:"fire_at"`
}

type JobsResponse struct {
	Jobs  []JobResponse `json:"jobs"`
	Count int32         `json:"count"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func FromScheduleOutput(output app.ScheduleOutput) ScheduleResponse {
	var fireAt *time.Time
	if output.FireAt != nil {
		utc := output.FireAt.UTC()
		fireAt = &utc
	}

	return ScheduleResponse{
		ReminderID: output.ReminderID,
		Scheduled:  output.Scheduled,
		FireAt:     fireAt,
	}
}

func FromJobsOutput(output app.JobsOutput) JobsResponse {
	jobs := make([]JobResponse, 0, len(output.Jobs))
	for _, j := range output.Jobs {
		jobs = append(jobs, JobResponse{
			ReminderID: j.ReminderID,
			FireAt:     j.FireAt.UTC(),
		})
	}

	return JobsResponse{
		Jobs:  jobs,
		Count: output.Count,
	}
}
