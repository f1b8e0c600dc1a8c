package app

type ScheduleInput struct {
	ReminderID string
}

type CancelInput struct {
	ReminderID string
}

type AcknowledgeInput struct {
	ReminderID string
	UserID     string
}

type RemoveMemberInput struct {
	FamilyID string
	UserID   string
}
