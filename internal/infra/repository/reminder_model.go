package repository

import (
	"time"

	"github.com/KasumiMercury/primind-reminder-alarm/internal/domain"
)

// ReminderModel mirrors the reminders table owned by the reminder CRUD
// service. Durations are stored as seconds.
type ReminderModel struct {
	ID       string `gorm:"column:id;type:uuid;primaryKey"`
	DogID    string `gorm:"column:dog_id;type:uuid;not null;index:idx_reminders_dog_id"`
	FamilyID string `gorm:"column:family_id;->;-:migration"` // joined from dogs

	Action           string  `gorm:"column:action;type:varchar(32);not null"`
	CustomActionName *string `gorm:"column:custom_action_name;type:varchar(255)"`
	Type             string  `gorm:"column:type;type:varchar(16);not null"`
	IsEnabled        bool    `gorm:"column:is_enabled;type:boolean;not null;default:true;index:idx_reminders_active,priority:1"`
	IsDeleted        bool    `gorm:"column:is_deleted;type:boolean;not null;default:false;index:idx_reminders_active,priority:2"`

	ExecutionBasis time.Time  `gorm:"column:execution_basis;type:timestamptz;not null"`
	ExecutionDate  *time.Time `gorm:"column:execution_date;type:timestamptz"`

	SnoozeIsEnabled         bool  `gorm:"column:snooze_is_enabled;type:boolean;not null;default:false"`
	SnoozeExecutionInterval int64 `gorm:"column:snooze_execution_interval;type:bigint;not null;default:0"`
	SnoozeIntervalElapsed   int64 `gorm:"column:snooze_interval_elapsed;type:bigint;not null;default:0"`

	CountdownExecutionInterval int64 `gorm:"column:countdown_execution_interval;type:bigint;not null;default:0"`
	CountdownIntervalElapsed   int64 `gorm:"column:countdown_interval_elapsed;type:bigint;not null;default:0"`

	WeeklyHour       int        `gorm:"column:weekly_hour;type:smallint;not null;default:0"`
	WeeklyMinute     int        `gorm:"column:weekly_minute;type:smallint;not null;default:0"`
	WeeklySunday     bool       `gorm:"column:weekly_sunday;type:boolean;not null;default:false"`
	WeeklyMonday     bool       `gorm:"column:weekly_monday;type:boolean;not null;default:false"`
	WeeklyTuesday    bool       `gorm:"column:weekly_tuesday;type:boolean;not null;default:false"`
	WeeklyWednesday  bool       `gorm:"column:weekly_wednesday;type:boolean;not null;default:false"`
	WeeklyThursday   bool       `gorm:"column:weekly_thursday;type:boolean;not null;default:false"`
	WeeklyFriday     bool       `gorm:"column:weekly_friday;type:boolean;not null;default:false"`
	WeeklySaturday   bool       `gorm:"column:weekly_saturday;type:boolean;not null;default:false"`
	WeeklyIsSkipping bool       `gorm:"column:weekly_is_skipping;type:boolean;not null;default:false"`
	WeeklySkipDate   *time.Time `gorm:"column:weekly_skip_date;type:timestamptz"`

	MonthlyHour       int        `gorm:"column:monthly_hour;type:smallint;not null;default:0"`
	MonthlyMinute     int        `gorm:"column:monthly_minute;type:smallint;not null;default:0"`
	MonthlyDayOfMonth int        `gorm:"column:monthly_day_of_month;type:smallint;not null;default:0"`
	MonthlyIsSkipping bool       `gorm:"column:monthly_is_skipping;type:boolean;not null;default:false"`
	MonthlySkipDate   *time.Time `gorm:"column:monthly_skip_date;type:timestamptz"`

	OneTimeDate *time.Time `gorm:"column:one_time_date;type:timestamptz"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;not null"`
}

func (ReminderModel) TableName() string {
	return "reminders"
}

func (m *ReminderModel) weekdays() domain.Weekdays {
	flags := []bool{
		m.WeeklySunday, m.WeeklyMonday, m.WeeklyTuesday, m.WeeklyWednesday,
		m.WeeklyThursday, m.WeeklyFriday, m.WeeklySaturday,
	}

	days := make([]domain.Weekday, 0, len(flags))
	for i, set := range flags {
		if set {
			days = append(days, domain.Sunday+domain.Weekday(i))
		}
	}

	// every day is in range, so the error is impossible
	w, _ := domain.NewWeekdays(days...)

	return w
}

func (m *ReminderModel) setWeekdays(w domain.Weekdays) {
	m.WeeklySunday = w.Contains(domain.Sunday)
	m.WeeklyMonday = w.Contains(domain.Monday)
	m.WeeklyTuesday = w.Contains(domain.Tuesday)
	m.WeeklyWednesday = w.Contains(domain.Wednesday)
	m.WeeklyThursday = w.Contains(domain.Thursday)
	m.WeeklyFriday = w.Contains(domain.Friday)
	m.WeeklySaturday = w.Contains(domain.Saturday)
}

// ToEntity rebuilds the reminder without validating its components; a
// malformed row simply has no next occurrence.
func (m *ReminderModel) ToEntity() (*domain.Reminder, error) {
	id, err := domain.ReminderIDFromString(m.ID)
	if err != nil {
		return nil, err
	}

	dogID, err := domain.DogIDFromString(m.DogID)
	if err != nil {
		return nil, err
	}

	var familyID domain.FamilyID
	if m.FamilyID != "" {
		familyID, err = domain.FamilyIDFromString(m.FamilyID)
		if err != nil {
			return nil, err
		}
	}

	customName := ""
	if m.CustomActionName != nil {
		customName = *m.CustomActionName
	}

	var fireDate time.Time
	if m.OneTimeDate != nil {
		fireDate = *m.OneTimeDate
	}

	return domain.Reconstitute(domain.ReminderParams{
		ID:               id,
		DogID:            dogID,
		FamilyID:         familyID,
		Action:           domain.ReminderAction(m.Action),
		CustomActionName: customName,
		Type:             domain.ReminderType(m.Type),
		IsEnabled:        m.IsEnabled,
		IsDeleted:        m.IsDeleted,
		ExecutionBasis:   m.ExecutionBasis,
		ExecutionDate:    m.ExecutionDate,
		Snooze: domain.SnoozeComponents{
			IsEnabled:         m.SnoozeIsEnabled,
			ExecutionInterval: seconds(m.SnoozeExecutionInterval),
			IntervalElapsed:   seconds(m.SnoozeIntervalElapsed),
		},
		Countdown: domain.CountdownComponents{
			ExecutionInterval: seconds(m.CountdownExecutionInterval),
			IntervalElapsed:   seconds(m.CountdownIntervalElapsed),
		},
		Weekly: domain.WeeklyComponents{
			Hour:          m.WeeklyHour,
			Minute:        m.WeeklyMinute,
			Weekdays:      m.weekdays(),
			IsSkipping:    m.WeeklyIsSkipping,
			SkipUntilDate: m.WeeklySkipDate,
		},
		Monthly: domain.MonthlyComponents{
			Hour:          m.MonthlyHour,
			Minute:        m.MonthlyMinute,
			DayOfMonth:    m.MonthlyDayOfMonth,
			IsSkipping:    m.MonthlyIsSkipping,
			SkipUntilDate: m.MonthlySkipDate,
		},
		OneTime:   domain.OneTimeComponents{FireDate: fireDate},
		UpdatedAt: m.UpdatedAt,
	}), nil
}

func FromEntity(e *domain.Reminder) *ReminderModel {
	m := &ReminderModel{
		ID:             e.ID().String(),
		DogID:          e.DogID().String(),
		Action:         string(e.Action()),
		Type:           string(e.Type()),
		IsEnabled:      e.IsEnabled(),
		IsDeleted:      e.IsDeleted(),
		ExecutionBasis: e.ExecutionBasis(),
		ExecutionDate:  e.ExecutionDate(),

		SnoozeIsEnabled:         e.Snooze().IsEnabled,
		SnoozeExecutionInterval: toSeconds(e.Snooze().ExecutionInterval),
		SnoozeIntervalElapsed:   toSeconds(e.Snooze().IntervalElapsed),

		CountdownExecutionInterval: toSeconds(e.Countdown().ExecutionInterval),
		CountdownIntervalElapsed:   toSeconds(e.Countdown().IntervalElapsed),

		WeeklyHour:       e.Weekly().Hour,
		WeeklyMinute:     e.Weekly().Minute,
		WeeklyIsSkipping: e.Weekly().IsSkipping,
		WeeklySkipDate:   e.Weekly().SkipUntilDate,

		MonthlyHour:       e.Monthly().Hour,
		MonthlyMinute:     e.Monthly().Minute,
		MonthlyDayOfMonth: e.Monthly().DayOfMonth,
		MonthlyIsSkipping: e.Monthly().IsSkipping,
		MonthlySkipDate:   e.Monthly().SkipUntilDate,

		CreatedAt: e.UpdatedAt(),
		UpdatedAt: e.UpdatedAt(),
	}

	m.setWeekdays(e.Weekly().Weekdays)

	if name := e.CustomActionName(); name != "" {
		m.CustomActionName = &name
	}

	if fireDate := e.OneTime().FireDate; !fireDate.IsZero() {
		m.OneTimeDate = &fireDate
	}

	return m
}

// executionColumns lists what the alarm engine writes back after a fire.
func executionColumns(e *domain.Reminder) map[string]any {
	return map[string]any{
		"is_enabled":                 e.IsEnabled(),
		"execution_basis":            e.ExecutionBasis(),
		"execution_date":             e.ExecutionDate(),
		"snooze_is_enabled":          e.Snooze().IsEnabled,
		"snooze_interval_elapsed":    toSeconds(e.Snooze().IntervalElapsed),
		"countdown_interval_elapsed": toSeconds(e.Countdown().IntervalElapsed),
		"weekly_is_skipping":         e.Weekly().IsSkipping,
		"weekly_skip_date":           e.Weekly().SkipUntilDate,
		"monthly_is_skipping":        e.Monthly().IsSkipping,
		"monthly_skip_date":          e.Monthly().SkipUntilDate,
		"updated_at":                 e.UpdatedAt(),
	}
}

func seconds(s int64) time.Duration {
	return time.Duration(s) * time.Second
}

func toSeconds(d time.Duration) int64 {
	return int64(d / time.Second)
}
