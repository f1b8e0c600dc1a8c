package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-reminder-alarm/internal/domain"
)

const reminderSelect = "reminders.*, dogs.family_id AS family_id"

type reminderRepositoryImpl struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) domain.ReminderRepository {
	return &reminderRepositoryImpl{
		db: db,
	}
}

func (r *reminderRepositoryImpl) withFamily(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&ReminderModel{}).
		Select(reminderSelect).
		Joins("JOIN dogs ON dogs.id = reminders.dog_id")
}

func (r *reminderRepositoryImpl) FindByID(ctx context.Context, id domain.ReminderID) (*domain.Reminder, error) {
	slog.DebugContext(ctx, "finding reminder by ID",
		"reminder_id", id.String(),
	)

	var m ReminderModel

	result := r.withFamily(ctx).Where("reminders.id = ?", id.String()).Take(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			slog.DebugContext(ctx, "reminder not found",
				"reminder_id", id.String(),
			)

			return nil, domain.ErrReminderNotFound
		}

		slog.ErrorContext(ctx, "failed to find reminder by ID",
			"reminder_id", id.String(),
			"error", result.Error,
		)

		return nil, result.Error
	}

	return m.ToEntity()
}

func (r *reminderRepositoryImpl) FindRestorable(ctx context.Context, after domain.ReminderID, limit int) (domain.RestorePage, error) {
	var models []ReminderModel

	query := r.withFamily(ctx).
		Joins("JOIN families ON families.id = dogs.family_id").
		Where("reminders.is_enabled = ? AND reminders.is_deleted = ?", true, false).
		Where("dogs.is_deleted = ? AND families.is_deleted = ?", false, false)

	if !after.IsZero() {
		query = query.Where("reminders.id > ?", after.String())
	}

	result := query.Order("reminders.id ASC").Limit(limit).Find(&models)
	if result.Error != nil {
		slog.ErrorContext(ctx, "failed to find restorable reminders",
			"after", after.String(),
			"error", result.Error,
		)

		return domain.RestorePage{}, result.Error
	}

	page := domain.RestorePage{Scanned: len(models)}
	if len(models) > 0 {
		last, err := domain.ReminderIDFromString(models[len(models)-1].ID)
		if err != nil {
			return domain.RestorePage{}, fmt.Errorf("unreadable keyset cursor %q: %w", models[len(models)-1].ID, err)
		}

		page.Last = last
	}

	reminders := make([]*domain.Reminder, 0, len(models))
	for _, m := range models {
		reminder, err := m.ToEntity()
		if err != nil {
			// one corrupt row must not block restoring the rest
			slog.WarnContext(ctx, "skipping unreadable reminder row",
				"reminder_id", m.ID,
				"error", err,
			)

			continue
		}

		reminders = append(reminders, reminder)
	}

	slog.DebugContext(ctx, "restorable reminders found",
		"after", after.String(),
		"scanned", page.Scanned,
		"count", len(reminders),
	)

	page.Reminders = reminders

	return page, nil
}

func (r *reminderRepositoryImpl) UpdateExecution(ctx context.Context, reminder *domain.Reminder) error {
	result := r.db.WithContext(ctx).
		Model(&ReminderModel{}).
		Where("id = ?", reminder.ID().String()).
		Updates(executionColumns(reminder))
	if result.Error != nil {
		slog.ErrorContext(ctx, "failed to update reminder execution state",
			"reminder_id", reminder.ID().String(),
			"error", result.Error,
		)

		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.ErrReminderNotFound
	}

	slog.DebugContext(ctx, "reminder execution state updated",
		"reminder_id", reminder.ID().String(),
	)

	return nil
}
