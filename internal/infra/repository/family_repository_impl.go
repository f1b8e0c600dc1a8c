package repository

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-reminder-alarm/internal/domain"
)

type familyRepositoryImpl struct {
	db *gorm.DB
}

func NewFamilyRepository(db *gorm.DB) domain.FamilyRepository {
	return &familyRepositoryImpl{
		db: db,
	}
}

func (r *familyRepositoryImpl) FindHousehold(ctx context.Context, familyID domain.FamilyID) (*domain.Household, error) {
	var family FamilyModel

	result := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", familyID.String(), false).
		Take(&family)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFamilyNotFound
		}

		slog.ErrorContext(ctx, "failed to find family",
			"family_id", familyID.String(),
			"error", result.Error,
		)

		return nil, result.Error
	}

	var members []FamilyMemberModel

	if err := r.db.WithContext(ctx).
		Where("family_id = ?", familyID.String()).
		Order("user_id ASC").
		Find(&members).Error; err != nil {
		slog.ErrorContext(ctx, "failed to find family members",
			"family_id", familyID.String(),
			"error", err,
		)

		return nil, err
	}

	return family.ToEntity(members)
}

func (r *familyRepositoryImpl) FindDogName(ctx context.Context, dogID domain.DogID) (string, error) {
	var dog DogModel

	result := r.db.WithContext(ctx).Select("name").Where("id = ?", dogID.String()).Take(&dog)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", domain.ErrDogNotFound
		}

		return "", result.Error
	}

	return dog.Name, nil
}
