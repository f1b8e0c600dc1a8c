package repository

import (
	"time"

	"github.com/KasumiMercury/primind-reminder-alarm/internal/domain"
)

type FamilyModel struct {
	ID                string    `gorm:"column:id;type:uuid;primaryKey"`
	FollowUpIsEnabled bool      `gorm:"column:follow_up_is_enabled;type:boolean;not null;default:false"`
	FollowUpDelay     int64     `gorm:"column:follow_up_delay;type:bigint;not null;default:0"` // stored as seconds
	IsDeleted         bool      `gorm:"column:is_deleted;type:boolean;not null;default:false"`
	CreatedAt         time.Time `gorm:"column:created_at;type:timestamptz;not null"`
	UpdatedAt         time.Time `gorm:"column:updated_at;type:timestamptz;not null"`
}

func (FamilyModel) TableName() string {
	return "families"
}

type FamilyMemberModel struct {
	FamilyID              string  `gorm:"column:family_id;type:uuid;primaryKey"`
	UserID                string  `gorm:"column:user_id;type:uuid;primaryKey"`
	DeviceToken           *string `gorm:"column:device_token;type:varchar(4096)"`
	IsNotificationEnabled bool    `gorm:"column:is_notification_enabled;type:boolean;not null;default:true"`
}

func (FamilyMemberModel) TableName() string {
	return "family_members"
}

type DogModel struct {
	ID        string `gorm:"column:id;type:uuid;primaryKey"`
	FamilyID  string `gorm:"column:family_id;type:uuid;not null;index:idx_dogs_family_id"`
	Name      string `gorm:"column:name;type:varchar(255);not null"`
	IsDeleted bool   `gorm:"column:is_deleted;type:boolean;not null;default:false"`
}

func (DogModel) TableName() string {
	return "dogs"
}

func (m *FamilyMemberModel) ToEntity() (domain.Member, error) {
	userID, err := domain.UserIDFromString(m.UserID)
	if err != nil {
		return domain.Member{}, err
	}

	token := ""
	if m.DeviceToken != nil {
		token = *m.DeviceToken
	}

	return domain.NewMember(userID, token, m.IsNotificationEnabled), nil
}

func (m *FamilyModel) ToEntity(members []FamilyMemberModel) (*domain.Household, error) {
	familyID, err := domain.FamilyIDFromString(m.ID)
	if err != nil {
		return nil, err
	}

	entities := make([]domain.Member, 0, len(members))
	for _, mm := range members {
		member, err := mm.ToEntity()
		if err != nil {
			return nil, err
		}

		entities = append(entities, member)
	}

	settings := domain.FollowUpSettings{
		IsEnabled: m.FollowUpIsEnabled,
		Delay:     seconds(m.FollowUpDelay),
	}

	return domain.NewHousehold(familyID, settings, entities), nil
}
