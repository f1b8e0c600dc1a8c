package domain

import (
	"context"
)

//go:generate mockgen -source=family_repository.go -destination=family_repository_mock.go -package=domain

type FamilyRepository interface {
	FindHousehold(ctx context.Context, familyID FamilyID) (*Household, error)
	FindDogName(ctx context.Context, dogID DogID) (string, error)
}
