package domain

import (
	"github.com/google/uuid"
)

// DogID identifies the dog a reminder belongs to.
type DogID struct {
	value uuid.UUID
}

func DogIDFromString(s string) (DogID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return DogID{}, ErrInvalidDogID
	}

	return DogID{value: id}, nil
}

func DogIDFromUUID(id uuid.UUID) DogID {
	return DogID{value: id}
}

func (d DogID) String() string {
	return d.value.String()
}

func (d DogID) IsZero() bool {
	return d.value == uuid.Nil
}

func (d DogID) Equals(other DogID) bool {
	return d.value == other.value
}

// FamilyID identifies a household.
type FamilyID struct {
	value uuid.UUID
}

func FamilyIDFromString(s string) (FamilyID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return FamilyID{}, ErrInvalidFamilyID
	}

	return FamilyID{value: id}, nil
}

func FamilyIDFromUUID(id uuid.UUID) FamilyID {
	return FamilyID{value: id}
}

func (f FamilyID) String() string {
	return f.value.String()
}

func (f FamilyID) IsZero() bool {
	return f.value == uuid.Nil
}

func (f FamilyID) Equals(other FamilyID) bool {
	return f.value == other.value
}

type UserID struct {
	value uuid.UUID
}

func UserIDFromString(s string) (UserID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, ErrInvalidUserID
	}

	return UserID{value: id}, nil
}

func UserIDFromUUID(id uuid.UUID) UserID {
	return UserID{value: id}
}

func (u UserID) String() string {
	return u.value.String()
}

func (u UserID) IsZero() bool {
	return u.value == uuid.Nil
}

func (u UserID) Equals(other UserID) bool {
	return u.value == other.value
}
