package domain

import (
	"fmt"
	"unicode/utf8"
)

const (
	MaxAlertTitleLength = 32
	MaxAlertBodyLength  = 128
)

type Category string

const (
	CategoryReminder  Category = "reminder"
	CategoryLog       Category = "log"
	CategoryGeneral   Category = "general"
	CategoryTerminate Category = "terminate"
)

type Alert struct {
	title    string
	body     string
	category Category
}

// NewAlert truncates title and body to their maximum lengths in characters.
func NewAlert(title, body string, category Category) Alert {
	return Alert{
		title:    Truncate(title, MaxAlertTitleLength),
		body:     Truncate(body, MaxAlertBodyLength),
		category: category,
	}
}

func ReminderAlert(dogName string, r *Reminder) Alert {
	return NewAlert(
		fmt.Sprintf("Reminder for %s", dogName),
		fmt.Sprintf("%s is due", r.DisplayActionName()),
		CategoryReminder,
	)
}

func FollowUpAlert(dogName string, r *Reminder) Alert {
	return NewAlert(
		fmt.Sprintf("Follow up for %s", dogName),
		fmt.Sprintf("%s is still waiting for someone to take care of it", r.DisplayActionName()),
		CategoryReminder,
	)
}

func (a Alert) Title() string {
	return a.title
}

func (a Alert) Body() string {
	return a.body
}

func (a Alert) Category() Category {
	return a.category
}

// Truncate cuts s to at most limit runes without splitting a multi-byte character.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}

	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}

	return s
}
