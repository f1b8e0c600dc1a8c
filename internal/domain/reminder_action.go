package domain

import (
	"fmt"
	"strings"
)

type ReminderAction string

const (
	ActionFeed            ReminderAction = "feed"
	ActionFreshWater      ReminderAction = "freshWater"
	ActionTreat           ReminderAction = "treat"
	ActionPotty           ReminderAction = "potty"
	ActionWalk            ReminderAction = "walk"
	ActionBrush           ReminderAction = "brush"
	ActionBathe           ReminderAction = "bathe"
	ActionMedicine        ReminderAction = "medicine"
	ActionTrainingSession ReminderAction = "trainingSession"
	ActionDoctor          ReminderAction = "doctor"
	ActionCustom          ReminderAction = "custom"
)

var actionDisplayNames = map[ReminderAction]string{
	ActionFeed:            "Feed",
	ActionFreshWater:      "Fresh Water",
	ActionTreat:           "Treat",
	ActionPotty:           "Potty",
	ActionWalk:            "Walk",
	ActionBrush:           "Brush",
	ActionBathe:           "Bathe",
	ActionMedicine:        "Medicine",
	ActionTrainingSession: "Training Session",
	ActionDoctor:          "Doctor Visit",
	ActionCustom:          "Custom",
}

func NewReminderAction(a string) (ReminderAction, error) {
	action := ReminderAction(a)
	if _, ok := actionDisplayNames[action]; !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidReminderAction, a)
	}

	return action, nil
}

// DisplayName returns the user facing name. customName is only used for the custom action.
func (a ReminderAction) DisplayName(customName string) string {
	if a == ActionCustom {
		if name := strings.TrimSpace(customName); name != "" {
			return name
		}
	}

	if name, ok := actionDisplayNames[a]; ok {
		return name
	}

	return string(a)
}
