package domain

import (
	"time"
)

// Member is a household user as seen by the alarm engine.
type Member struct {
	userID                UserID
	deviceToken           string
	isNotificationEnabled bool
}

func NewMember(userID UserID, deviceToken string, isNotificationEnabled bool) Member {
	return Member{
		userID:                userID,
		deviceToken:           deviceToken,
		isNotificationEnabled: isNotificationEnabled,
	}
}

func (m Member) UserID() UserID {
	return m.userID
}

func (m Member) DeviceToken() string {
	return m.deviceToken
}

func (m Member) IsNotificationEnabled() bool {
	return m.isNotificationEnabled
}

// CanReceive reports whether the member has a registered device and wants alerts.
func (m Member) CanReceive() bool {
	return m.isNotificationEnabled && m.deviceToken != ""
}

type FollowUpSettings struct {
	IsEnabled bool
	Delay     time.Duration
}

func (s FollowUpSettings) Active() bool {
	return s.IsEnabled && s.Delay > 0
}

type Household struct {
	familyID FamilyID
	followUp FollowUpSettings
	members  []Member
}

func NewHousehold(familyID FamilyID, followUp FollowUpSettings, members []Member) *Household {
	return &Household{
		familyID: familyID,
		followUp: followUp,
		members:  members,
	}
}

func (h *Household) FamilyID() FamilyID {
	return h.familyID
}

func (h *Household) FollowUp() FollowUpSettings {
	return h.followUp
}

func (h *Household) Members() []Member {
	return h.members
}

// Recipients returns the members eligible for an alert, leaving out exclude when set.
func (h *Household) Recipients(exclude *UserID) []Member {
	recipients := make([]Member, 0, len(h.members))
	for _, m := range h.members {
		if !m.CanReceive() {
			continue
		}

		if exclude != nil && m.userID.Equals(*exclude) {
			continue
		}

		recipients = append(recipients, m)
	}

	return recipients
}
