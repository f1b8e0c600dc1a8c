package pubsub

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KasumiMercury/primind-reminder-alarm/internal/observability/tracing"
)

// ReminderFiredEvent is emitted after an alarm has been handed to the dispatcher.
type ReminderFiredEvent struct {
	ReminderID   string
	FamilyID     string
	DogID        string
	ReminderType string
	DueAt        time.Time
	FiredAt      time.Time
	// NextFireAt is nil when the reminder has no further occurrence.
	NextFireAt *time.Time
}

func (e ReminderFiredEvent) Marshal() ([]byte, error) {
	fields := map[string]any{
		"reminder_id":   e.ReminderID,
		"family_id":     e.FamilyID,
		"dog_id":        e.DogID,
		"reminder_type": e.ReminderType,
		"due_at":        e.DueAt.UTC().Format(time.RFC3339Nano),
		"fired_at":      e.FiredAt.UTC().Format(time.RFC3339Nano),
		"next_fire_at":  nil,
	}
	if e.NextFireAt != nil {
		fields["next_fire_at"] = e.NextFireAt.UTC().Format(time.RFC3339Nano)
	}

	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to build event payload: %w", err)
	}

	return protojson.Marshal(s)
}

func newFiredMessage(ctx context.Context, event ReminderFiredEvent) (*message.Message, error) {
	payload, err := event.Marshal()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_type", TopicReminderFired)
	msg.Metadata.Set("reminder_id", event.ReminderID)
	msg.Metadata.Set("family_id", event.FamilyID)

	tracing.InjectToMetadata(ctx, msg.Metadata)

	return msg, nil
}
