package pubsub

import (
	"context"
	"io"
)

//go:generate mockgen -source=publisher.go -destination=publisher_mock.go -package=pubsub

const (
	TopicReminderFired = "reminder.fired"

	streamName = "REMINDER_EVENTS"
)

type Publisher interface {
	PublishReminderFired(ctx context.Context, event ReminderFiredEvent) error
	io.Closer
}
