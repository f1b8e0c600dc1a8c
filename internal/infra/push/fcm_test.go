package push

import (
	"context"
	"errors"
	"testing"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	got  *messaging.MulticastMessage
	resp *messaging.BatchResponse
	err  error
}

func (f *fakeSender) SendEachForMulticast(_ context.Context, m *messaging.MulticastMessage) (*messaging.BatchResponse, error) {
	f.got = m

	return f.resp, f.err
}

func TestFCMGatewaySendPartialFailure(t *testing.T) {
	now := time.Date(2025, 1, 17, 9, 0, 0, 0, time.UTC)
	rejected := errors.New("registration-token-not-registered")

	sender := &fakeSender{
		resp: &messaging.BatchResponse{
			SuccessCount: 2,
			FailureCount: 1,
			Responses: []*messaging.SendResponse{
				{Success: true, MessageID: "m1"},
				{Success: false, Error: rejected},
				{Success: true, MessageID: "m3"},
			},
		},
	}
	gw := newFCMGateway(sender, func() time.Time { return now })

	result, err := gw.Send(context.Background(), Notification{
		Tokens:   []string{"a", "b", "c"},
		Title:    "Reminder for Pochi",
		Body:     "Walk is due",
		Category: "reminder",
		Data:     map[string]string{"reminder_id": "r1"},
		TTL:      time.Hour,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 1, result.FailureCount)
	require.Len(t, result.Failed(), 1)
	assert.Equal(t, "b", result.Failed()[0].Token)
	assert.ErrorIs(t, result.Failed()[0].Err, rejected)

	msg := sender.got
	require.NotNil(t, msg)
	assert.Equal(t, []string{"a", "b", "c"}, msg.Tokens)
	assert.Equal(t, "Reminder for Pochi", msg.Notification.Title)
	assert.Equal(t, "reminder", msg.Data["category"])
	assert.Equal(t, "r1", msg.Data["reminder_id"])
	require.NotNil(t, msg.Android.TTL)
	assert.Equal(t, time.Hour, *msg.Android.TTL)
	assert.Equal(t, "1737108000", msg.APNS.Headers["apns-expiration"])
	assert.Equal(t, "reminder", msg.APNS.Payload.Aps.Category)
}

func TestFCMGatewaySendValidation(t *testing.T) {
	gw := newFCMGateway(&fakeSender{}, time.Now)

	_, err := gw.Send(context.Background(), Notification{})
	assert.ErrorIs(t, err, ErrNoTokens)

	_, err = gw.Send(context.Background(), Notification{Tokens: make([]string, MaxTokensPerRequest+1)})
	assert.ErrorIs(t, err, ErrTooManyTokens)
}

func TestFCMGatewaySendTransportError(t *testing.T) {
	gw := newFCMGateway(&fakeSender{err: errors.New("unavailable")}, time.Now)

	_, err := gw.Send(context.Background(), Notification{Tokens: []string{"a"}})

	assert.Error(t, err)
}

func TestFCMGatewayWithoutTTL(t *testing.T) {
	sender := &fakeSender{resp: &messaging.BatchResponse{SuccessCount: 1, Responses: []*messaging.SendResponse{{Success: true}}}}
	gw := newFCMGateway(sender, time.Now)

	_, err := gw.Send(context.Background(), Notification{Tokens: []string{"a"}, Category: "general"})

	require.NoError(t, err)
	assert.Nil(t, sender.got.Android.TTL)
	assert.Empty(t, sender.got.APNS.Headers)
}
