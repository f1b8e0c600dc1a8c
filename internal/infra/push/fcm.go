package push

import (
	"context"
	"fmt"
	"strconv"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

type multicastSender interface {
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

type FCMGateway struct {
	client multicastSender
	now    func() time.Time
}

type FCMConfig struct {
	CredentialsFile string
}

func NewFCMGateway(ctx context.Context, cfg FCMConfig) (*FCMGateway, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	return newFCMGateway(client, time.Now), nil
}

func newFCMGateway(client multicastSender, now func() time.Time) *FCMGateway {
	return &FCMGateway{
		client: client,
		now:    now,
	}
}

func (g *FCMGateway) Send(ctx context.Context, n Notification) (Result, error) {
	if err := validate(n); err != nil {
		return Result{}, err
	}

	resp, err := g.client.SendEachForMulticast(ctx, g.buildMessage(n))
	if err != nil {
		return Result{}, fmt.Errorf("failed to send multicast: %w", err)
	}

	result := Result{
		SuccessCount: resp.SuccessCount,
		FailureCount: resp.FailureCount,
		Tokens:       make([]TokenResult, 0, len(n.Tokens)),
	}

	for i, token := range n.Tokens {
		tr := TokenResult{Token: token}
		if i < len(resp.Responses) && resp.Responses[i] != nil && !resp.Responses[i].Success {
			tr.Err = resp.Responses[i].Error
			if tr.Err == nil {
				tr.Err = fmt.Errorf("token rejected")
			}
		}

		result.Tokens = append(result.Tokens, tr)
	}

	return result, nil
}

func (g *FCMGateway) buildMessage(n Notification) *messaging.MulticastMessage {
	data := make(map[string]string, len(n.Data)+1)
	for k, v := range n.Data {
		data[k] = v
	}
	data["category"] = n.Category

	msg := &messaging.MulticastMessage{
		Tokens: n.Tokens,
		Data:   data,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Category: n.Category,
					Sound:    "default",
				},
			},
		},
	}

	if n.TTL > 0 {
		ttl := n.TTL
		msg.Android.TTL = &ttl
		msg.APNS.Headers = map[string]string{
			"apns-expiration": strconv.FormatInt(g.now().Add(n.TTL).Unix(), 10),
		}
	}

	return msg
}
