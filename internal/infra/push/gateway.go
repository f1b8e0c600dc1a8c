package push

import (
	"context"
	"errors"
	"time"
)

//go:generate mockgen -source=gateway.go -destination=gateway_mock.go -package=push

// MaxTokensPerRequest is the FCM multicast limit.
const MaxTokensPerRequest = 500

var (
	ErrNoTokens      = errors.New("no device tokens")
	ErrTooManyTokens = errors.New("too many device tokens for a single request")
)

type Notification struct {
	Tokens   []string
	Title    string
	Body     string
	Category string
	// Data is delivered alongside the alert for the app to route on.
	Data map[string]string
	// TTL bounds how long the gateway keeps trying to deliver.
	TTL time.Duration
}

type TokenResult struct {
	Token string
	Err   error
}

type Result struct {
	SuccessCount int
	FailureCount int
	Tokens       []TokenResult
}

// Failed returns the tokens the gateway rejected.
func (r Result) Failed() []TokenResult {
	failed := make([]TokenResult, 0, r.FailureCount)
	for _, t := range r.Tokens {
		if t.Err != nil {
			failed = append(failed, t)
		}
	}

	return failed
}

type Gateway interface {
	// Send delivers one notification to at most MaxTokensPerRequest tokens.
	// Rejected tokens are reported in the result, not as an error.
	Send(ctx context.Context, n Notification) (Result, error)
}

func validate(n Notification) error {
	if len(n.Tokens) == 0 {
		return ErrNoTokens
	}

	if len(n.Tokens) > MaxTokensPerRequest {
		return ErrTooManyTokens
	}

	return nil
}
