package push

import (
	"context"
	"log/slog"
)

// LogGateway writes notifications to the log instead of delivering them.
type LogGateway struct{}

func NewLogGateway() *LogGateway {
	return &LogGateway{}
}

func (g *LogGateway) Send(ctx context.Context, n Notification) (Result, error) {
	if err := validate(n); err != nil {
		return Result{}, err
	}

	slog.InfoContext(ctx, "push notification (log only)",
		slog.String("event", "push.log"),
		slog.Int("tokens", len(n.Tokens)),
		slog.String("title", n.Title),
		slog.String("body", n.Body),
		slog.String("category", n.Category),
		slog.Duration("ttl", n.TTL),
	)

	result := Result{
		SuccessCount: len(n.Tokens),
		Tokens:       make([]TokenResult, 0, len(n.Tokens)),
	}
	for _, token := range n.Tokens {
		result.Tokens = append(result.Tokens, TokenResult{Token: token})
	}

	return result, nil
}
