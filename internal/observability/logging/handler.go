package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

type HandlerConfig struct {
	Level         slog.Level
	Service       ServiceInfo
	Environment   Environment
	DefaultModule Module
	GCPProjectID  string
}

// ContextHandler adds request scoped attributes carried by the context.
type ContextHandler struct {
	inner slog.Handler
	cfg   HandlerConfig
}

func NewHandler(w io.Writer, cfg HandlerConfig) *ContextHandler {
	inner := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.Level}).
		WithAttrs([]slog.Attr{
			slog.Group("service",
				slog.String("name", cfg.Service.Name),
				slog.String("version", cfg.Service.Version),
				slog.String("revision", cfg.Service.Revision),
			),
			slog.String("env", string(cfg.Environment)),
		})

	return &ContextHandler{inner: inner, cfg: cfg}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, record slog.Record) error {
	if id := RequestIDFromContext(ctx); id != "" {
		record.AddAttrs(slog.String("request_id", id))
	}

	module := ModuleFromContext(ctx)
	if module == "" {
		module = h.cfg.DefaultModule
	}

	if module != "" {
		record.AddAttrs(slog.String("module", string(module)))
	}

	record.AddAttrs(traceAttrs(ctx, h.cfg.GCPProjectID)...)

	return h.inner.Handle(ctx, record)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{inner: h.inner.WithAttrs(attrs), cfg: h.cfg}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{inner: h.inner.WithGroup(name), cfg: h.cfg}
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
