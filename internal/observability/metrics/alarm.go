package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/KasumiMercury/primind-reminder-alarm"

// AlarmMetrics holds the scheduler and dispatcher instruments. A nil
// *AlarmMetrics records nothing.
type AlarmMetrics struct {
	meter  metric.Meter
	fired  metric.Int64Counter
	sent   metric.Int64Counter
	failed metric.Int64Counter
}

func NewAlarmMetrics(mp metric.MeterProvider) (*AlarmMetrics, error) {
	meter := mp.Meter(meterName)

	fired, err := meter.Int64Counter("reminder.fired",
		metric.WithDescription("Reminder alarms that fired"),
	)
	if err != nil {
		return nil, err
	}

	sent, err := meter.Int64Counter("notification.sent",
		metric.WithDescription("Push notifications accepted by the gateway"),
	)
	if err != nil {
		return nil, err
	}

	failed, err := meter.Int64Counter("notification.failed",
		metric.WithDescription("Push notifications rejected or not delivered"),
	)
	if err != nil {
		return nil, err
	}

	return &AlarmMetrics{
		meter:  meter,
		fired:  fired,
		sent:   sent,
		failed: failed,
	}, nil
}

func (m *AlarmMetrics) RecordFired(ctx context.Context, reminderType string) {
	if m == nil {
		return
	}

	m.fired.Add(ctx, 1, metric.WithAttributes(attribute.String("reminder.type", reminderType)))
}

// RecordDelivery counts per token outcomes; kind is "primary" or "follow_up".
func (m *AlarmMetrics) RecordDelivery(ctx context.Context, kind string, sent, failed int) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("notification.kind", kind))
	if sent > 0 {
		m.sent.Add(ctx, int64(sent), attrs)
	}

	if failed > 0 {
		m.failed.Add(ctx, int64(failed), attrs)
	}
}

// ObservePending registers a gauge reporting the number of scheduled jobs.
func (m *AlarmMetrics) ObservePending(pending func() int) error {
	if m == nil {
		return nil
	}

	_, err := m.meter.Int64ObservableGauge("scheduler.jobs.pending",
		metric.WithDescription("Reminder jobs waiting to fire"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(int64(pending()))

			return nil
		}),
	)

	return err
}
