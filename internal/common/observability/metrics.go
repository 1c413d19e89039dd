package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability records reminder counts and durations through the OTel
// meter, exported on the default Prometheus registry.
type Observability struct {
	meterProvider   *metric.MeterProvider
	meter           otelmetric.Meter
	reminderCounter otelmetric.Int64Counter
	reminderLatency otelmetric.Float64Histogram
}

// New returns a usable Observability even when the exporter cannot be
// created; recording is then a no-op and err says why.
func New(serviceName string) (*Observability, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return &Observability{}, err
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	reminderCounter, _ := meter.Int64Counter(
		"reminders.processed",
		otelmetric.WithDescription("Number of reminder requests processed"),
	)

	reminderLatency, _ := meter.Float64Histogram(
		"reminders.duration",
		otelmetric.WithDescription("Reminder request processing duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider:   provider,
		meter:           meter,
		reminderCounter: reminderCounter,
		reminderLatency: reminderLatency,
	}, nil
}

// NewNoop returns an Observability that records nothing.
func NewNoop() *Observability {
	return &Observability{}
}

func (o *Observability) RecordReminderProcessed(ctx context.Context, status string) {
	if o == nil || o.reminderCounter == nil {
		return
	}
	o.reminderCounter.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("status", status),
	))
}

func (o *Observability) RecordReminderDuration(ctx context.Context, duration time.Duration, status string) {
	if o == nil || o.reminderLatency == nil {
		return
	}
	o.reminderLatency.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
		attribute.String("status", status),
	))
}

func (o *Observability) Shutdown(ctx context.Context) error {
	if o == nil || o.meterProvider == nil {
		return nil
	}
	return o.meterProvider.Shutdown(ctx)
}
