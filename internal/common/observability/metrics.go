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

// Observability records pipeline runs through an OpenTelemetry meter exported
// on the default Prometheus registry. A zero value records nothing.
type Observability struct {
	meterProvider   *metric.MeterProvider
	pipelineRuns    otelmetric.Int64Counter
	pipelineLatency otelmetric.Float64Histogram
}

func New(serviceName string) (*Observability, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return &Observability{}, err
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	runs, err := meter.Int64Counter(
		"chat.pipeline.runs",
		otelmetric.WithDescription("Number of chat pipeline runs"),
	)
	if err != nil {
		return &Observability{meterProvider: provider}, err
	}

	latency, err := meter.Float64Histogram(
		"chat.pipeline.duration",
		otelmetric.WithDescription("Chat pipeline duration"),
		otelmetric.WithUnit("ms"),
	)
	if err != nil {
		return &Observability{meterProvider: provider, pipelineRuns: runs}, err
	}

	return &Observability{
		meterProvider:   provider,
		pipelineRuns:    runs,
		pipelineLatency: latency,
	}, nil
}

// RecordPipelineRun counts one run and its duration under the given status
// and detected language.
func (o *Observability) RecordPipelineRun(ctx context.Context, duration time.Duration, status, language string) {
	if o == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("status", status),
		attribute.String("language", language),
	)
	if o.pipelineRuns != nil {
		o.pipelineRuns.Add(ctx, 1, attrs)
	}
	if o.pipelineLatency != nil {
		o.pipelineLatency.Record(ctx, float64(duration.Milliseconds()), attrs)
	}
}

func (o *Observability) Shutdown(ctx context.Context) error {
	if o == nil || o.meterProvider == nil {
		return nil
	}
	return o.meterProvider.Shutdown(ctx)
}
