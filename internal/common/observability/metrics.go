package observability

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability owns the OpenTelemetry meter provider. Instruments are
// exported through the default Prometheus registry next to the promauto counters.
type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	queryCounter  otelmetric.Int64Counter
	queryDuration otelmetric.Float64Histogram
	lookupCounter otelmetric.Int64Counter
}

type Logger interface {
	Warn(msg string, fields map[string]interface{})
}

// New builds the meter provider. Exporter failures leave a no-op value so
// callers never need to check for nil instruments.
func New(serviceName string, log Logger) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		if log != nil {
			log.Warn("failed to create Prometheus exporter", map[string]interface{}{"error": err})
		}
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	queryCounter, _ := meter.Int64Counter(
		"assistant.queries",
		otelmetric.WithDescription("Number of assistant queries processed"),
	)

	queryDuration, _ := meter.Float64Histogram(
		"assistant.query.duration",
		otelmetric.WithDescription("Assistant query processing duration"),
		otelmetric.WithUnit("ms"),
	)

	lookupCounter, _ := meter.Int64Counter(
		"college.lookups",
		otelmetric.WithDescription("Number of college lookups"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		queryCounter:  queryCounter,
		queryDuration: queryDuration,
		lookupCounter: lookupCounter,
	}
}

// Noop returns an Observability that records nothing.
func Noop() *Observability {
	return &Observability{}
}

func (o *Observability) RecordQuery(ctx context.Context, duration time.Duration, outcome string, searched bool) {
	if o == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("outcome", outcome),
		attribute.Bool("searched", searched),
	)
	if o.queryCounter != nil {
		o.queryCounter.Add(ctx, 1, attrs)
	}
	if o.queryDuration != nil {
		o.queryDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	}
}

func (o *Observability) RecordLookup(ctx context.Context, outcome string) {
	if o == nil || o.lookupCounter == nil {
		return
	}
	o.lookupCounter.Add(ctx, 1, otelmetric.WithAttributes(attribute.String("outcome", outcome)))
}

// Handler serves the Prometheus scrape endpoint.
func (o *Observability) Handler() http.Handler {
	return promhttp.Handler()
}

func (o *Observability) Shutdown() {
	if o == nil || o.meterProvider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = o.meterProvider.Shutdown(ctx)
}
