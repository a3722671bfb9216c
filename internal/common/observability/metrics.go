// internal/common/observability/metrics.go
package observability

import (
	"context"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"jobboard-api/internal/common/config"
	"jobboard-api/internal/common/logger"
)

// Observability bundles the OpenTelemetry meter and tracer used by the store
// and the analytics reporter.
type Observability struct {
	meterProvider  *metric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	meter          otelmetric.Meter
	tracer         trace.Tracer

	queryCount    otelmetric.Int64Counter
	queryDuration otelmetric.Float64Histogram
	reportTime    otelmetric.Float64Histogram
}

// New wires the OTel Prometheus exporter into reg (the default registerer when
// nil) and, when tracing is enabled, a Jaeger span exporter.
func New(serviceName string, tracing config.TracingConfig, reg promclient.Registerer, log logger.Logger) *Observability {
	if reg == nil {
		reg = promclient.DefaultRegisterer
	}

	o := NewNoop()

	exporter, err := prometheus.New(prometheus.WithRegisterer(reg))
	if err != nil {
		log.Warn("prometheus exporter unavailable, metrics disabled", map[string]interface{}{"error": err.Error()})
	} else {
		provider := metric.NewMeterProvider(metric.WithReader(exporter))
		otel.SetMeterProvider(provider)
		o.meterProvider = provider
		o.meter = provider.Meter(serviceName)
	}

	if tracing.Enabled {
		tp, err := newTracerProvider(serviceName, tracing)
		if err != nil {
			log.Warn("jaeger exporter unavailable, tracing disabled", map[string]interface{}{"error": err.Error()})
		} else {
			otel.SetTracerProvider(tp)
			o.tracerProvider = tp
			o.tracer = tp.Tracer(serviceName)
		}
	}

	o.initInstruments()
	return o
}

// NewNoop returns an Observability that records nothing.
func NewNoop() *Observability {
	o := &Observability{
		meter:  metricnoop.NewMeterProvider().Meter("noop"),
		tracer: tracenoop.NewTracerProvider().Tracer("noop"),
	}
	o.initInstruments()
	return o
}

func (o *Observability) initInstruments() {
	o.queryCount, _ = o.meter.Int64Counter(
		"store.query.count",
		otelmetric.WithDescription("Number of document store requests"),
	)
	o.queryDuration, _ = o.meter.Float64Histogram(
		"store.query.duration",
		otelmetric.WithDescription("Document store request duration"),
		otelmetric.WithUnit("ms"),
	)
	o.reportTime, _ = o.meter.Float64Histogram(
		"analytics.report.duration",
		otelmetric.WithDescription("Time to assemble the analytics report"),
		otelmetric.WithUnit("ms"),
	)
}

// StartSpan opens a span; callers must End it.
func (o *Observability) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return o.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (o *Observability) RecordStoreQuery(ctx context.Context, operation, index string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("index", index),
		attribute.String("status", status),
	)
	o.queryCount.Add(ctx, 1, attrs)
	o.queryDuration.Record(ctx, float64(duration.Microseconds())/1000, attrs)
}

func (o *Observability) RecordReport(ctx context.Context, duration time.Duration, status string) {
	o.reportTime.Record(ctx, float64(duration.Microseconds())/1000, otelmetric.WithAttributes(
		attribute.String("status", status),
	))
}

func (o *Observability) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if o.tracerProvider != nil {
		_ = o.tracerProvider.Shutdown(ctx)
	}
	if o.meterProvider != nil {
		_ = o.meterProvider.Shutdown(ctx)
	}
}
