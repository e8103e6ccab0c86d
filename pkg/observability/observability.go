package observability

import (
	"context"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// Domain counters exposed on /metrics.
var (
	// ChatTurnsTotal counts completed chat turns.
	ChatTurnsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "medagent_chat_turns_total",
		Help: "Number of chat turns processed",
	})

	// UrgencyClassificationsTotal counts classifications by level.
	UrgencyClassificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "medagent_urgency_classifications_total",
		Help: "Urgency classifications by level",
	}, []string{"level"})

	// GatewayFailuresTotal counts model gateway errors.
	GatewayFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "medagent_model_gateway_failures_total",
		Help: "Number of failed model gateway calls",
	})
)

// SetupTracing initializes OpenTelemetry tracing with stdout exporter (replace with OTLP in prod)
func SetupTracing(serviceName string) func() {
	exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		log.Fatalf("failed to initialize stdouttrace exporter: %v", err)
	}
	res, _ := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
	provider := trace.NewTracerProvider(
		trace.WithBatcher(exp),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	return func() { _ = provider.Shutdown(context.Background()) }
}

// SetupPrometheusMetrics initializes the Prometheus exporter and exposes /metrics
func SetupPrometheusMetrics(addr string) *metric.MeterProvider {
	exp, err := otelprom.New()
	if err != nil {
		log.Fatalf("failed to initialize prometheus exporter: %v", err)
	}
	mp := metric.NewMeterProvider(metric.WithReader(exp))
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		_ = http.ListenAndServe(addr, mux)
	}()
	return mp
}
