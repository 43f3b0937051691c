package metrics

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/uber-go/tally/v6"
	"github.com/uber-go/tally/v6/prometheus"
	"go.uber.org/zap"
)

// NewMetricsReporter creates a root scope reporting to Prometheus
// and serves it on /metrics at metricsPort.
func NewMetricsReporter(logger *zap.Logger, serviceName string, metricsPort int) (scope tally.Scope, closer io.Closer) {
	reporter := prometheus.NewReporter(prometheus.Options{})
	scope, closer = tally.NewRootScope(tally.ScopeOptions{
		Tags:            map[string]string{"service": serviceName},
		CachedReporter:  reporter,
		SanitizeOptions: &prometheus.DefaultSanitizerOpts,
	}, 10*time.Second)
	mux := http.NewServeMux()
	mux.Handle("/metrics", reporter.HTTPHandler())
	go func() {
		if err := http.ListenAndServe(fmt.Sprintf(":%d", metricsPort), mux); err != nil {
			logger.Fatal("Failed to start metrics handler", zap.Error(err))
		}
	}()

	scope.Counter("service_started").Inc(1)
	return scope, closer
}

// EndpointMetrics defines an endpoint metrics.
type EndpointMetrics struct {
	Calls                 tally.Counter
	InvalidArgumentErrors tally.Counter
	NotFoundErrors        tally.Counter
	UnauthenticatedErrors tally.Counter
	// PermissionDeniedErrors counts callers acting outside their collective.
	PermissionDeniedErrors   tally.Counter
	FailedPreconditionErrors tally.Counter
	InternalErrors           tally.Counter
	Successes                tally.Counter
}

// NewEndpointMetrics creates a new endpoint metrics.
func NewEndpointMetrics(scope tally.Scope, endpoint string) *EndpointMetrics {
	scope = scope.Tagged(map[string]string{
		"component": "handler",
		"endpoint":  endpoint,
	})
	return &EndpointMetrics{
		Calls: scope.Counter("calls"),
		InvalidArgumentErrors: scope.Tagged(map[string]string{
			"error": "invalid_argument",
		}).Counter("error"),
		NotFoundErrors: scope.Tagged(map[string]string{
			"error": "not_found",
		}).Counter("error"),
		UnauthenticatedErrors: scope.Tagged(map[string]string{
			"error": "unauthenticated",
		}).Counter("error"),
		PermissionDeniedErrors: scope.Tagged(map[string]string{
			"error": "permission_denied",
		}).Counter("error"),
		FailedPreconditionErrors: scope.Tagged(map[string]string{
			"error": "failed_precondition",
		}).Counter("error"),
		InternalErrors: scope.Tagged(map[string]string{
			"error": "internal",
		}).Counter("error"),
		Successes: scope.Counter("success"),
	}
}

// PipelineMetrics defines enrichment pipeline metrics.
type PipelineMetrics struct {
	Runs     tally.Counter
	Enriched tally.Counter
	Errored  tally.Counter
	Skipped  tally.Counter
	Duration tally.Timer
}

// NewPipelineMetrics creates metrics for the enrichment pipeline of the given kind.
func NewPipelineMetrics(scope tally.Scope, kind string) *PipelineMetrics {
	scope = scope.Tagged(map[string]string{
		"component": "pipeline",
		"kind":      kind,
	})
	return &PipelineMetrics{
		Runs:     scope.Counter("runs"),
		Enriched: scope.Counter("items_enriched"),
		Errored:  scope.Counter("items_errored"),
		Skipped:  scope.Counter("items_skipped"),
		Duration: scope.Timer("run_duration"),
	}
}

// CallGatewayMetrics defines model call gateway metrics.
type CallGatewayMetrics struct {
	Calls    tally.Counter
	Failures tally.Counter
	InFlight tally.Gauge
	Waiting  tally.Gauge
	Latency  tally.Timer
}

// NewCallGatewayMetrics creates call gateway metrics.
func NewCallGatewayMetrics(scope tally.Scope) *CallGatewayMetrics {
	scope = scope.Tagged(map[string]string{"component": "callgateway"})
	return &CallGatewayMetrics{
		Calls:    scope.Counter("calls"),
		Failures: scope.Counter("failures"),
		InFlight: scope.Gauge("in_flight"),
		Waiting:  scope.Gauge("waiting"),
		Latency:  scope.Timer("latency"),
	}
}
