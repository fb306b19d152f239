package infra

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics (status API)
	HttpRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	})
	HttpRequestErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "http_request_errors_total",
		Help: "Total number of HTTP request errors",
	})
	RequestDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "atm_request_duration_seconds",
		Help:    "Duration of HTTP request processing in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// Simulation metrics
	MessagesProducedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "atm_messages_produced_total",
		Help: "Total number of telemetry messages pushed by aircraft",
	})
	MessagesProcessedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "atm_messages_processed_total",
		Help: "Total number of data messages accepted by the tower",
	})
	MessagesRejectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "atm_messages_rejected_total",
		Help: "Total number of data messages rejected by validation",
	})
	SignOffsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "atm_sign_offs_total",
		Help: "Total number of TERMINATED sentinels observed by the tower",
	})
	ChannelDepth = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "atm_channel_depth",
		Help: "Messages currently buffered in the shared channel",
	})
	ActiveAircraft = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "atm_active_aircraft",
		Help: "Number of running aircraft goroutines",
	})
	LogAppendDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "atm_log_append_duration_seconds",
		Help:    "Duration of flight log append operations in seconds",
		Buckets: prometheus.DefBuckets,
	})

	registerOnce      sync.Once
	metricsServerOnce sync.Once
)

func init() {
	InitMetrics()
}

// InitMetrics registers all Prometheus collectors used by the service.
func InitMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HttpRequestsTotal,
			HttpRequestErrorsTotal,
			RequestDurationSeconds,
			MessagesProducedTotal,
			MessagesProcessedTotal,
			MessagesRejectedTotal,
			SignOffsTotal,
			ChannelDepth,
			ActiveAircraft,
			LogAppendDurationSeconds,
		)
	})
}

// Handler returns an HTTP handler that exposes the registered Prometheus
// metrics.
func Handler() http.Handler {
	InitMetrics()
	return promhttp.Handler()
}

// StartMetricsServer exposes Prometheus metrics on the configured port
// under /metrics. It starts at most one server per process.
func StartMetricsServer(logger *Logger, port string) {
	InitMetrics()
	if port == "" {
		return
	}
	metricsServerOnce.Do(func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())

		go func() {
			if err := http.ListenAndServe(":"+port, mux); err != nil {
				if logger != nil {
					logger.Printf(context.Background(), "metrics server error: %v", err)
				}
			}
		}()
	})
}

// HTTPMiddleware instruments HTTP handlers with request/latency metrics.
func HTTPMiddleware(pathResolver func(*http.Request) string) func(http.Handler) http.Handler {
	InitMetrics()
	if pathResolver == nil {
		pathResolver = func(r *http.Request) string {
			if r == nil {
				return "unknown"
			}
			return r.URL.Path
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r == nil {
				HttpRequestErrorsTotal.Inc()
				http.Error(w, "invalid request", http.StatusBadRequest)
				return
			}

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			defer func() {
				RequestDurationSeconds.Observe(time.Since(start).Seconds())
				HttpRequestsTotal.Inc()

				if recorder.Status() >= http.StatusBadRequest {
					HttpRequestErrorsTotal.Inc()
				}
			}()

			next.ServeHTTP(recorder, r)
		})
	}
}

// IncMessagesProduced increments the producer-side message counter.
func IncMessagesProduced() {
	InitMetrics()
	MessagesProducedTotal.Inc()
}

// MessageProcessed tracks a data message accepted by the tower.
func MessageProcessed() {
	InitMetrics()
	MessagesProcessedTotal.Inc()
}

// MessageRejected tracks a data message that failed validation.
func MessageRejected() {
	InitMetrics()
	MessagesRejectedTotal.Inc()
}

// SignOffObserved tracks a TERMINATED sentinel drained by the tower.
func SignOffObserved() {
	InitMetrics()
	SignOffsTotal.Inc()
}

// SetChannelDepth records the current fill level of the shared channel.
func SetChannelDepth(depth int) {
	InitMetrics()
	ChannelDepth.Set(float64(depth))
}

// AircraftStarted increments the active aircraft gauge.
func AircraftStarted() {
	InitMetrics()
	ActiveAircraft.Inc()
}

// AircraftFinished decrements the active aircraft gauge.
func AircraftFinished() {
	InitMetrics()
	ActiveAircraft.Dec()
}

// RecordLogAppend tracks a completed flight log append.
func RecordLogAppend(duration time.Duration) {
	InitMetrics()
	if duration < 0 {
		duration = 0
	}
	LogAppendDurationSeconds.Observe(duration.Seconds())
}

// statusRecorder captures the response status code for instrumentation.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Status() int {
	return r.status
}
