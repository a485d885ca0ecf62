package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

var (
	once                        sync.Once
	metricsRouter               *chi.Mux
	ledgerOpDurationHistogram   *prometheus.HistogramVec
	totalStakeGauge             prometheus.Gauge
	dbLatency                   *prometheus.HistogramVec
	bankClientLatency           *prometheus.HistogramVec
	queueSendErrorCounter       prometheus.Counter
	apiRequestDurationHistogram *prometheus.HistogramVec
)

// Init initializes the metrics package.
func Init(metricsPort int) {
	once.Do(func() {
		initMetricsRouter(metricsPort)
		registerMetrics()
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	// Create a custom server with timeout settings
	metricsAddr := fmt.Sprintf(":%d", metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	// Start the server in a separate goroutine
	go func() {
		log.Printf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics initializes and register the Prometheus metrics.
func registerMetrics() {
	defaultHistogramBucketsSeconds := []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

	ledgerOpDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ledger_operation_duration_seconds",
			Help:    "Histogram of stake ledger operation durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"operation", "status"},
	)

	totalStakeGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "total_stake",
			Help: "Current aggregate staked amount in base units.",
		},
	)

	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_latency_seconds",
			Help:    "Histogram of db latency durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	bankClientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bank_client_latency_seconds",
			Help:    "Histogram of bank client durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	// add a counter for the number of errors from the fail to push message into queue
	queueSendErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "queue_send_error_count",
			Help: "The total number of errors when sending messages to the queue",
		},
	)

	apiRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Histogram of incoming api request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "path", "status"},
	)

	prometheus.MustRegister(
		ledgerOpDurationHistogram,
		totalStakeGauge,
		dbLatency,
		bankClientLatency,
		queueSendErrorCounter,
		apiRequestDurationHistogram,
	)
}

func RecordLedgerOpDuration(operation string, duration time.Duration, failure bool) {
	if ledgerOpDurationHistogram == nil {
		return
	}
	status := Success
	if failure {
		status = Error
	}
	ledgerOpDurationHistogram.WithLabelValues(operation, status.String()).
		Observe(duration.Seconds())
}

// SetTotalStake updates the aggregate gauge. The float conversion loses
// precision for very large amounts; the gauge is for dashboards only, the
// exact value lives in the ledger.
func SetTotalStake(total float64) {
	if totalStakeGauge == nil {
		return
	}
	totalStakeGauge.Set(total)
}

func RecordDbLatency(duration time.Duration, method string, failure bool) {
	if dbLatency == nil {
		return
	}
	status := Success
	if failure {
		status = Error
	}
	dbLatency.WithLabelValues(method, status.String()).
		Observe(duration.Seconds())
}

func RecordBankClientLatency(duration time.Duration, method string, failure bool) {
	if bankClientLatency == nil {
		return
	}
	status := Success
	if failure {
		status = Error
	}
	bankClientLatency.WithLabelValues(method, status.String()).
		Observe(duration.Seconds())
}

func RecordQueueSendError() {
	if queueSendErrorCounter == nil {
		return
	}
	queueSendErrorCounter.Inc()
}

func RecordApiRequestDuration(method, path string, statusCode int, duration time.Duration) {
	if apiRequestDurationHistogram == nil {
		return
	}
	apiRequestDurationHistogram.WithLabelValues(method, path, strconv.Itoa(statusCode)).
		Observe(duration.Seconds())
}
