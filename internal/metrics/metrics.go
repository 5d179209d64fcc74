package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "memberhub"

var (
	// Registry holds the application collectors. It is separate from the
	// default registry so tests can build routers repeatedly.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	membershipsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "memberships",
			Name:      "created_total",
			Help:      "Memberships created.",
		},
	)

	membershipConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "memberships",
			Name:      "overlap_conflicts_total",
			Help:      "Membership creations rejected because of an overlapping active membership.",
		},
	)

	paymentsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "payments",
			Name:      "recorded_total",
			Help:      "Payments recorded, by method.",
		},
		[]string{"method"},
	)

	expiryRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "expiry_runs_total",
			Help:      "Expiry sweeps, by outcome.",
		},
		[]string{"success"},
	)

	membershipsExpired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "memberships_expired_total",
			Help:      "Memberships moved from active to expired by the sweep.",
		},
	)

	expiryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "expiry_run_duration_seconds",
			Help:      "Duration of expiry sweeps.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		},
	)

	notificationsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "sent_total",
			Help:      "Notifications persisted, by type.",
		},
		[]string{"type"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		membershipsCreated,
		membershipConflicts,
		paymentsRecorded,
		expiryRuns,
		membershipsExpired,
		expiryDuration,
		notificationsSent,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler exposes the registry for scraping
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// GinMiddleware records request count and latency labelled by route template
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := strings.ToUpper(c.Request.Method)

		httpRequests.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

func RecordMembershipCreated() {
	membershipsCreated.Inc()
}

func RecordMembershipConflict() {
	membershipConflicts.Inc()
}

func RecordPayment(method string) {
	if method == "" {
		method = "unknown"
	}
	paymentsRecorded.WithLabelValues(method).Inc()
}

// RecordExpiryRun records one sweep and how many rows it expired
func RecordExpiryRun(expired int, duration time.Duration, success bool) {
	if duration <= 0 {
		duration = time.Millisecond
	}
	expiryRuns.WithLabelValues(strconv.FormatBool(success)).Inc()
	membershipsExpired.Add(float64(expired))
	expiryDuration.Observe(duration.Seconds())
}

func RecordNotification(notificationType string) {
	notificationsSent.WithLabelValues(notificationType).Inc()
}
