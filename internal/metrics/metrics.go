package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// ProvisioningOpsTotal counts successful SCIM provisioning operations by kind (create, update, delete).
	ProvisioningOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scim_provisioning_ops_total",
			Help: "Total number of successful SCIM provisioning operations by kind",
		},
		[]string{"op"},
	)

	// AuditRecordsPurged counts audit log rows removed by the retention job.
	AuditRecordsPurged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "audit_records_purged_total",
			Help: "Total number of audit log records removed by retention",
		},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, ProvisioningOpsTotal, AuditRecordsPurged)
	})
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
// E.g. /Users/123 -> /Users/{id}.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncProvisioningOps increments the provisioning counter for the given kind (create, update, delete).
func IncProvisioningOps(op string) {
	ProvisioningOpsTotal.WithLabelValues(op).Inc()
}

// AddAuditRecordsPurged adds n to the retention purge counter.
func AddAuditRecordsPurged(n int64) {
	AuditRecordsPurged.Add(float64(n))
}
