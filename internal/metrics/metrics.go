// Package metrics collects Prometheus metrics for the profile service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for registration and login attempts.
const (
	OutcomeSuccess            = "success"
	OutcomeMissingFile        = "missing_file"
	OutcomeMissingFields      = "missing_fields"
	OutcomeDuplicate          = "duplicate"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeError              = "error"
)

// Collector records service metrics in a Prometheus registry.
type Collector struct {
	httpRequests   *prometheus.CounterVec
	httpLatency    *prometheus.HistogramVec
	registrations  *prometheus.CounterVec
	logins         *prometheus.CounterVec
	uploadLatency  prometheus.Histogram
	uploadFailures prometheus.Counter
	sweptFiles     prometheus.Counter
}

// NewCollector registers the service metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "profilecard_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "profilecard_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "profilecard_registrations_total",
			Help: "Registration attempts by outcome.",
		}, []string{"outcome"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "profilecard_logins_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
		uploadLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "profilecard_asset_upload_duration_seconds",
			Help:    "Latency of profile image uploads to the asset store.",
			Buckets: prometheus.DefBuckets,
		}),
		uploadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "profilecard_asset_upload_failures_total",
			Help: "Failed profile image uploads.",
		}),
		sweptFiles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "profilecard_spool_swept_files_total",
			Help: "Spooled upload files removed by the sweeper.",
		}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpLatency,
		c.registrations,
		c.logins,
		c.uploadLatency,
		c.uploadFailures,
		c.sweptFiles,
	)
	return c
}

// RecordHTTPRequest counts a served request.
func (c *Collector) RecordHTTPRequest(method, route string, status int, latency time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpLatency.WithLabelValues(route).Observe(latency.Seconds())
}

// RecordRegistration counts a registration attempt.
func (c *Collector) RecordRegistration(outcome string) {
	c.registrations.WithLabelValues(outcome).Inc()
}

// RecordLogin counts a login attempt.
func (c *Collector) RecordLogin(outcome string) {
	c.logins.WithLabelValues(outcome).Inc()
}

// ObserveUpload records an asset upload.
func (c *Collector) ObserveUpload(latency time.Duration, err error) {
	c.uploadLatency.Observe(latency.Seconds())
	if err != nil {
		c.uploadFailures.Inc()
	}
}

// RecordSweptFile counts a removed spool file.
func (c *Collector) RecordSweptFile() {
	c.sweptFiles.Inc()
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
