package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the proxy's Prometheus metrics on a private registry.
type Collector struct {
	reg *prometheus.Registry

	UpstreamRequests *prometheus.CounterVec // labels: operation, outcome
	UpstreamDuration *prometheus.HistogramVec
	DecodeFailures   *prometheus.CounterVec // labels: descriptor, kind
	FeedEntities     prometheus.Histogram
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "olhovivo_upstream_requests_total",
			Help: "Requests sent to the Olho Vivo service, by operation and outcome.",
		}, []string{"operation", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "olhovivo_upstream_request_duration_seconds",
			Help:    "Duration of requests to the Olho Vivo service.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}, []string{"operation"}),
		DecodeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "olhovivo_decode_failures_total",
			Help: "Upstream replies that did not match their record descriptor.",
		}, []string{"descriptor", "kind"}),
		FeedEntities: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "olhovivo_gtfsrt_feed_entities",
			Help:    "Vehicle entities per exported GTFS-Realtime feed.",
			Buckets: prometheus.LinearBuckets(0, 10, 10),
		}),
	}

	reg.MustRegister(
		c.UpstreamRequests, c.UpstreamDuration, c.DecodeFailures, c.FeedEntities,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// ObserveRequest records one upstream request. It lets a Collector serve as
// the client's observer.
func (c *Collector) ObserveRequest(operation, outcome string, duration time.Duration) {
	c.UpstreamRequests.WithLabelValues(operation, outcome).Inc()
	c.UpstreamDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (c *Collector) ObserveDecodeFailure(descriptor, kind string) {
	c.DecodeFailures.WithLabelValues(descriptor, kind).Inc()
}

func (c *Collector) Registry() *prometheus.Registry { return c.reg }

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
