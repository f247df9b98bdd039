package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes upstream and cache metrics through Prometheus.
type Recorder struct {
	upstreamRequests *prometheus.CounterVec
	upstreamLatency  *prometheus.HistogramVec
	cacheLookups     *prometheus.CounterVec
	limiterWait      *prometheus.HistogramVec
	limiterRejected  *prometheus.CounterVec
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		upstreamRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "krypto",
				Name:      "upstream_requests_total",
				Help:      "Upstream provider calls by outcome",
			},
			[]string{"provider", "outcome"},
		),
		upstreamLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "krypto",
				Name:      "upstream_duration_seconds",
				Help:      "Latency of upstream provider calls",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"provider"},
		),
		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "krypto",
				Name:      "cache_lookups_total",
				Help:      "Aggregation cache lookups by result",
			},
			[]string{"result"},
		),
		limiterWait: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "krypto",
				Name:      "rate_limit_wait_seconds",
				Help:      "Time spent waiting for a provider rate limit slot",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 5, 10},
			},
			[]string{"provider"},
		),
		limiterRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "krypto",
				Name:      "rate_limit_rejections_total",
				Help:      "Calls abandoned while waiting for a rate limit slot",
			},
			[]string{"provider"},
		),
	}
}

// ObserveUpstream records one provider call. outcome is "ok" or an error kind.
func (r *Recorder) ObserveUpstream(provider, outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.upstreamRequests.WithLabelValues(provider, outcome).Inc()
	r.upstreamLatency.WithLabelValues(provider).Observe(elapsed.Seconds())
}

func (r *Recorder) ObserveCache(hit bool) {
	if r == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(result).Inc()
}

// ObserveLimiterWait records the wait for a provider rate limit slot.
func (r *Recorder) ObserveLimiterWait(provider string, waited time.Duration, rejected bool) {
	if r == nil {
		return
	}
	r.limiterWait.WithLabelValues(provider).Observe(waited.Seconds())
	if rejected {
		r.limiterRejected.WithLabelValues(provider).Inc()
	}
}
