package metric

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hublink"

// Registry holds all application metrics on a private prometheus registry.
// It satisfies service.RegistryObserver and service.LinkObserver.
type Registry struct {
	reg *prometheus.Registry

	tokensIssued   prometheus.Counter
	tokensConsumed prometheus.Counter
	tokensRejected *prometheus.CounterVec
	tokensSwept    prometheus.Counter
	accountsLinked prometheus.Counter

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewRegistry creates the metrics and registers them, together with the
// Go runtime and process collectors.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		tokensIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "link_tokens",
			Name:      "issued_total",
			Help:      "Total number of link tokens issued",
		}),
		tokensConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "link_tokens",
			Name:      "consumed_total",
			Help:      "Total number of link tokens redeemed successfully",
		}),
		tokensRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "link_tokens",
			Name:      "rejected_total",
			Help:      "Total number of failed link token redemptions by reason",
		}, []string{"reason"}),
		tokensSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "link_tokens",
			Name:      "swept_total",
			Help:      "Total number of expired link tokens removed by the sweeper",
		}),
		accountsLinked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "accounts",
			Name:      "linked_total",
			Help:      "Total number of completed account links",
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"method", "route"}),
	}

	r.reg.MustRegister(
		r.tokensIssued,
		r.tokensConsumed,
		r.tokensRejected,
		r.tokensSwept,
		r.accountsLinked,
		r.requestsTotal,
		r.requestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// MustRegister registers additional collectors.
func (r *Registry) MustRegister(cs ...prometheus.Collector) {
	r.reg.MustRegister(cs...)
}

// Gatherer exposes the underlying registry for tests and custom exposition.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// TokenIssued counts an issued link token.
func (r *Registry) TokenIssued() { r.tokensIssued.Inc() }

// TokenConsumed counts a successful redemption.
func (r *Registry) TokenConsumed() { r.tokensConsumed.Inc() }

// TokenRejected counts a failed redemption.
func (r *Registry) TokenRejected(reason string) {
	r.tokensRejected.WithLabelValues(reason).Inc()
}

// TokensSwept adds n swept tokens.
func (r *Registry) TokensSwept(n int) {
	if n > 0 {
		r.tokensSwept.Add(float64(n))
	}
}

// AccountLinked counts a completed account link.
func (r *Registry) AccountLinked() { r.accountsLinked.Inc() }

// ObserveHTTP records one finished HTTP request.
func (r *Registry) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	r.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
