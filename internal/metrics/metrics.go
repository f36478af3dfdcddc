package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/n42/gewe-go/internal/callback"
	"github.com/n42/gewe-go/pkg/gewe"
)

const namespace = "gewe"

// Outcome label values of gewe_requests_total.
const (
	OutcomeOK        = "ok"
	OutcomeTransport = "transport_error"
	OutcomeRejected  = "rejected"
)

// Recorder collects gateway request and callback metrics on its own
// registry. It implements gewe.Observer and callback.Sink.
type Recorder struct {
	registry *prometheus.Registry

	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	callbacks *prometheus.CounterVec
}

var (
	_ gewe.Observer = (*Recorder)(nil)
	_ callback.Sink = (*Recorder)(nil)
)

// NewRecorder creates a Recorder with Go runtime and process collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Gateway requests by route and outcome.",
		}, []string{"route", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Gateway request round trip time.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"route"}),
		callbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "callbacks_received_total",
			Help:      "Callbacks received from the gateway by type.",
		}, []string{"type"}),
	}
	r.registry.MustRegister(
		r.requests,
		r.latency,
		r.callbacks,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveRequest records one dispatched request.
func (r *Recorder) ObserveRequest(route string, elapsed time.Duration, err error) {
	outcome := OutcomeOK
	var terr *gewe.TransportError
	switch {
	case err == nil:
	case errors.As(err, &terr):
		outcome = OutcomeTransport
	default:
		outcome = OutcomeRejected
	}
	r.requests.WithLabelValues(route, outcome).Inc()
	r.latency.WithLabelValues(route).Observe(elapsed.Seconds())
}

// HandleEvent counts a received callback.
func (r *Recorder) HandleEvent(_ context.Context, evt *callback.Event) error {
	r.callbacks.WithLabelValues(evt.TypeName).Inc()
	return nil
}

// RegisterGauge exposes a value sampled at scrape time.
func (r *Recorder) RegisterGauge(name, help string, fn func() float64) error {
	return r.registry.Register(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, fn))
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
