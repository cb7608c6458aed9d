package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Auth resolution outcomes used as label values.
const (
	OutcomeAnonymous     = "anonymous"
	OutcomeAuthenticated = "authenticated"
	OutcomeExpired       = "expired"
	OutcomeError         = "error"
)

// Metrics holds the Prometheus collectors for the request pipeline.
type Metrics struct {
	AuthResolutions *prometheus.CounterVec
	CSRFRejections  *prometheus.CounterVec
	OrgResolutions  *prometheus.CounterVec
	Logins          *prometheus.CounterVec
	Registrations   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New registers all collectors with the given registerer.
func New(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		AuthResolutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ranked_auth_resolutions_total",
				Help: "Session auth resolutions by outcome and expiry reason",
			},
			[]string{"outcome", "reason"},
		),
		CSRFRejections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ranked_csrf_rejections_total",
				Help: "Requests rejected by the CSRF guard",
			},
			[]string{"reason"},
		),
		OrgResolutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ranked_org_resolutions_total",
				Help: "Organisation context resolutions by outcome",
			},
			[]string{"outcome"},
		),
		Logins: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ranked_logins_total",
				Help: "Login attempts by result",
			},
			[]string{"result"},
		),
		Registrations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ranked_registrations_total",
				Help: "Registration attempts by result",
			},
			[]string{"result"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ranked_http_request_duration_seconds",
				Help:    "HTTP request latency by route and status",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
}

// NewRegistry creates a fresh registry with all pipeline collectors attached.
func NewRegistry() (*prometheus.Registry, *Metrics) {
	reg := prometheus.NewRegistry()
	return reg, New(reg)
}

// Handler exposes a registry in the Prometheus text format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
