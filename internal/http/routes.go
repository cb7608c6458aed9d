package httpx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rankedhq/ranked-api/internal/observability/metrics"
	"github.com/rankedhq/ranked-api/internal/service"
	"github.com/rankedhq/ranked-api/internal/session"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Sessions    *session.Store
	AuthContext *service.AuthContextService
	OrgContext  *service.OrgContextService
	Auth        *service.AuthService
	Me          *service.MeService

	SessionTTL time.Duration
	Logger     *slog.Logger

	// Optional observability.
	Metrics         *metrics.Metrics
	MetricsRegistry *prometheus.Registry
}

// NewRouter wires the middleware pipeline and routes.
//
// Pipeline order is load-bearing: session decode → auth resolution → CSRF →
// org resolution → handler. Each stage reads what the previous one attached
// to the request context.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		Auth:       services.Auth,
		Me:         services.Me,
		SessionTTL: services.SessionTTL,
		Logger:     logger,
	}
	meHandlers := &MeHandlers{Me: services.Me, Logger: logger}
	addressHandlers := &AddressHandlers{Me: services.Me, Logger: logger}

	mux.HandleFunc("POST /auth/register", authHandlers.Register)
	mux.HandleFunc("POST /auth/login", authHandlers.Login)
	mux.HandleFunc("POST /auth/exchange", authHandlers.Exchange)
	mux.HandleFunc("GET /auth/refresh-session", authHandlers.RefreshSession)
	mux.HandleFunc("POST /auth/logout", authHandlers.Logout)

	mux.Handle("GET /me", RequireAuth(http.HandlerFunc(meHandlers.GetMe)))
	mux.Handle("POST /me/active-organisation", RequireAuth(http.HandlerFunc(meHandlers.SetActiveOrganisation)))
	mux.Handle("GET /member-addresses", RequireAuth(http.HandlerFunc(addressHandlers.List)))

	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)

	if services.MetricsRegistry != nil {
		mux.Handle("GET /metrics", metrics.Handler(services.MetricsRegistry))
	}

	return Chain(mux,
		Recover(logger),
		Logging(logger, services.Metrics),
		Session(services.Sessions, logger),
		AuthContext(services.AuthContext, logger),
		CSRFGuard(services.Metrics, logger),
		OrgContext(services.OrgContext, logger),
	)
}
