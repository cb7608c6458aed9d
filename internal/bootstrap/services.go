package bootstrap

import (
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rankedhq/ranked-api/config"
	"github.com/rankedhq/ranked-api/internal/adapters/gotrue"
	"github.com/rankedhq/ranked-api/internal/data"
	"github.com/rankedhq/ranked-api/internal/observability/metrics"
	"github.com/rankedhq/ranked-api/internal/service"
	"github.com/rankedhq/ranked-api/internal/session"
)

// ServiceContainer holds the wired application services.
type ServiceContainer struct {
	Sessions    *session.Store
	AuthContext *service.AuthContextService
	OrgContext  *service.OrgContextService
	Auth        *service.AuthService
	Me          *service.MeService

	SessionTTL time.Duration

	Metrics         *metrics.Metrics
	MetricsRegistry *prometheus.Registry
}

// BuildServices wires repositories, the identity provider adapter, and the
// services over them.
func BuildServices(ctx context.Context, cfg config.AppConfig, db *sql.DB, logger *slog.Logger) (ServiceContainer, error) {
	store, err := buildSessionStore(cfg.Session)
	if err != nil {
		return ServiceContainer{}, err
	}

	provider, err := gotrue.NewProvider(ctx, cfg.IdP)
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("init identity provider: %w", err)
	}

	var (
		registry *prometheus.Registry
		m        *metrics.Metrics
	)
	if cfg.Observability.MetricsEnabled {
		registry, m = metrics.NewRegistry()
	}

	members := data.NewMemberRepo(db)
	memberships := data.NewMembershipRepo(db)
	organisations := data.NewOrganisationRepo(db)
	preferences := data.NewPreferenceRepo(db)
	addresses := data.NewAddressRepo(db)

	ttl := time.Duration(cfg.Session.TTLSeconds) * time.Second

	container := ServiceContainer{
		Sessions: store,
		AuthContext: service.NewAuthContextService(service.AuthContextServiceOptions{
			Members: members,
			Config: service.AuthContextConfig{
				TTL:         ttl,
				AbsoluteTTL: time.Duration(cfg.Session.AbsoluteTTLSeconds) * time.Second,
				Rolling:     cfg.Session.Rolling,
			},
			Metrics: m,
		}),
		OrgContext: service.NewOrgContextService(service.OrgContextServiceOptions{
			Memberships:   memberships,
			Organisations: organisations,
			Metrics:       m,
		}),
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Provider: provider,
			Members:  members,
			Metrics:  m,
		}),
		Me: service.NewMeService(service.MeServiceOptions{
			Members:     members,
			Memberships: memberships,
			Extras: service.MeServiceExtras{
				Addresses:   addresses,
				Preferences: preferences,
			},
		}),
		SessionTTL:      ttl,
		Metrics:         m,
		MetricsRegistry: registry,
	}

	if logger != nil {
		logger.Info("services initialized",
			"rolling_sessions", cfg.Session.Rolling,
			"metrics_enabled", cfg.Observability.MetricsEnabled,
		)
	}
	return container, nil
}

// buildSessionStore decodes the configured key and constructs the cookie store.
// The key itself never appears in errors or logs.
func buildSessionStore(cfg config.SessionConfig) (*session.Store, error) {
	key, err := base64.StdEncoding.DecodeString(cfg.KeyBase64)
	if err != nil {
		return nil, fmt.Errorf("decode session key: %w", err)
	}

	store, err := session.NewStore(key, session.Config{
		CookieName: cfg.CookieName,
		TTL:        time.Duration(cfg.TTLSeconds) * time.Second,
		Secure:     cfg.Secure(),
		Domain:     cfg.CookieDomain,
	})
	if err != nil {
		return nil, fmt.Errorf("init session store: %w", err)
	}
	return store, nil
}
