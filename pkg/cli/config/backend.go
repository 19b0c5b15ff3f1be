package config

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kadr/pkg/domain/interfaces"
	"github.com/secmon-lab/kadr/pkg/domain/model"
	"github.com/secmon-lab/kadr/pkg/repository"
	"github.com/secmon-lab/kadr/pkg/service/supabase"
	"github.com/secmon-lab/kadr/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Backend kinds
const (
	BackendSupabase = "supabase"
	BackendMemory   = "memory"
)

// Backend holds the identity/authorization backend configuration
type Backend struct {
	Kind           string
	URL            string
	ServiceRoleKey string
	Timeout        time.Duration
}

// Flags returns CLI flags for Backend configuration
func (b *Backend) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "backend",
			Usage:       "Identity backend (supabase, memory)",
			Category:    "Backend",
			Value:       BackendSupabase,
			Sources:     cli.EnvVars("KADR_BACKEND"),
			Destination: &b.Kind,
		},
		&cli.StringFlag{
			Name:        "supabase-url",
			Usage:       "Base URL of the Supabase project",
			Category:    "Backend",
			Sources:     cli.EnvVars("KADR_SUPABASE_URL", "SUPABASE_URL"),
			Destination: &b.URL,
		},
		&cli.StringFlag{
			Name:        "supabase-service-role-key",
			Usage:       "Service role key of the Supabase project",
			Category:    "Backend",
			Sources:     cli.EnvVars("KADR_SUPABASE_SERVICE_ROLE_KEY", "SUPABASE_SERVICE_ROLE_KEY"),
			Destination: &b.ServiceRoleKey,
		},
		&cli.DurationFlag{
			Name:        "backend-timeout",
			Usage:       "Timeout of a single backend request",
			Category:    "Backend",
			Value:       10 * time.Second,
			Sources:     cli.EnvVars("KADR_BACKEND_TIMEOUT"),
			Destination: &b.Timeout,
		},
	}
}

// Validate validates the backend kind. Secrets are checked per invocation.
func (b *Backend) Validate() error {
	switch b.Kind {
	case BackendSupabase, BackendMemory:
		return nil
	default:
		return goerr.New("invalid backend", goerr.V("backend", b.Kind))
	}
}

// BackendConfig returns the secrets injected into the provisioner
func (b *Backend) BackendConfig() model.BackendConfig {
	return model.BackendConfig{
		BaseURL:    b.URL,
		ServiceKey: b.ServiceRoleKey,
	}
}

// Connector returns the connector building privileged clients for each invocation.
// When roles is not nil, role assignments are written there instead of the backend.
func (b *Backend) Connector(ctx context.Context, roles interfaces.RoleStore) (usecase.Connector, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	if b.Kind == BackendMemory {
		ctxlog.From(ctx).Warn("Using memory backend. Accounts will be removed when shutting down")
		memory := repository.NewMemory()
		return func(ctx context.Context, cfg model.BackendConfig) (*usecase.Clients, error) {
			clients := &usecase.Clients{Identity: memory, Roles: memory}
			if roles != nil {
				clients.Roles = roles
			}
			return clients, nil
		}, nil
	}

	timeout := b.Timeout
	return func(ctx context.Context, cfg model.BackendConfig) (*usecase.Clients, error) {
		var opts []supabase.Option
		if timeout > 0 {
			opts = append(opts, supabase.WithHTTPClient(&http.Client{Timeout: timeout}))
		}

		client, err := supabase.New(cfg, opts...)
		if err != nil {
			return nil, err
		}

		clients := &usecase.Clients{Identity: client, Roles: client}
		if roles != nil {
			clients.Roles = roles
		}
		return clients, nil
	}, nil
}

// LogValue returns structured log value without exposing the service role key
func (b Backend) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", b.Kind),
		slog.String("url", b.URL),
		slog.Bool("has_service_role_key", b.ServiceRoleKey != ""),
		slog.Duration("timeout", b.Timeout),
	)
}
