package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kadr/pkg/domain/interfaces"
	"github.com/secmon-lab/kadr/pkg/repository"
	"github.com/urfave/cli/v3"
)

// Firestore holds Firestore configuration for storing role assignments
type Firestore struct {
	ProjectID  string
	DatabaseID string
}

// Flags returns CLI flags for Firestore configuration
func (f *Firestore) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "firestore-project",
			Usage:       "GCP project ID for Firestore; when set, role assignments are stored in Firestore",
			Category:    "Firestore",
			Sources:     cli.EnvVars("KADR_FIRESTORE_PROJECT"),
			Destination: &f.ProjectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database",
			Usage:       "Firestore database ID",
			Category:    "Firestore",
			Value:       "(default)",
			Sources:     cli.EnvVars("KADR_FIRESTORE_DATABASE"),
			Destination: &f.DatabaseID,
		},
	}
}

// ConfigureOptional creates a Firestore role repository if configured, returns nil if not
func (f *Firestore) ConfigureOptional(ctx context.Context) (interfaces.RoleRepository, error) {
	if !f.IsConfigured() {
		ctxlog.From(ctx).Info("Firestore not configured, role assignments go to the backend user_roles table")
		return nil, nil
	}

	repo, err := repository.NewFirestore(ctx, f.ProjectID, f.DatabaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to init firestore",
			goerr.V("project", f.ProjectID),
			goerr.V("database", f.DatabaseID),
		)
	}

	return repo, nil
}

// IsConfigured checks if Firestore is properly configured
func (f *Firestore) IsConfigured() bool {
	return f.ProjectID != ""
}

// LogValue returns structured log value
func (f Firestore) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("project", f.ProjectID),
		slog.String("database", f.DatabaseID),
	)
}
