package config_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/kadr/pkg/cli/config"
	"github.com/secmon-lab/kadr/pkg/domain/interfaces/mocks"
	"github.com/secmon-lab/kadr/pkg/domain/model"
	"github.com/secmon-lab/kadr/pkg/domain/types"
	"github.com/secmon-lab/kadr/pkg/usecase"
)

func testContext() context.Context {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return ctxlog.With(context.Background(), logger)
}

func TestBackendValidate(t *testing.T) {
	gt.NoError(t, (&config.Backend{Kind: config.BackendSupabase}).Validate())
	gt.NoError(t, (&config.Backend{Kind: config.BackendMemory}).Validate())
	gt.Error(t, (&config.Backend{Kind: "postgres"}).Validate())
}

func TestBackendConnector(t *testing.T) {
	ctx := testContext()

	t.Run("Supabase connector rejects missing secrets per invocation", func(t *testing.T) {
		backend := &config.Backend{Kind: config.BackendSupabase}
		connect, err := backend.Connector(ctx, nil)
		gt.NoError(t, err).Required()

		_, err = connect(ctx, backend.BackendConfig())
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagSetup))
	})

	t.Run("Supabase connector provisions against the backend", func(t *testing.T) {
		var paths []string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			paths = append(paths, r.URL.Path)
			if r.URL.Path == "/auth/v1/admin/users" {
				_, _ = w.Write([]byte(`{"id":"` + types.NewUserID().String() + `"}`))
				return
			}
			w.WriteHeader(http.StatusCreated)
		}))
		defer srv.Close()

		backend := &config.Backend{Kind: config.BackendSupabase, URL: srv.URL, ServiceRoleKey: "sb_secret_test"}
		connect, err := backend.Connector(ctx, nil)
		gt.NoError(t, err).Required()

		resp, err := usecase.NewProvision(backend.BackendConfig(), connect).Run(ctx)
		gt.NoError(t, err).Required()
		gt.Equal(t, resp.Summary(), model.Summary{Succeeded: 3, Failed: 0})
		gt.Equal(t, len(paths), 6)
		gt.Equal(t, paths[1], "/rest/v1/user_roles")
	})

	t.Run("External role store replaces backend table", func(t *testing.T) {
		roles := &mocks.RoleStoreMock{
			AssignRoleFunc: func(ctx context.Context, userID types.UserID, role types.Role) error {
				return nil
			},
		}

		backend := &config.Backend{Kind: config.BackendMemory}
		connect, err := backend.Connector(ctx, roles)
		gt.NoError(t, err).Required()

		resp, err := usecase.NewProvision(backend.BackendConfig(), connect).Run(ctx)
		gt.NoError(t, err).Required()
		gt.Equal(t, resp.Summary().Succeeded, 3)
		gt.Equal(t, len(roles.AssignRoleCalls()), 3)
	})

	t.Run("Memory connector keeps state across invocations", func(t *testing.T) {
		backend := &config.Backend{Kind: config.BackendMemory}
		connect, err := backend.Connector(ctx, nil)
		gt.NoError(t, err).Required()

		provision := usecase.NewProvision(backend.BackendConfig(), connect)
		first, err := provision.Run(ctx)
		gt.NoError(t, err).Required()
		gt.Equal(t, first.Summary().Succeeded, 3)

		second, err := provision.Run(ctx)
		gt.NoError(t, err).Required()
		gt.Equal(t, second.Summary().Failed, 3)
	})

	t.Run("Invalid kind", func(t *testing.T) {
		_, err := (&config.Backend{Kind: "ldap"}).Connector(ctx, nil)
		gt.Error(t, err)
	})
}

func TestLoggerValidate(t *testing.T) {
	gt.NoError(t, (&config.Logger{Level: "debug", Format: "json"}).Validate())
	gt.NoError(t, (&config.Logger{Level: "", Format: ""}).Validate())
	gt.Error(t, (&config.Logger{Level: "verbose", Format: "json"}).Validate())
	gt.Error(t, (&config.Logger{Level: "info", Format: "xml"}).Validate())
}
