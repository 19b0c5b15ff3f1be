package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/kadr/pkg/domain/interfaces/mocks"
	"github.com/secmon-lab/kadr/pkg/domain/model"
	"github.com/secmon-lab/kadr/pkg/domain/types"
	"github.com/secmon-lab/kadr/pkg/repository"
	"github.com/secmon-lab/kadr/pkg/usecase"
)

var testBackend = model.BackendConfig{
	BaseURL:    "https://example.supabase.co",
	ServiceKey: "sb_secret_test",
}

func connectTo(identity *mocks.IdentityIssuerMock, roles *mocks.RoleStoreMock) usecase.Connector {
	return func(ctx context.Context, cfg model.BackendConfig) (*usecase.Clients, error) {
		return &usecase.Clients{Identity: identity, Roles: roles}, nil
	}
}

func newIdentityMock() *mocks.IdentityIssuerMock {
	return &mocks.IdentityIssuerMock{
		CreateIdentityFunc: func(ctx context.Context, email, password string) (*model.Identity, error) {
			return &model.Identity{ID: types.UserID("id-" + email), Email: email}, nil
		},
	}
}

func newRoleMock() *mocks.RoleStoreMock {
	return &mocks.RoleStoreMock{
		AssignRoleFunc: func(ctx context.Context, userID types.UserID, role types.Role) error {
			return nil
		},
	}
}

func TestProvisionRun(t *testing.T) {
	ctx := context.Background()
	accounts := model.TestAdmins()

	t.Run("All accounts succeed in order", func(t *testing.T) {
		identity := newIdentityMock()
		roles := newRoleMock()

		resp, err := usecase.NewProvision(testBackend, connectTo(identity, roles)).Run(ctx)
		gt.NoError(t, err).Required()

		gt.Equal(t, resp.Message, "Test admin creation process completed")
		gt.Equal(t, len(resp.Results), len(accounts))
		for i, account := range accounts {
			gt.Equal(t, resp.Results[i], model.ProvisionResult{
				Email:   account.Email,
				UserID:  types.UserID("id-" + account.Email),
				Role:    account.Role,
				Success: true,
			})
		}

		calls := identity.CreateIdentityCalls()
		gt.Equal(t, len(calls), 3)
		for i, account := range accounts {
			gt.Equal(t, calls[i].Email, account.Email)
			gt.Equal(t, calls[i].Password, account.Password)
		}

		roleCalls := roles.AssignRoleCalls()
		gt.Equal(t, len(roleCalls), 3)
		for i, account := range accounts {
			gt.Equal(t, roleCalls[i].UserID, types.UserID("id-"+account.Email))
			gt.Equal(t, roleCalls[i].Role, account.Role)
		}
	})

	t.Run("Identity failure skips role assignment for that account only", func(t *testing.T) {
		identity := newIdentityMock()
		identity.CreateIdentityFunc = func(ctx context.Context, email, password string) (*model.Identity, error) {
			if email == "master@test.uz" {
				return nil, goerr.New("A user with this email address has already been registered")
			}
			return &model.Identity{ID: types.UserID("id-" + email), Email: email}, nil
		}
		roles := newRoleMock()

		resp, err := usecase.NewProvision(testBackend, connectTo(identity, roles)).Run(ctx)
		gt.NoError(t, err).Required()
		gt.Equal(t, len(resp.Results), 3)

		failed := resp.Results[1]
		gt.Equal(t, failed.Email, "master@test.uz")
		gt.False(t, failed.Success)
		gt.Equal(t, failed.UserID, types.UserID(""))
		gt.Equal(t, failed.Role, types.Role(""))
		gt.Equal(t, failed.Error, "A user with this email address has already been registered")

		gt.True(t, resp.Results[0].Success)
		gt.True(t, resp.Results[2].Success)

		roleCalls := roles.AssignRoleCalls()
		gt.Equal(t, len(roleCalls), 2)
		for _, call := range roleCalls {
			gt.NotEqual(t, call.UserID, types.UserID("id-master@test.uz"))
		}
	})

	t.Run("Role failure keeps created user ID", func(t *testing.T) {
		identity := newIdentityMock()
		roles := newRoleMock()
		roles.AssignRoleFunc = func(ctx context.Context, userID types.UserID, role types.Role) error {
			if role == types.RoleStatusAdmin {
				return errors.New("permission denied for table user_roles")
			}
			return nil
		}

		resp, err := usecase.NewProvision(testBackend, connectTo(identity, roles)).Run(ctx)
		gt.NoError(t, err).Required()

		failed := resp.Results[2]
		gt.Equal(t, failed.Email, "statusadmin@test.uz")
		gt.False(t, failed.Success)
		gt.Equal(t, failed.UserID, types.UserID("id-statusadmin@test.uz"))
		gt.Equal(t, failed.Role, types.Role(""))
		gt.Equal(t, failed.Error, "User created but role assignment failed: permission denied for table user_roles")

		summary := resp.Summary()
		gt.Equal(t, summary.Succeeded, 2)
		gt.Equal(t, summary.Failed, 1)
	})

	t.Run("Every account failing still completes", func(t *testing.T) {
		identity := newIdentityMock()
		identity.CreateIdentityFunc = func(ctx context.Context, email, password string) (*model.Identity, error) {
			return nil, errors.New("service unavailable")
		}
		roles := newRoleMock()

		resp, err := usecase.NewProvision(testBackend, connectTo(identity, roles)).Run(ctx)
		gt.NoError(t, err).Required()
		gt.Equal(t, len(resp.Results), 3)
		for i, account := range accounts {
			gt.Equal(t, resp.Results[i].Email, account.Email)
			gt.False(t, resp.Results[i].Success)
		}
		gt.Equal(t, len(identity.CreateIdentityCalls()), 3)
		gt.Equal(t, len(roles.AssignRoleCalls()), 0)
	})

	t.Run("Identity without ID is a failure", func(t *testing.T) {
		identity := newIdentityMock()
		identity.CreateIdentityFunc = func(ctx context.Context, email, password string) (*model.Identity, error) {
			return &model.Identity{Email: email}, nil
		}
		roles := newRoleMock()

		resp, err := usecase.NewProvision(testBackend, connectTo(identity, roles)).Run(ctx)
		gt.NoError(t, err).Required()
		for _, result := range resp.Results {
			gt.False(t, result.Success)
			gt.Equal(t, result.UserID, types.UserID(""))
		}
		gt.Equal(t, len(roles.AssignRoleCalls()), 0)
	})

	t.Run("Connector failure is a setup error", func(t *testing.T) {
		connect := func(ctx context.Context, cfg model.BackendConfig) (*usecase.Clients, error) {
			return nil, cfg.Validate()
		}

		resp, err := usecase.NewProvision(model.BackendConfig{}, connect).Run(ctx)
		gt.Error(t, err)
		gt.V(t, resp).Nil()
		gt.True(t, goerr.HasTag(err, model.ErrTagSetup))
	})

	t.Run("Incomplete clients are a setup error", func(t *testing.T) {
		connect := func(ctx context.Context, cfg model.BackendConfig) (*usecase.Clients, error) {
			return &usecase.Clients{Identity: newIdentityMock()}, nil
		}

		_, err := usecase.NewProvision(testBackend, connect).Run(ctx)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagSetup))
	})

	t.Run("Missing connector is a setup error", func(t *testing.T) {
		_, err := usecase.NewProvision(testBackend, nil).Run(ctx)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagSetup))
	})

	t.Run("Connector receives injected config", func(t *testing.T) {
		var received model.BackendConfig
		connect := func(ctx context.Context, cfg model.BackendConfig) (*usecase.Clients, error) {
			received = cfg
			return &usecase.Clients{Identity: newIdentityMock(), Roles: newRoleMock()}, nil
		}

		_, err := usecase.NewProvision(testBackend, connect).Run(ctx)
		gt.NoError(t, err).Required()
		gt.Equal(t, received, testBackend)
	})

	t.Run("Cancelled context does not stop the loop", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		identity := newIdentityMock()
		identity.CreateIdentityFunc = func(ctx context.Context, email, password string) (*model.Identity, error) {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return &model.Identity{ID: types.UserID("id-" + email), Email: email}, nil
		}

		resp, err := usecase.NewProvision(testBackend, connectTo(identity, newRoleMock())).Run(cancelled)
		gt.NoError(t, err).Required()
		for _, result := range resp.Results {
			gt.True(t, result.Success)
		}
	})
}

func TestProvisionRunAgainstMemoryBackend(t *testing.T) {
	ctx := context.Background()
	backend := repository.NewMemory()
	connect := func(ctx context.Context, cfg model.BackendConfig) (*usecase.Clients, error) {
		return &usecase.Clients{Identity: backend, Roles: backend}, nil
	}
	provision := usecase.NewProvision(testBackend, connect)

	first, err := provision.Run(ctx)
	gt.NoError(t, err).Required()
	gt.Equal(t, len(first.Results), 3)
	for i, account := range model.TestAdmins() {
		result := first.Results[i]
		gt.True(t, result.Success)
		gt.Equal(t, result.Email, account.Email)
		gt.Equal(t, result.Role, account.Role)
		gt.V(t, result.UserID).NotEqual("")

		assignments, err := backend.ListRoleAssignments(ctx, result.UserID)
		gt.NoError(t, err).Required()
		gt.Equal(t, len(assignments), 1)
		gt.Equal(t, assignments[0].Role, account.Role)
	}

	t.Run("Re-running reports duplicate emails per account", func(t *testing.T) {
		second, err := provision.Run(ctx)
		gt.NoError(t, err).Required()
		gt.Equal(t, len(second.Results), 3)
		for i, account := range model.TestAdmins() {
			result := second.Results[i]
			gt.Equal(t, result.Email, account.Email)
			gt.False(t, result.Success)
			gt.Equal(t, result.UserID, types.UserID(""))
			gt.S(t, result.Error).Contains("already been registered")
		}
		gt.Equal(t, second.Summary(), model.Summary{Succeeded: 0, Failed: 3})
	})
}

func TestAttempt(t *testing.T) {
	ctx := context.Background()
	account := model.TestAdmins()[0]

	identity := newIdentityMock()
	roles := newRoleMock()
	clients := &usecase.Clients{Identity: identity, Roles: roles}

	result := usecase.Attempt(ctx, clients, account)
	gt.Equal(t, result, model.NewProvisioned(account, types.UserID("id-"+account.Email)))
}
