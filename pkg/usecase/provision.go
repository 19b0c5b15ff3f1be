package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kadr/pkg/domain/interfaces"
	"github.com/secmon-lab/kadr/pkg/domain/model"
	"github.com/secmon-lab/kadr/pkg/domain/types"
)

// Clients bundles the privileged collaborators used by one provisioning run
type Clients struct {
	Identity interfaces.IdentityIssuer
	Roles    interfaces.RoleStore
}

// Connector builds the privileged clients for one invocation from the backend secrets
type Connector func(ctx context.Context, cfg model.BackendConfig) (*Clients, error)

// Provision implements interfaces.Provisioner
type Provision struct {
	config   model.BackendConfig
	connect  Connector
	accounts []model.AccountDescriptor
}

var _ interfaces.Provisioner = (*Provision)(nil)

// NewProvision creates a provisioner for the fixed test administrator accounts
func NewProvision(config model.BackendConfig, connect Connector) *Provision {
	return &Provision{
		config:   config,
		connect:  connect,
		accounts: model.TestAdmins(),
	}
}

// Run builds the clients and provisions every account in order.
// The loop is not cancellable: once clients are built, every account is attempted
// even if the caller goes away.
func (p *Provision) Run(ctx context.Context) (*model.AggregateResponse, error) {
	runID, err := types.NewRequestID()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate run ID", goerr.T(model.ErrTagSetup))
	}
	logger := ctxlog.From(ctx).With("run_id", runID)
	ctx = ctxlog.With(context.WithoutCancel(ctx), logger)

	if p.connect == nil {
		return nil, goerr.New("backend connector is not configured", goerr.T(model.ErrTagSetup))
	}

	clients, err := p.connect(ctx, p.config)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create privileged backend client",
			goerr.V("backend", p.config),
			goerr.T(model.ErrTagSetup))
	}
	if clients == nil || clients.Identity == nil || clients.Roles == nil {
		return nil, goerr.New("privileged backend client is incomplete", goerr.T(model.ErrTagSetup))
	}

	results := fold(p.accounts, make([]model.ProvisionResult, 0, len(p.accounts)),
		func(acc []model.ProvisionResult, account model.AccountDescriptor) []model.ProvisionResult {
			return append(acc, Attempt(ctx, clients, account))
		})

	resp := &model.AggregateResponse{
		Message: model.CompletionMessage,
		Results: results,
	}
	logger.Info("Provisioning completed", "summary", resp.Summary())

	return resp, nil
}

// Attempt provisions a single account. It never fails: every outcome, including a
// backend error, is reported as a ProvisionResult.
func Attempt(ctx context.Context, clients *Clients, account model.AccountDescriptor) model.ProvisionResult {
	logger := ctxlog.From(ctx).With("email", account.Email)
	logger.Info("Creating user")

	identity, err := clients.Identity.CreateIdentity(ctx, account.Email, account.Password)
	if err == nil && (identity == nil || identity.ID == "") {
		err = goerr.New("identity backend returned no user ID", goerr.T(model.ErrTagIdentity))
	}
	if err != nil {
		logger.Error("Error creating user", "error", err)
		return model.NewIdentityFailure(account, err)
	}

	logger.Info("User created", "user_id", identity.ID)

	if err := clients.Roles.AssignRole(ctx, identity.ID, account.Role); err != nil {
		// The identity is left in place without a role; it is not rolled back.
		logger.Error("Error assigning role",
			"user_id", identity.ID,
			"role", account.Role,
			"error", err,
		)
		return model.NewRoleFailure(account, identity.ID, err)
	}

	logger.Info("Role assigned", "user_id", identity.ID, "role", account.Role)
	return model.NewProvisioned(account, identity.ID)
}

func fold[T, A any](items []T, acc A, f func(A, T) A) A {
	for _, item := range items {
		acc = f(acc, item)
	}
	return acc
}
