package interfaces

//go:generate moq -out mocks/repository_mock.go -pkg mocks . IdentityIssuer RoleStore

import (
	"context"

	"github.com/secmon-lab/kadr/pkg/domain/model"
	"github.com/secmon-lab/kadr/pkg/domain/types"
)

// IdentityIssuer creates authentication identities in the auth backend
type IdentityIssuer interface {
	// CreateIdentity creates a pre-confirmed identity for the email and password
	CreateIdentity(ctx context.Context, email, password string) (*model.Identity, error)
}

// RoleStore persists role assignments
type RoleStore interface {
	// AssignRole inserts a (user, role) row
	AssignRole(ctx context.Context, userID types.UserID, role types.Role) error
}

// RoleRepository is a RoleStore that can be queried and closed
type RoleRepository interface {
	RoleStore

	// ListRoleAssignments returns the roles assigned to a user
	ListRoleAssignments(ctx context.Context, userID types.UserID) ([]*model.RoleAssignment, error)

	// Close closes the repository connection
	Close() error
}
