package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kadr/pkg/domain/interfaces"
	"github.com/secmon-lab/kadr/pkg/domain/model"
	"github.com/secmon-lab/kadr/pkg/domain/types"
)

const minPasswordLength = 6

// Memory is an in-process identity issuer and role store
type Memory struct {
	mu          sync.RWMutex
	identities  map[string]*model.Identity
	users       map[types.UserID]*model.Identity
	assignments map[types.UserID]map[types.Role]*model.RoleAssignment
}

var (
	_ interfaces.IdentityIssuer = (*Memory)(nil)
	_ interfaces.RoleRepository = (*Memory)(nil)
)

// NewMemory creates a new memory repository
func NewMemory() *Memory {
	return &Memory{
		identities:  make(map[string]*model.Identity),
		users:       make(map[types.UserID]*model.Identity),
		assignments: make(map[types.UserID]map[types.Role]*model.RoleAssignment),
	}
}

// CreateIdentity registers a new identity. Emails are unique case-insensitively.
func (m *Memory) CreateIdentity(ctx context.Context, email, password string) (*model.Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, goerr.New("Unable to validate email address: invalid format",
			goerr.V("email", email),
			goerr.T(model.ErrTagIdentity))
	}
	if len(password) < minPasswordLength {
		return nil, goerr.New("Password should be at least 6 characters.",
			goerr.V("email", email),
			goerr.T(model.ErrTagIdentity))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.identities[email]; exists {
		return nil, goerr.New("A user with this email address has already been registered",
			goerr.V("email", email),
			goerr.T(model.ErrTagIdentity),
			goerr.T(model.ErrTagEmailExists))
	}

	identity := &model.Identity{
		ID:    types.NewUserID(),
		Email: email,
	}
	m.identities[email] = identity
	m.users[identity.ID] = identity

	identityCopy := *identity
	return &identityCopy, nil
}

// AssignRole stores a role for an existing identity
func (m *Memory) AssignRole(ctx context.Context, userID types.UserID, role types.Role) error {
	if userID == "" {
		return goerr.New("user ID is empty", goerr.T(model.ErrTagRoleAssignment))
	}
	if !role.IsValid() {
		return goerr.New("invalid role",
			goerr.V("role", role),
			goerr.T(model.ErrTagRoleAssignment))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[userID]; !exists {
		return goerr.New("user not found",
			goerr.V("userID", userID),
			goerr.T(model.ErrTagRoleAssignment),
			goerr.T(model.ErrTagUserNotFound))
	}

	roles, ok := m.assignments[userID]
	if !ok {
		roles = make(map[types.Role]*model.RoleAssignment)
		m.assignments[userID] = roles
	}
	if _, exists := roles[role]; exists {
		return goerr.New("duplicate key value violates unique constraint",
			goerr.V("userID", userID),
			goerr.V("role", role),
			goerr.T(model.ErrTagRoleAssignment),
			goerr.T(model.ErrTagDuplicateRole))
	}

	roles[role] = model.NewRoleAssignment(userID, role)
	return nil
}

// ListRoleAssignments returns the roles of a user ordered by creation time
func (m *Memory) ListRoleAssignments(ctx context.Context, userID types.UserID) ([]*model.RoleAssignment, error) {
	if userID == "" {
		return nil, goerr.New("user ID is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.RoleAssignment
	for _, assignment := range m.assignments[userID] {
		assignmentCopy := *assignment
		result = append(result, &assignmentCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].Role < result[j].Role
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

// Close is a no-op for the memory repository
func (m *Memory) Close() error {
	return nil
}
