package model

import (
	"time"

	"github.com/secmon-lab/kadr/pkg/domain/types"
)

// Identity is an authentication account managed by the auth backend
type Identity struct {
	ID    types.UserID `json:"id"`
	Email string       `json:"email"`
}

// RoleAssignment links a user to a privilege level
type RoleAssignment struct {
	UserID    types.UserID `json:"user_id" firestore:"user_id"`
	Role      types.Role   `json:"role" firestore:"role"`
	CreatedAt time.Time    `json:"created_at" firestore:"created_at"`
}

// NewRoleAssignment creates a new RoleAssignment stamped with the current time
func NewRoleAssignment(userID types.UserID, role types.Role) *RoleAssignment {
	return &RoleAssignment{
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now(),
	}
}

// Key returns the document key that makes a (user, role) pair unique
func (a *RoleAssignment) Key() string {
	return a.UserID.String() + "_" + a.Role.String()
}
