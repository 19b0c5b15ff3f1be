package types

import (
	"github.com/google/uuid"
)

// UserID represents an identity identifier issued by the auth backend
type UserID string

// String returns the string representation
func (id UserID) String() string {
	return string(id)
}

// NewUserID creates a new UserID
func NewUserID() UserID {
	return UserID(uuid.New().String())
}

// RequestID represents a provisioning invocation identifier
type RequestID string

// String returns the string representation
func (id RequestID) String() string {
	return string(id)
}

// NewRequestID creates a new RequestID using UUID v7
func NewRequestID() (RequestID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return RequestID(id.String()), nil
}
