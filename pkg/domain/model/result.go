package model

import (
	"log/slog"

	"github.com/secmon-lab/kadr/pkg/domain/types"
)

// CompletionMessage is reported once the provisioning loop has visited every account
const CompletionMessage = "Test admin creation process completed"

// roleAssignmentFailedPrefix precedes the backend reason when the identity exists but has no role
const roleAssignmentFailedPrefix = "User created but role assignment failed: "

// ProvisionResult is the outcome of provisioning a single account
type ProvisionResult struct {
	Email   string       `json:"email"`
	UserID  types.UserID `json:"userId,omitempty"`
	Role    types.Role   `json:"role,omitempty"`
	Success bool         `json:"success"`
	Error   string       `json:"error,omitempty"`
}

// NewIdentityFailure records an account whose identity could not be created
func NewIdentityFailure(account AccountDescriptor, err error) ProvisionResult {
	return ProvisionResult{
		Email:   account.Email,
		Success: false,
		Error:   err.Error(),
	}
}

// NewRoleFailure records an account whose identity was created but whose role insert failed
func NewRoleFailure(account AccountDescriptor, userID types.UserID, err error) ProvisionResult {
	return ProvisionResult{
		Email:   account.Email,
		UserID:  userID,
		Success: false,
		Error:   roleAssignmentFailedPrefix + err.Error(),
	}
}

// NewProvisioned records a fully provisioned account
func NewProvisioned(account AccountDescriptor, userID types.UserID) ProvisionResult {
	return ProvisionResult{
		Email:   account.Email,
		UserID:  userID,
		Role:    account.Role,
		Success: true,
	}
}

// AggregateResponse is the body returned by a completed provisioning run
type AggregateResponse struct {
	Message string            `json:"message"`
	Results []ProvisionResult `json:"results"`
}

// Summary counts succeeded and failed accounts
type Summary struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Summary returns the number of succeeded and failed accounts
func (r *AggregateResponse) Summary() Summary {
	var s Summary
	for _, result := range r.Results {
		if result.Success {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	return s
}

// LogValue returns structured log value
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("succeeded", s.Succeeded),
		slog.Int("failed", s.Failed),
	)
}
