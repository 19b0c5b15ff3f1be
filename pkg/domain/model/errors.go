package model

import "github.com/m-mizutani/goerr/v2"

// Error tags for provisioning failures
var (
	// ErrTagSetup marks failures that abort the whole invocation
	ErrTagSetup = goerr.NewTag("setup")
	// ErrTagIdentity marks a failed identity creation for one account
	ErrTagIdentity = goerr.NewTag("identity_creation")
	// ErrTagEmailExists marks identity creation rejected for an already registered email
	ErrTagEmailExists = goerr.NewTag("email_exists")
	// ErrTagRoleAssignment marks a failed role insert after the identity was created
	ErrTagRoleAssignment = goerr.NewTag("role_assignment")
	// ErrTagUserNotFound marks a role insert for an unknown user
	ErrTagUserNotFound = goerr.NewTag("user_not_found")
	// ErrTagDuplicateRole marks a role insert for an existing (user, role) pair
	ErrTagDuplicateRole = goerr.NewTag("duplicate_role")
)
