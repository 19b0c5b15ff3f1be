package model

import "github.com/secmon-lab/kadr/pkg/domain/types"

// AccountDescriptor describes one test administrator account to provision
type AccountDescriptor struct {
	Email    string
	Password string
	Role     types.Role
}

// TestAdmins returns the fixed, ordered list of test administrator accounts.
// A fresh slice is returned on every call so callers cannot alter the set.
func TestAdmins() []AccountDescriptor {
	return []AccountDescriptor{
		{Email: "hradmin@test.uz", Password: "hradmin123", Role: types.RoleHRAdmin},
		{Email: "master@test.uz", Password: "master123", Role: types.RoleMasterAdmin},
		{Email: "statusadmin@test.uz", Password: "status123", Role: types.RoleStatusAdmin},
	}
}
