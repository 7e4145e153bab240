package authz

import (
	"go-vacation/internal/user"

	"github.com/casbin/casbin/v2"
)

// NewEnforcer builds the role enforcer from the model file and installs
// the static policy. There are only two roles, so the policy ships with
// the binary instead of a storage adapter.
func NewEnforcer(modelPath string) (*casbin.Enforcer, error) {
	e, err := casbin.NewEnforcer(modelPath)
	if err != nil {
		return nil, err
	}

	policies := [][]string{
		{user.RoleRequester, "request", "create"},
		{user.RoleRequester, "request", "read_own"},
		{user.RoleValidator, "request", "read_own"},
		{user.RoleValidator, "request", "read_all"},
		{user.RoleValidator, "request", "decide"},
	}
	if _, err := e.AddPolicies(policies); err != nil {
		return nil, err
	}

	return e, nil
}
