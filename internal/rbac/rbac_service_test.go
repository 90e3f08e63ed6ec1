package rbac_test

import (
	"testing"

	"github.com/ZBee-Tech/e-Conges/internal/domain"
	"github.com/ZBee-Tech/e-Conges/internal/rbac"

	"github.com/stretchr/testify/assert"
)

func newRBACService(t *testing.T) rbac.Service {
	t.Helper()

	enforcer, err := rbac.NewEnforcer()
	assert.NoError(t, err)

	svc, err := rbac.NewService(enforcer)
	assert.NoError(t, err)
	return svc
}

func TestRBACService_Enforce(t *testing.T) {
	svc := newRBACService(t)

	cases := []struct {
		name     string
		role     domain.Role
		resource string
		action   string
		allowed  bool
	}{
		{"employee creates leave requests", domain.RoleEmployee, "leave_request", "create", true},
		{"employee cannot decide", domain.RoleEmployee, "leave_request", "decide", false},
		{"employee cannot manage users", domain.RoleEmployee, "user", "manage", false},
		{"hod decides", domain.RoleHOD, "leave_request", "decide", true},
		{"hod cannot use admin listing", domain.RoleHOD, "leave_request", "admin", false},
		{"hr manager decides", domain.RoleHRManager, "leave_request", "decide", true},
		{"ceo decides", domain.RoleCEO, "leave_request", "decide", true},
		{"ceo manages users", domain.RoleCEO, "user", "manage", true},
		{"admin uses admin listing", domain.RoleAdmin, "leave_request", "admin", true},
		{"admin manages users", domain.RoleAdmin, "user", "manage", true},
		{"admin cannot decide", domain.RoleAdmin, "leave_request", "decide", false},
		{"unknown role denied", domain.Role("Intern"), "leave_request", "read", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := svc.Enforce(string(tc.role), tc.resource, tc.action)
			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}
