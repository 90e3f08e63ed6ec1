package rbac

import (
	"sync"

	"github.com/ZBee-Tech/e-Conges/internal/domain"

	"github.com/casbin/casbin/v2"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

// NewService loads the static permission matrix for the closed role set.
// Roles are fixed in this system, so policies live in code instead of a
// policy store.
func NewService(enforcer *casbin.Enforcer) (Service, error) {
	policies := [][]string{
		{string(domain.RoleEmployee), "leave_request", "create"},
		{string(domain.RoleEmployee), "leave_request", "read"},
		{string(domain.RoleEmployee), "notification", "read"},

		{string(domain.RoleHOD), "leave_request", "read"},
		{string(domain.RoleHOD), "leave_request", "decide"},
		{string(domain.RoleHOD), "notification", "read"},

		{string(domain.RoleHRManager), "leave_request", "read"},
		{string(domain.RoleHRManager), "leave_request", "decide"},
		{string(domain.RoleHRManager), "notification", "read"},

		{string(domain.RoleCEO), "leave_request", "read"},
		{string(domain.RoleCEO), "leave_request", "decide"},
		{string(domain.RoleCEO), "notification", "read"},
		{string(domain.RoleCEO), "user", "manage"},

		{string(domain.RoleAdmin), "leave_request", "read"},
		{string(domain.RoleAdmin), "leave_request", "admin"},
		{string(domain.RoleAdmin), "user", "manage"},
	}

	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(role, resource, action)
}
