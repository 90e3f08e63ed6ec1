package domain

// Role is the closed set of actor roles. The three approver roles act in
// sequence on a leave request; Admin only sees dashboards.
type Role string

const (
	RoleEmployee  Role = "Employee"
	RoleHOD       Role = "HOD"
	RoleHRManager Role = "HR Manager"
	RoleCEO       Role = "CEO"
	RoleAdmin     Role = "Admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleEmployee, RoleHOD, RoleHRManager, RoleCEO, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// Actor is the immutable identity context every core operation receives.
// It comes from the session token; the core never reads ambient state.
type Actor struct {
	UserID         string
	FullName       string
	Role           Role
	OrganizationID string
}
