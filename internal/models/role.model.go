package models

// Role is the closed set of account classifications. The legacy numeric codes
// (1=admin, 2=supervisor, 3=tecnico) exist only at the storage and provisioning
// boundaries; business logic branches on Role, never on the raw code.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSupervisor Role = "supervisor"
	RoleTechnician Role = "tecnico"
)

const (
	roleCodeAdmin      = 1
	roleCodeSupervisor = 2
	roleCodeTechnician = 3
)

// RoleFromCode maps a stored rol_id to its Role. ok is false for any code
// outside the closed set.
func RoleFromCode(code int) (Role, bool) {
	switch code {
	case roleCodeAdmin:
		return RoleAdmin, true
	case roleCodeSupervisor:
		return RoleSupervisor, true
	case roleCodeTechnician:
		return RoleTechnician, true
	default:
		return "", false
	}
}

// Code maps back to the legacy numeric column value. Zero means unknown.
func (r Role) Code() int {
	switch r {
	case RoleAdmin:
		return roleCodeAdmin
	case RoleSupervisor:
		return roleCodeSupervisor
	case RoleTechnician:
		return roleCodeTechnician
	default:
		return 0
	}
}

func (r Role) Valid() bool {
	return r.Code() != 0
}

// HomeRoute is the landing route the frontend navigates to after login.
func (r Role) HomeRoute() string {
	switch r {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleSupervisor:
		return "/supervisor/dashboard"
	case RoleTechnician:
		return "/tecnico/dashboard"
	default:
		return "/login"
	}
}
