package user

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access, including batch payroll
	RoleHR       Role = "hr"       // Manages payroll and attendance for everyone
	RoleEmployee Role = "employee" // Own attendance and salary only
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleHR, RoleEmployee:
		return true
	default:
		return false
	}
}

// Claims is the caller identity carried in an access token.
type Claims struct {
	UserID     string
	EmployeeID string // empty for staff accounts without an employee record
	Role       Role
}

// IsStaff reports whether the caller acts on behalf of HR.
func (c Claims) IsStaff() bool {
	return c.Role == RoleAdmin || c.Role == RoleHR
}

// CanAccessEmployee reports whether the caller may read or act on the
// employee's attendance and salary.
func (c Claims) CanAccessEmployee(employeeID string) bool {
	if c.IsStaff() {
		return true
	}
	return c.EmployeeID != "" && c.EmployeeID == employeeID
}
