package user

type Permission string

const (
	// Self service
	PermissionAttendanceClock   Permission = "attendance.clock"
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionSalaryViewOwn     Permission = "salary.view_own"

	// HR
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionSalaryViewAll     Permission = "salary.view_all"
	PermissionSalaryCalculate   Permission = "salary.calculate"

	// Admin
	PermissionPayrollRun Permission = "payroll.run"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionAttendanceClock,
		PermissionAttendanceViewOwn,
		PermissionSalaryViewOwn,
		PermissionAttendanceViewAll,
		PermissionSalaryViewAll,
		PermissionSalaryCalculate,
		PermissionPayrollRun,
	},
	RoleHR: {
		PermissionAttendanceClock,
		PermissionAttendanceViewOwn,
		PermissionSalaryViewOwn,
		PermissionAttendanceViewAll,
		PermissionSalaryViewAll,
		PermissionSalaryCalculate,
		PermissionPayrollRun,
	},
	RoleEmployee: {
		PermissionAttendanceClock,
		PermissionAttendanceViewOwn,
		PermissionSalaryViewOwn,
		PermissionSalaryCalculate,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
