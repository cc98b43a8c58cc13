package access

import "jobtrack/internal/domain"

// Action is a named operation a caller can attempt against the workflow.
type Action string

const (
	ActionCreateJob        Action = "job:create"
	ActionViewAllJobs      Action = "job:view_all"
	ActionViewAssignedJobs Action = "job:view_assigned"
	ActionEditJobDetails   Action = "job:edit_details" // customer/machine identity + assignment
	ActionUpdateStatus     Action = "job:update_status"
	ActionEditWorkLog      Action = "job:edit_worklog" // remarks, spares, charges, photo
	ActionCloseCall        Action = "job:close_call"
	ActionViewReports      Action = "report:view"
	ActionViewCustomers    Action = "customer:view"
	ActionAddUser          Action = "admin:add_user"
)

// Session is the explicit caller identity passed into every workflow call.
// There is no ambient global; handlers build it from the validated token.
type Session struct {
	ActorID int64
	Email   string
	Role    domain.UserRole
}

var rolePermissions = map[domain.UserRole]map[Action]bool{
	domain.RoleEngineer: {
		ActionViewAssignedJobs: true,
		ActionUpdateStatus:     true,
		ActionEditWorkLog:      true,
	},
	domain.RoleCoordinator: {
		ActionCreateJob:        true,
		ActionViewAllJobs:      true,
		ActionViewAssignedJobs: true,
		ActionEditJobDetails:   true,
		ActionUpdateStatus:     true,
		ActionEditWorkLog:      true,
		ActionCloseCall:        true,
		ActionViewReports:      true,
		ActionViewCustomers:    true,
		ActionAddUser:          true,
	},
	domain.RoleOwner: {
		ActionCreateJob:        true,
		ActionViewAllJobs:      true,
		ActionViewAssignedJobs: true,
		ActionEditJobDetails:   true,
		ActionUpdateStatus:     true,
		ActionEditWorkLog:      true,
		ActionCloseCall:        true,
		ActionViewReports:      true,
		ActionViewCustomers:    true,
		ActionAddUser:          true,
	},
}

// Can reports whether the session's role permits the action. Any action not
// matched here must be rejected before it reaches the workflow.
func Can(s Session, a Action) bool {
	perms, ok := rolePermissions[s.Role]
	if !ok {
		return false
	}
	return perms[a]
}

// CanAddRole gates user administration: owners add users of any role,
// coordinators add only engineers.
func CanAddRole(s Session, target domain.UserRole) bool {
	if !Can(s, ActionAddUser) {
		return false
	}
	if s.Role == domain.RoleOwner {
		return true
	}
	return s.Role == domain.RoleCoordinator && target == domain.RoleEngineer
}
