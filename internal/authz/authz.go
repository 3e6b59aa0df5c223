// Package authz holds the permission table for every mutating operation:
// which roles may perform it, and whether owning the target resource
// grants it to an employee. Handlers and services consult this table
// instead of comparing role strings inline.
package authz

import "github.com/employeems/employee-management-api/internal/constants"

type Action string

const (
	ActionCategoryCreate Action = "category:create"
	ActionEmployeeManage Action = "employee:manage"
	ActionAdminRecords   Action = "admin:records"

	ActionTaskCreate       Action = "task:create"
	ActionTaskEditAll      Action = "task:edit_all"
	ActionTaskEditStatus   Action = "task:edit_status"
	ActionTaskDelete       Action = "task:delete"
	ActionTaskAttach       Action = "task:attach"
	ActionEmployeeViewSelf Action = "employee:view_self"

	ActionSubmissionCreate Action = "submission:create"
	ActionSubmissionReview Action = "submission:review"
	ActionSubmissionDelete Action = "submission:delete"
)

// Identity is the decoded session token: who is calling, and as what.
type Identity struct {
	ID   uint64
	Role string
}

// IsAdmin reports whether the identity carries the admin role.
func (id Identity) IsAdmin() bool {
	return id.Role == constants.RoleAdmin
}

type rule struct {
	roles map[string]bool
	// ownerOnly restricts the employee role to resources it owns;
	// the ownership predicate is evaluated against the owner argument.
	ownerOnly bool
}

var rules = map[Action]rule{
	ActionCategoryCreate: {roles: set(constants.RoleAdmin)},
	ActionEmployeeManage: {roles: set(constants.RoleAdmin)},
	ActionAdminRecords:   {roles: set(constants.RoleAdmin)},

	ActionTaskCreate:     {roles: set(constants.RoleAdmin)},
	ActionTaskEditAll:    {roles: set(constants.RoleAdmin)},
	ActionTaskEditStatus: {roles: set(constants.RoleAdmin, constants.RoleEmployee), ownerOnly: true},
	ActionTaskDelete:     {roles: set(constants.RoleAdmin)},
	ActionTaskAttach:     {roles: set(constants.RoleAdmin, constants.RoleEmployee), ownerOnly: true},

	ActionEmployeeViewSelf: {roles: set(constants.RoleAdmin, constants.RoleEmployee), ownerOnly: true},

	ActionSubmissionCreate: {roles: set(constants.RoleEmployee)},
	ActionSubmissionReview: {roles: set(constants.RoleAdmin)},
	ActionSubmissionDelete: {roles: set(constants.RoleAdmin, constants.RoleEmployee), ownerOnly: true},
}

// Can reports whether the identity may perform action on a resource owned
// by ownerID. For actions without an ownership dimension pass 0; admins
// are never subject to the ownership predicate.
func Can(id Identity, action Action, ownerID uint64) bool {
	r, ok := rules[action]
	if !ok {
		return false
	}
	if !r.roles[id.Role] {
		return false
	}
	if r.ownerOnly && !id.IsAdmin() {
		return id.ID == ownerID
	}
	return true
}

func set(roles ...string) map[string]bool {
	m := make(map[string]bool, len(roles))
	for _, r := range roles {
		m[r] = true
	}
	return m
}
