package access

import (
	"testing"

	"jobtrack/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestCan_PolicyTable(t *testing.T) {
	owner := Session{Role: domain.RoleOwner}
	coordinator := Session{Role: domain.RoleCoordinator}
	engineer := Session{Role: domain.RoleEngineer}

	cases := []struct {
		action      Action
		owner       bool
		coordinator bool
		engineer    bool
	}{
		{ActionCreateJob, true, true, false},
		{ActionViewAllJobs, true, true, false},
		{ActionViewAssignedJobs, true, true, true},
		{ActionEditJobDetails, true, true, false},
		{ActionUpdateStatus, true, true, true},
		{ActionEditWorkLog, true, true, true},
		{ActionCloseCall, true, true, false},
		{ActionViewReports, true, true, false},
		{ActionViewCustomers, true, true, false},
		{ActionAddUser, true, true, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.owner, Can(owner, tc.action), "owner %s", tc.action)
		assert.Equal(t, tc.coordinator, Can(coordinator, tc.action), "coordinator %s", tc.action)
		assert.Equal(t, tc.engineer, Can(engineer, tc.action), "engineer %s", tc.action)
	}
}

func TestCan_UnknownRoleDeniedEverything(t *testing.T) {
	s := Session{Role: domain.UserRole("intern")}
	assert.False(t, Can(s, ActionViewAssignedJobs))
	assert.False(t, Can(s, ActionCreateJob))
}

func TestCanAddRole(t *testing.T) {
	owner := Session{Role: domain.RoleOwner}
	coordinator := Session{Role: domain.RoleCoordinator}
	engineer := Session{Role: domain.RoleEngineer}

	assert.True(t, CanAddRole(owner, domain.RoleOwner))
	assert.True(t, CanAddRole(owner, domain.RoleCoordinator))
	assert.True(t, CanAddRole(owner, domain.RoleEngineer))

	assert.True(t, CanAddRole(coordinator, domain.RoleEngineer))
	assert.False(t, CanAddRole(coordinator, domain.RoleCoordinator))
	assert.False(t, CanAddRole(coordinator, domain.RoleOwner))

	assert.False(t, CanAddRole(engineer, domain.RoleEngineer))
}
