package policy

import (
	"context"
	"errors"

	"peopledesk/internal/authz/model"
	"peopledesk/internal/authz/repository"
)

// fixtureDirectory is an in-memory DirectoryReader seeded with a small
// organization:
//
//	org 1 (isolation toggleable)
//	role 1 SuperAdmin (level 1), role 3 HRManager (level 3), role 5 Staff (level 5)
//	employee 1: SuperAdmin, no manager
//	employee 2: HRManager, reports to 1
//	employee 3: HRManager, reports to 1
//	employee 4: Staff, reports to 2
//	employees 8, 9: corrupted cycle 8→9→8, both HRManager
//
// User ids equal employee ids.
type fixtureDirectory struct {
	isolation     bool
	employees     map[int64]*model.Employee
	rolesByEmp    map[int64][]*model.Role
	grantsByRole  map[int64]map[string]bool // roleID -> permission name -> isGranted
	branchAccess  map[int64]map[int64]bool  // userID -> branchID -> active
	unavailable   bool
}

func newFixtureDirectory() *fixtureDirectory {
	superAdmin := &model.Role{ID: 1, Name: model.RoleNameSuperAdmin, HierarchyLevel: 1, IsActive: true}
	hrManager := &model.Role{ID: 3, Name: model.RoleNameHRManager, HierarchyLevel: 3, IsActive: true}
	staff := &model.Role{ID: 5, Name: "Staff", HierarchyLevel: 5, IsActive: true}

	mgr := func(id int64) *int64 { return &id }

	hrGrants := map[string]bool{
		model.PermEmployeeView:   true,
		model.PermEmployeeCreate: true,
		model.PermEmployeeUpdate: true,
		model.PermPayrollView:    true,
		model.PermPayrollProcess: true,
		model.PermReportView:     true,
	}
	superGrants := map[string]bool{
		model.PermEmployeeView:   true,
		model.PermEmployeeUpdate: true,
		model.PermPayrollApprove: true,
	}

	return &fixtureDirectory{
		isolation: true,
		employees: map[int64]*model.Employee{
			1: {ID: 1, OrganizationID: 1, BranchID: 10},
			2: {ID: 2, OrganizationID: 1, BranchID: 10, ReportingManagerID: mgr(1)},
			3: {ID: 3, OrganizationID: 1, BranchID: 11, ReportingManagerID: mgr(1)},
			4: {ID: 4, OrganizationID: 1, BranchID: 10, ReportingManagerID: mgr(2)},
			8: {ID: 8, OrganizationID: 1, BranchID: 10, ReportingManagerID: mgr(9)},
			9: {ID: 9, OrganizationID: 1, BranchID: 10, ReportingManagerID: mgr(8)},
		},
		rolesByEmp: map[int64][]*model.Role{
			1: {superAdmin},
			2: {hrManager},
			3: {hrManager},
			4: {staff},
			8: {hrManager},
			9: {hrManager},
		},
		grantsByRole: map[int64]map[string]bool{
			1: superGrants,
			3: hrGrants,
		},
		branchAccess: map[int64]map[int64]bool{},
	}
}

func (f *fixtureDirectory) grantBranch(userID, branchID int64) {
	if f.branchAccess[userID] == nil {
		f.branchAccess[userID] = map[int64]bool{}
	}
	f.branchAccess[userID][branchID] = true
}

func (f *fixtureDirectory) revokeBranch(userID, branchID int64) {
	if f.branchAccess[userID] != nil {
		f.branchAccess[userID][branchID] = false
	}
}

var errFixtureDown = errors.New("fixture store down")

func (f *fixtureDirectory) ActiveRoles(ctx context.Context, employeeID int64) ([]*model.Role, error) {
	if f.unavailable {
		return nil, errFixtureDown
	}
	return f.rolesByEmp[employeeID], nil
}

func (f *fixtureDirectory) PermissionGrants(ctx context.Context, roleIDs []int64, permissionName string) ([]*model.RolePermission, error) {
	if f.unavailable {
		return nil, errFixtureDown
	}
	var grants []*model.RolePermission
	for _, roleID := range roleIDs {
		perms, ok := f.grantsByRole[roleID]
		if !ok {
			continue
		}
		granted, ok := perms[permissionName]
		if !ok {
			continue
		}
		grants = append(grants, &model.RolePermission{RoleID: roleID, IsGranted: granted})
	}
	return grants, nil
}

func (f *fixtureDirectory) GetEmployee(ctx context.Context, employeeID int64) (*model.Employee, error) {
	if f.unavailable {
		return nil, errFixtureDown
	}
	emp, ok := f.employees[employeeID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return emp, nil
}

func (f *fixtureDirectory) CountEmployees(ctx context.Context, organizationID int64) (int64, error) {
	if f.unavailable {
		return 0, errFixtureDown
	}
	return int64(len(f.employees)), nil
}

func (f *fixtureDirectory) BranchIsolationEnabled(ctx context.Context, organizationID int64) (bool, error) {
	if f.unavailable {
		return false, errFixtureDown
	}
	return f.isolation, nil
}

func (f *fixtureDirectory) HasActiveBranchAccess(ctx context.Context, userID, branchID int64) (bool, error) {
	if f.unavailable {
		return false, errFixtureDown
	}
	return f.branchAccess[userID][branchID], nil
}

// memAuditSink collects audit entries in memory and can be forced to
// fail to exercise the audit-required deny path.
type memAuditSink struct {
	entries []*model.AuditLog
	failErr error
}

func (m *memAuditSink) AppendAuditLog(ctx context.Context, entry *model.AuditLog) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memAuditSink) FindAuditLogs(ctx context.Context, filter model.AuditLogFilter) ([]*model.AuditLog, int64, error) {
	return m.entries, int64(len(m.entries)), nil
}

func (m *memAuditSink) EnsureAuditIndexes(ctx context.Context) error { return nil }
