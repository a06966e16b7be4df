package service

import (
	"context"

	"peopledesk/internal/authz/model"

	"github.com/stretchr/testify/mock"
)

type MockDirectoryReader struct {
	mock.Mock
}

func (m *MockDirectoryReader) ActiveRoles(ctx context.Context, employeeID int64) ([]*model.Role, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Role), args.Error(1)
}

func (m *MockDirectoryReader) PermissionGrants(ctx context.Context, roleIDs []int64, permissionName string) ([]*model.RolePermission, error) {
	args := m.Called(ctx, roleIDs, permissionName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.RolePermission), args.Error(1)
}

func (m *MockDirectoryReader) GetEmployee(ctx context.Context, employeeID int64) (*model.Employee, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employee), args.Error(1)
}

func (m *MockDirectoryReader) CountEmployees(ctx context.Context, organizationID int64) (int64, error) {
	args := m.Called(ctx, organizationID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDirectoryReader) BranchIsolationEnabled(ctx context.Context, organizationID int64) (bool, error) {
	args := m.Called(ctx, organizationID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDirectoryReader) HasActiveBranchAccess(ctx context.Context, userID, branchID int64) (bool, error) {
	args := m.Called(ctx, userID, branchID)
	return args.Bool(0), args.Error(1)
}

type MockAccessRepository struct {
	mock.Mock
}

func (m *MockAccessRepository) AssignEmployeeRole(ctx context.Context, assignment *model.EmployeeRole) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAccessRepository) RevokeEmployeeRole(ctx context.Context, employeeID, roleID, revokedBy int64) error {
	args := m.Called(ctx, employeeID, roleID, revokedBy)
	return args.Error(0)
}

func (m *MockAccessRepository) FindEmployeeRoles(ctx context.Context, employeeID int64, activeOnly bool) ([]*model.EmployeeRole, error) {
	args := m.Called(ctx, employeeID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.EmployeeRole), args.Error(1)
}

func (m *MockAccessRepository) GrantBranchAccess(ctx context.Context, grant *model.UserBranchAccess) error {
	args := m.Called(ctx, grant)
	return args.Error(0)
}

func (m *MockAccessRepository) RevokeBranchAccess(ctx context.Context, userID, branchID, revokedBy int64) error {
	args := m.Called(ctx, userID, branchID, revokedBy)
	return args.Error(0)
}

func (m *MockAccessRepository) FindBranchAccess(ctx context.Context, filter model.BranchAccessFilter) ([]*model.UserBranchAccess, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.UserBranchAccess), args.Error(1)
}

func (m *MockAccessRepository) SetBranchIsolation(ctx context.Context, organizationID int64, enabled bool) error {
	args := m.Called(ctx, organizationID, enabled)
	return args.Error(0)
}

func (m *MockAccessRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) AppendAuditLog(ctx context.Context, entry *model.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) FindAuditLogs(ctx context.Context, filter model.AuditLogFilter) ([]*model.AuditLog, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.AuditLog), args.Get(1).(int64), args.Error(2)
}

func (m *MockAuditRepository) EnsureAuditIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
