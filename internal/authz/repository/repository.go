package repository

import (
	"context"
	"errors"

	"peopledesk/internal/authz/model"
)

var (
	ErrDuplicate = errors.New("duplicate record")
	ErrNotFound  = errors.New("record not found")
)

// DirectoryReader is the read side consumed by the decision engine.
// Contract: every read excludes soft-deleted rows and inactive
// assignments/grants. Implementations must uphold this globally, not
// per call site; a revoked grant simply stops matching on the next read.
type DirectoryReader interface {
	// ActiveRoles returns the roles held by the employee through active
	// assignments, restricted to roles that are themselves active.
	ActiveRoles(ctx context.Context, employeeID int64) ([]*model.Role, error)
	// PermissionGrants returns the RolePermission rows linking any of
	// the given roles to the named permission. An unknown permission
	// name yields an empty result, not an error.
	PermissionGrants(ctx context.Context, roleIDs []int64, permissionName string) ([]*model.RolePermission, error)
	// GetEmployee returns ErrNotFound for unknown or soft-deleted ids.
	GetEmployee(ctx context.Context, employeeID int64) (*model.Employee, error)
	// CountEmployees bounds the manager-chain walk.
	CountEmployees(ctx context.Context, organizationID int64) (int64, error)
	// BranchIsolationEnabled reads the organization-wide toggle.
	BranchIsolationEnabled(ctx context.Context, organizationID int64) (bool, error)
	// HasActiveBranchAccess reports whether the user currently holds an
	// active grant to the branch.
	HasActiveBranchAccess(ctx context.Context, userID, branchID int64) (bool, error)
}

// AccessRepository is the administrative write side. Revocations are
// soft: rows are disabled and stamped, never removed.
type AccessRepository interface {
	AssignEmployeeRole(ctx context.Context, assignment *model.EmployeeRole) error
	RevokeEmployeeRole(ctx context.Context, employeeID, roleID, revokedBy int64) error
	FindEmployeeRoles(ctx context.Context, employeeID int64, activeOnly bool) ([]*model.EmployeeRole, error)
	// GrantBranchAccess inserts a fresh grant row; revoked rows for the
	// same pair keep their stamps. A primary grant demotes the user's
	// previous primary in the same transaction.
	GrantBranchAccess(ctx context.Context, grant *model.UserBranchAccess) error
	RevokeBranchAccess(ctx context.Context, userID, branchID, revokedBy int64) error
	FindBranchAccess(ctx context.Context, filter model.BranchAccessFilter) ([]*model.UserBranchAccess, error)
	SetBranchIsolation(ctx context.Context, organizationID int64, enabled bool) error
	EnsureIndexes(ctx context.Context) error
}

// AuditRepository is the append-only audit sink. Entries are never
// updated or removed once written.
type AuditRepository interface {
	AppendAuditLog(ctx context.Context, entry *model.AuditLog) error
	FindAuditLogs(ctx context.Context, filter model.AuditLogFilter) ([]*model.AuditLog, int64, error)
	EnsureAuditIndexes(ctx context.Context) error
}
