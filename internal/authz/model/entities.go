package model

import "time"

// Organization is the tenant root. BranchIsolationEnabled is an
// organization-wide toggle: when false, branch scoping is not enforced
// for any user of that organization.
type Organization struct {
	ID                     int64     `bson:"_id" json:"id"`
	Name                   string    `bson:"name" json:"name"`
	BranchIsolationEnabled bool      `bson:"branch_isolation_enabled" json:"branch_isolation_enabled"`
	CreatedAt              time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt              time.Time `bson:"updated_at" json:"updated_at"`
}

// Branch belongs to exactly one organization.
type Branch struct {
	ID             int64  `bson:"_id" json:"id"`
	OrganizationID int64  `bson:"organization_id" json:"organization_id"`
	Name           string `bson:"name" json:"name"`
}

// Employee is a person record. ReportingManagerID is a nullable
// self-reference; the chain is expected to be acyclic but the engine
// never trusts that (see hierarchy evaluator).
type Employee struct {
	ID                 int64      `bson:"_id" json:"id"`
	OrganizationID     int64      `bson:"organization_id" json:"organization_id"`
	BranchID           int64      `bson:"branch_id" json:"branch_id"`
	ReportingManagerID *int64     `bson:"reporting_manager_id,omitempty" json:"reporting_manager_id,omitempty"`
	CreatedAt          time.Time  `bson:"created_at" json:"created_at"`
	DeletedAt          *time.Time `bson:"deleted_at,omitempty" json:"-"`
}

// User is the login identity, 1:1 with Employee.
type User struct {
	ID         int64      `bson:"_id" json:"id"`
	EmployeeID int64      `bson:"employee_id" json:"employee_id"`
	CreatedAt  time.Time  `bson:"created_at" json:"created_at"`
	DeletedAt  *time.Time `bson:"deleted_at,omitempty" json:"-"`
}

// Role is a named permission bundle. HierarchyLevel is totally ordered;
// a lower value outranks a higher one (1 = highest authority).
type Role struct {
	ID             int64      `bson:"_id" json:"id"`
	Name           string     `bson:"name" json:"name"`
	HierarchyLevel int        `bson:"hierarchy_level" json:"hierarchy_level"`
	IsActive       bool       `bson:"is_active" json:"is_active"`
	CreatedAt      time.Time  `bson:"created_at" json:"created_at"`
	DeletedAt      *time.Time `bson:"deleted_at,omitempty" json:"-"`
}

// Permission is an atomic capability. (Module, Action, Resource) is
// unique; Name is the dotted form used by policies, e.g. "Employee.Update".
type Permission struct {
	ID       int64  `bson:"_id" json:"id"`
	Module   string `bson:"module" json:"module"`
	Action   string `bson:"action" json:"action"`
	Resource string `bson:"resource" json:"resource"`
	Name     string `bson:"name" json:"name"`
}

// RolePermission links a role to a permission. Absence of a row means
// not granted; IsGranted=false is an explicit deny kept distinct from
// absence for audit clarity.
type RolePermission struct {
	RoleID       int64 `bson:"role_id" json:"role_id"`
	PermissionID int64 `bson:"permission_id" json:"permission_id"`
	IsGranted    bool  `bson:"is_granted" json:"is_granted"`
}

// EmployeeRole assigns a role to an employee. Rows are soft-disabled on
// revocation (IsActive=false, RevokedAt set), never physically deleted.
type EmployeeRole struct {
	ID           string     `bson:"_id,omitempty" json:"id"`
	EmployeeID   int64      `bson:"employee_id" json:"employee_id"`
	RoleID       int64      `bson:"role_id" json:"role_id"`
	IsActive     bool       `bson:"is_active" json:"is_active"`
	AssignedDate time.Time  `bson:"assigned_date" json:"assigned_date"`
	AssignedBy   int64      `bson:"assigned_by,omitempty" json:"assigned_by,omitempty"`
	RevokedBy    *int64     `bson:"revoked_by,omitempty" json:"revoked_by,omitempty"`
	RevokedAt    *time.Time `bson:"revoked_at,omitempty" json:"revoked_at,omitempty"`
}

// UserBranchAccess grants a user access to a branch. Exactly one active
// row per user has IsPrimary=true. Revoked rows are retained for audit.
type UserBranchAccess struct {
	ID        string     `bson:"_id,omitempty" json:"id"`
	UserID    int64      `bson:"user_id" json:"user_id"`
	BranchID  int64      `bson:"branch_id" json:"branch_id"`
	IsPrimary bool       `bson:"is_primary" json:"is_primary"`
	IsActive  bool       `bson:"is_active" json:"is_active"`
	GrantedBy int64      `bson:"granted_by" json:"granted_by"`
	GrantedAt time.Time  `bson:"granted_at" json:"granted_at"`
	RevokedBy *int64     `bson:"revoked_by,omitempty" json:"revoked_by,omitempty"`
	RevokedAt *time.Time `bson:"revoked_at,omitempty" json:"revoked_at,omitempty"`
}

// BranchAccessFilter narrows FindBranchAccess queries.
type BranchAccessFilter struct {
	UserID     int64
	BranchID   int64
	ActiveOnly bool
}
