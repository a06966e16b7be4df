package model

// Hierarchy levels. Lower value outranks higher value.
const (
	HierarchyLevelSuperAdmin = 1
)

// Well-known role names seeded by the directory.
const (
	RoleNameSuperAdmin = "SuperAdmin"
	RoleNameHRManager  = "HRManager"
	RoleNameBranchHead = "BranchHead"
	RoleNameEmployee   = "Employee"
)

// Permission names in dotted Module.Action form. These double as the
// policy names evaluated by the decision engine.
const (
	PermEmployeeView   = "Employee.View"
	PermEmployeeCreate = "Employee.Create"
	PermEmployeeUpdate = "Employee.Update"
	PermEmployeeDelete = "Employee.Delete"

	PermPayrollView    = "Payroll.View"
	PermPayrollProcess = "Payroll.Process"
	PermPayrollApprove = "Payroll.Approve"

	PermPerformanceView   = "Performance.View"
	PermPerformanceUpdate = "Performance.Update"

	PermReportView   = "Report.View"
	PermReportCreate = "Report.Create"

	PermAccessAssignRole   = "Access.AssignRole"
	PermAccessRevokeRole   = "Access.RevokeRole"
	PermAccessGrantBranch  = "Access.GrantBranch"
	PermAccessRevokeBranch = "Access.RevokeBranch"
	PermAccessViewAudit    = "Access.ViewAudit"

	PermOrganizationUpdate = "Organization.Update"
)

// Audit categories.
const (
	AuditCategoryAuthorization = "authorization"
	AuditCategoryRoleGrant     = "role_grant"
	AuditCategoryBranchGrant   = "branch_grant"
	AuditCategoryOrgSetting    = "org_setting"
)

// Audit severities.
const (
	AuditSeverityLow      = "low"
	AuditSeverityMedium   = "medium"
	AuditSeverityHigh     = "high"
	AuditSeverityCritical = "critical"
)

// Audit outcomes.
const (
	AuditOutcomeAllowed = "allowed"
	AuditOutcomeDenied  = "denied"
	AuditOutcomeApplied = "applied"
	AuditOutcomeFailed  = "failed"
)

// Audited entity names.
const (
	EntityEmployeeRole     = "employee_role"
	EntityUserBranchAccess = "user_branch_access"
	EntityOrganization     = "organization"
	EntityPolicy           = "policy"
)
