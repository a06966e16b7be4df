package model

import "strings"

// AssignEmployeeRoleReq assigns a role to an employee.
type AssignEmployeeRoleReq struct {
	EmployeeID int64 `json:"employee_id" validate:"required,gt=0"`
	RoleID     int64 `json:"role_id" validate:"required,gt=0"`
}

func (r *AssignEmployeeRoleReq) Validate() error {
	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

// RevokeEmployeeRoleReq soft-disables a role assignment.
type RevokeEmployeeRoleReq struct {
	EmployeeID int64 `json:"employee_id" validate:"required,gt=0"`
	RoleID     int64 `json:"role_id" validate:"required,gt=0"`
}

func (r *RevokeEmployeeRoleReq) Validate() error {
	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

// GrantBranchAccessReq grants a user access to a branch.
type GrantBranchAccessReq struct {
	UserID    int64 `json:"user_id" validate:"required,gt=0"`
	BranchID  int64 `json:"branch_id" validate:"required,gt=0"`
	IsPrimary bool  `json:"is_primary"`
}

func (r *GrantBranchAccessReq) Validate() error {
	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

// RevokeBranchAccessReq soft-disables a branch grant.
type RevokeBranchAccessReq struct {
	UserID   int64 `json:"user_id" validate:"required,gt=0"`
	BranchID int64 `json:"branch_id" validate:"required,gt=0"`
}

func (r *RevokeBranchAccessReq) Validate() error {
	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

// SetBranchIsolationReq toggles the organization-wide isolation flag.
type SetBranchIsolationReq struct {
	OrganizationID int64 `json:"organization_id" validate:"required,gt=0"`
	Enabled        bool  `json:"enabled"`
}

func (r *SetBranchIsolationReq) Validate() error {
	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

// EvaluateReq probes a policy decision without performing the action.
type EvaluateReq struct {
	Policy           string `json:"policy"`
	TargetBranchID   *int64 `json:"target_branch_id,omitempty"`
	TargetEmployeeID *int64 `json:"target_employee_id,omitempty"`
}

func (r *EvaluateReq) Validate() error {
	r.Policy = strings.TrimSpace(r.Policy)
	if r.Policy == "" {
		return &ErrorDetail{Code: "bad_request", Message: "policy is required"}
	}
	return nil
}

// GetAuditLogsReq filters the audit log listing.
type GetAuditLogsReq struct {
	ActorUserID int64  `query:"actor_user_id"`
	Category    string `query:"category"`
	Outcome     string `query:"outcome"`
	Page        int64  `query:"page"`
	PageSize    int64  `query:"page_size"`
}

func (r *GetAuditLogsReq) Validate() error {
	r.Category = strings.ToLower(strings.TrimSpace(r.Category))
	r.Outcome = strings.ToLower(strings.TrimSpace(r.Outcome))
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 || r.PageSize > 200 {
		r.PageSize = 50
	}
	return nil
}
