package policy

// Reason explains a deny. Denial is a first-class return value, never
// an error: every reason is a terminal DENY outcome.
type Reason string

const (
	ReasonNone                  Reason = ""
	ReasonInvalidPrincipal      Reason = "invalid_principal"
	ReasonMissingRequirement    Reason = "missing_requirement"
	ReasonPermissionDenied      Reason = "permission_denied"
	ReasonInsufficientHierarchy Reason = "insufficient_hierarchy"
	ReasonHierarchyCycle        Reason = "hierarchy_cycle_detected"
	ReasonBranchAccessDenied    Reason = "branch_access_denied"
	ReasonUnavailable           Reason = "authorization_unavailable"
)

// Requirement identifies one evaluator kind attached to a policy.
type Requirement string

const (
	RequirementPermission Requirement = "permission"
	RequirementHierarchy  Requirement = "hierarchy"
	RequirementBranch     Requirement = "branch"
)

// Decision is the sealed outcome of one evaluation. The reason and
// failed requirement are for the audit trail and internal diagnostics
// only; they must never be echoed to an unauthorized caller.
type Decision struct {
	Allowed           bool        `json:"allowed"`
	Reason            Reason      `json:"reason,omitempty"`
	FailedRequirement Requirement `json:"failed_requirement,omitempty"`
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason Reason, failed Requirement) Decision {
	return Decision{Allowed: false, Reason: reason, FailedRequirement: failed}
}

// ResourceDescriptor identifies the resource an action touches. Target
// ids are optional; a nil id makes the corresponding check inapplicable.
type ResourceDescriptor struct {
	RequiredPermission string
	TargetBranchID     *int64
	TargetEmployeeID   *int64
}

// OperationPolicy declares the requirements guarding one operation.
type OperationPolicy struct {
	Permission    string        `json:"permission"`
	Requirements  []Requirement `json:"requirements"`
	AuditRequired bool          `json:"audit_required,omitempty"`
	Category      string        `json:"category,omitempty"`
	Severity      string        `json:"severity,omitempty"`
}

// ModulePolicy holds all operation policies of one module, loaded from
// an embedded JSON file.
type ModulePolicy struct {
	Module     string                      `json:"module"`
	Operations map[string]*OperationPolicy `json:"operations"`
}
