package policy

import (
	"context"
	"errors"

	"peopledesk/internal/authz/model"
	"peopledesk/internal/authz/repository"
)

// Evaluator checks one requirement kind for a principal against a
// resource. Implementations read current data on every call; decisions
// are never cached.
type Evaluator interface {
	Kind() Requirement
	Evaluate(ctx context.Context, p *model.Principal, res ResourceDescriptor) Decision
}

// isSuperAdmin reports whether the principal carries the super-admin
// claim or holds an active role at the top hierarchy level.
func isSuperAdmin(ctx context.Context, reader repository.DirectoryReader, p *model.Principal) (bool, error) {
	if p.SuperAdmin() {
		return true, nil
	}
	roles, err := reader.ActiveRoles(ctx, p.EmployeeID())
	if err != nil {
		return false, err
	}
	for _, role := range roles {
		if role.HierarchyLevel == model.HierarchyLevelSuperAdmin {
			return true, nil
		}
	}
	return false, nil
}

// permissionEvaluator resolves the principal's effective permission set
// as the union across active roles: any active role with an explicit
// granted row allows. A role lacking a row is neutral, and an explicit
// is_granted=false row does not veto a grant from another role.
type permissionEvaluator struct {
	reader repository.DirectoryReader
}

func NewPermissionEvaluator(reader repository.DirectoryReader) Evaluator {
	return &permissionEvaluator{reader: reader}
}

func (e *permissionEvaluator) Kind() Requirement { return RequirementPermission }

func (e *permissionEvaluator) Evaluate(ctx context.Context, p *model.Principal, res ResourceDescriptor) Decision {
	if res.RequiredPermission == "" {
		return Deny(ReasonMissingRequirement, RequirementPermission)
	}

	roles, err := e.reader.ActiveRoles(ctx, p.EmployeeID())
	if err != nil {
		return Deny(ReasonUnavailable, RequirementPermission)
	}
	if len(roles) == 0 {
		return Deny(ReasonPermissionDenied, RequirementPermission)
	}

	roleIDs := make([]int64, 0, len(roles))
	for _, role := range roles {
		roleIDs = append(roleIDs, role.ID)
	}

	grants, err := e.reader.PermissionGrants(ctx, roleIDs, res.RequiredPermission)
	if err != nil {
		return Deny(ReasonUnavailable, RequirementPermission)
	}
	for _, grant := range grants {
		if grant.IsGranted {
			return Allow()
		}
	}
	return Deny(ReasonPermissionDenied, RequirementPermission)
}

// hierarchyEvaluator gates actions on another employee's record. The
// principal must be the target's direct or transitive reporting
// manager, or outrank every role the target holds. Self-actions pass
// unconditionally; other policy requirements still apply.
type hierarchyEvaluator struct {
	reader repository.DirectoryReader
}

func NewHierarchyEvaluator(reader repository.DirectoryReader) Evaluator {
	return &hierarchyEvaluator{reader: reader}
}

func (e *hierarchyEvaluator) Kind() Requirement { return RequirementHierarchy }

func (e *hierarchyEvaluator) Evaluate(ctx context.Context, p *model.Principal, res ResourceDescriptor) Decision {
	if res.TargetEmployeeID == nil {
		return Allow()
	}
	targetID := *res.TargetEmployeeID
	if targetID == p.EmployeeID() {
		return Allow()
	}

	super, err := isSuperAdmin(ctx, e.reader, p)
	if err != nil {
		return Deny(ReasonUnavailable, RequirementHierarchy)
	}
	if super {
		return Allow()
	}

	inChain, d := e.inManagerChain(ctx, p.EmployeeID(), targetID, p.OrganizationID())
	if !d.Allowed {
		return d
	}
	if inChain {
		return Allow()
	}

	outranks, err := e.outranksAllRoles(ctx, p, targetID)
	if err != nil {
		return Deny(ReasonUnavailable, RequirementHierarchy)
	}
	if outranks {
		return Allow()
	}
	return Deny(ReasonInsufficientHierarchy, RequirementHierarchy)
}

// inManagerChain walks the target's reporting chain upward looking for
// the principal. The walk is bounded by the organization's employee
// count with a visited set so a corrupted cyclic chain terminates with
// a deny instead of looping.
func (e *hierarchyEvaluator) inManagerChain(ctx context.Context, principalEmployeeID, targetID, organizationID int64) (bool, Decision) {
	maxDepth, err := e.reader.CountEmployees(ctx, organizationID)
	if err != nil {
		return false, Deny(ReasonUnavailable, RequirementHierarchy)
	}

	target, err := e.reader.GetEmployee(ctx, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, Deny(ReasonInsufficientHierarchy, RequirementHierarchy)
		}
		return false, Deny(ReasonUnavailable, RequirementHierarchy)
	}

	visited := map[int64]bool{target.ID: true}
	current := target
	for depth := int64(0); current.ReportingManagerID != nil; depth++ {
		managerID := *current.ReportingManagerID
		if managerID == principalEmployeeID {
			return true, Allow()
		}
		if depth >= maxDepth || visited[managerID] {
			return false, Deny(ReasonHierarchyCycle, RequirementHierarchy)
		}
		visited[managerID] = true

		manager, err := e.reader.GetEmployee(ctx, managerID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				// Dangling manager reference terminates the chain.
				return false, Allow()
			}
			return false, Deny(ReasonUnavailable, RequirementHierarchy)
		}
		current = manager
	}
	return false, Allow()
}

// outranksAllRoles reports whether the principal's best hierarchy level
// is strictly more senior than every role held by the target.
func (e *hierarchyEvaluator) outranksAllRoles(ctx context.Context, p *model.Principal, targetID int64) (bool, error) {
	principalRoles, err := e.reader.ActiveRoles(ctx, p.EmployeeID())
	if err != nil {
		return false, err
	}
	if len(principalRoles) == 0 {
		return false, nil
	}
	best := principalRoles[0].HierarchyLevel
	for _, role := range principalRoles[1:] {
		if role.HierarchyLevel < best {
			best = role.HierarchyLevel
		}
	}

	targetRoles, err := e.reader.ActiveRoles(ctx, targetID)
	if err != nil {
		return false, err
	}
	for _, role := range targetRoles {
		if best >= role.HierarchyLevel {
			return false, nil
		}
	}
	return true, nil
}

// branchEvaluator enforces per-branch data isolation. Isolation is an
// organization-wide opt-in; with the flag off, branch scoping is not
// enforced for anyone.
type branchEvaluator struct {
	reader repository.DirectoryReader
}

func NewBranchEvaluator(reader repository.DirectoryReader) Evaluator {
	return &branchEvaluator{reader: reader}
}

func (e *branchEvaluator) Kind() Requirement { return RequirementBranch }

func (e *branchEvaluator) Evaluate(ctx context.Context, p *model.Principal, res ResourceDescriptor) Decision {
	if res.TargetBranchID == nil {
		return Allow()
	}

	enabled, err := e.reader.BranchIsolationEnabled(ctx, p.OrganizationID())
	if err != nil {
		return Deny(ReasonUnavailable, RequirementBranch)
	}
	if !enabled {
		return Allow()
	}

	super, err := isSuperAdmin(ctx, e.reader, p)
	if err != nil {
		return Deny(ReasonUnavailable, RequirementBranch)
	}
	if super {
		return Allow()
	}

	held, err := e.reader.HasActiveBranchAccess(ctx, p.UserID(), *res.TargetBranchID)
	if err != nil {
		return Deny(ReasonUnavailable, RequirementBranch)
	}
	if held {
		return Allow()
	}
	return Deny(ReasonBranchAccessDenied, RequirementBranch)
}
