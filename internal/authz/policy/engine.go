package policy

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"peopledesk/internal/authz/audit"
	"peopledesk/internal/authz/model"
	"peopledesk/internal/authz/repository"
)

// Engine composes the requirement evaluators into named policies. A
// policy is guarded by an AND over its requirements; the first deny
// short-circuits and is the one surfaced. Every evaluation is a pure
// function of current data with no cross-request state.
type Engine struct {
	policies   map[string]*ModulePolicy
	evaluators map[Requirement]Evaluator
	recorder   *audit.Recorder
}

// NewEngine loads the embedded policy declarations and wires the three
// evaluators over the given reader.
func NewEngine(reader repository.DirectoryReader, recorder *audit.Recorder) (*Engine, error) {
	loader := NewLoader()
	policies, err := loader.LoadModulePolicies()
	if err != nil {
		return nil, fmt.Errorf("failed to load module policies: %w", err)
	}

	evaluators := map[Requirement]Evaluator{
		RequirementPermission: NewPermissionEvaluator(reader),
		RequirementHierarchy:  NewHierarchyEvaluator(reader),
		RequirementBranch:     NewBranchEvaluator(reader),
	}

	return &Engine{
		policies:   policies,
		evaluators: evaluators,
		recorder:   recorder,
	}, nil
}

// GetPolicy resolves a dotted policy name like "Employee.Update" to its
// declared operation policy.
func (e *Engine) GetPolicy(policyName string) (*OperationPolicy, error) {
	parts := strings.SplitN(policyName, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("malformed policy name: %s", policyName)
	}
	mp, ok := e.policies[strings.ToLower(parts[0])]
	if !ok {
		return nil, fmt.Errorf("unknown policy module: %s", parts[0])
	}
	op, ok := mp.Operations[strings.ToLower(parts[1])]
	if !ok {
		return nil, fmt.Errorf("unknown operation %s for module %s", parts[1], parts[0])
	}
	return op, nil
}

// Evaluate runs the named policy for the principal and resource. It
// fails closed on every ambiguity: a nil principal, an unknown policy
// name, or a backing-store failure all deny.
func (e *Engine) Evaluate(ctx context.Context, p *model.Principal, policyName string, res ResourceDescriptor) Decision {
	if p == nil {
		d := Deny(ReasonInvalidPrincipal, "")
		e.recordDeny(ctx, 0, policyName, nil, res, d)
		return d
	}

	op, err := e.GetPolicy(policyName)
	if err != nil {
		// A caller naming a policy the engine does not know is a
		// programming error; denying is the only safe answer.
		d := Deny(ReasonMissingRequirement, "")
		e.recordDeny(ctx, p.UserID(), policyName, nil, res, d)
		return d
	}

	if res.RequiredPermission == "" {
		res.RequiredPermission = op.Permission
	}

	d := Allow()
	for _, req := range op.Requirements {
		ev, ok := e.evaluators[req]
		if !ok {
			d = Deny(ReasonMissingRequirement, req)
			break
		}
		if verdict := ev.Evaluate(ctx, p, res); !verdict.Allowed {
			d = verdict
			break
		}
	}

	if !d.Allowed {
		e.recordDeny(ctx, p.UserID(), policyName, op, res, d)
		return d
	}

	// Compliance-critical policies refuse to proceed without a durable
	// audit trail of the allow itself.
	if op.AuditRequired {
		entry := buildEntry(p.UserID(), policyName, op, res)
		entry.Outcome = model.AuditOutcomeAllowed
		if err := e.recorder.RecordRequired(ctx, entry); err != nil {
			return Deny(ReasonUnavailable, "")
		}
	}
	return d
}

// recordDeny appends a denial to the audit trail, best-effort. A failed
// write on a denial cannot make the outcome less safe.
func (e *Engine) recordDeny(ctx context.Context, actorUserID int64, policyName string, op *OperationPolicy, res ResourceDescriptor, d Decision) {
	entry := buildEntry(actorUserID, policyName, op, res)
	entry.Outcome = model.AuditOutcomeDenied
	entry.Detail = "reason=" + string(d.Reason)
	if d.FailedRequirement != "" {
		entry.Detail += " requirement=" + string(d.FailedRequirement)
	}
	e.recorder.Record(ctx, entry)
}

func buildEntry(actorUserID int64, policyName string, op *OperationPolicy, res ResourceDescriptor) *model.AuditLog {
	entry := &model.AuditLog{
		ActorUserID: actorUserID,
		Action:      policyName,
		Category:    model.AuditCategoryAuthorization,
		Severity:    model.AuditSeverityMedium,
		EntityName:  model.EntityPolicy,
		EntityID:    policyName,
	}
	if op != nil {
		entry.Category = op.Category
		entry.Severity = op.Severity
	}
	switch {
	case res.TargetEmployeeID != nil:
		entry.EntityName = "employee"
		entry.EntityID = strconv.FormatInt(*res.TargetEmployeeID, 10)
	case res.TargetBranchID != nil:
		entry.EntityName = "branch"
		entry.EntityID = strconv.FormatInt(*res.TargetBranchID, 10)
	}
	return entry
}
