package policy

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"peopledesk/internal/authz/audit"
	"peopledesk/internal/authz/model"

	"github.com/stretchr/testify/assert"
)

func newTestEngine(t *testing.T, dir *fixtureDirectory) (*Engine, *memAuditSink) {
	t.Helper()
	sink := &memAuditSink{}
	recorder := audit.NewRecorder(sink, slog.New(slog.NewTextHandler(io.Discard, nil)))
	engine, err := NewEngine(dir, recorder)
	assert.NoError(t, err)
	return engine, sink
}

func testPrincipal(t *testing.T, employeeID int64, roleIDs ...int64) *model.Principal {
	t.Helper()
	p, err := model.NewPrincipal(model.Claims{
		UserID:         employeeID,
		EmployeeID:     employeeID,
		OrganizationID: 1,
		HomeBranchID:   10,
		RoleIDs:        roleIDs,
	})
	assert.NoError(t, err)
	return p
}

func ref(id int64) *int64 { return &id }

func TestEvaluateFailsClosed(t *testing.T) {
	engine, _ := newTestEngine(t, newFixtureDirectory())

	t.Run("nil principal denies everything", func(t *testing.T) {
		d := engine.Evaluate(context.Background(), nil, model.PermEmployeeView, ResourceDescriptor{})
		assert.False(t, d.Allowed)
		assert.Equal(t, ReasonInvalidPrincipal, d.Reason)
	})

	t.Run("unknown policy denies", func(t *testing.T) {
		d := engine.Evaluate(context.Background(), testPrincipal(t, 2, 3), "Payroll.Explode", ResourceDescriptor{})
		assert.False(t, d.Allowed)
		assert.Equal(t, ReasonMissingRequirement, d.Reason)
	})

	t.Run("malformed policy name denies", func(t *testing.T) {
		d := engine.Evaluate(context.Background(), testPrincipal(t, 2, 3), "payroll", ResourceDescriptor{})
		assert.False(t, d.Allowed)
		assert.Equal(t, ReasonMissingRequirement, d.Reason)
	})

	t.Run("backing store failure denies with unavailable", func(t *testing.T) {
		dir := newFixtureDirectory()
		dir.unavailable = true
		brokenEngine, _ := newTestEngine(t, dir)
		d := brokenEngine.Evaluate(context.Background(), testPrincipal(t, 2, 3), model.PermEmployeeView, ResourceDescriptor{})
		assert.False(t, d.Allowed)
		assert.Equal(t, ReasonUnavailable, d.Reason)
	})
}

func TestPermissionResolution(t *testing.T) {
	t.Run("HRManager without Payroll.Approve is denied", func(t *testing.T) {
		engine, sink := newTestEngine(t, newFixtureDirectory())
		d := engine.Evaluate(context.Background(), testPrincipal(t, 2, 3), model.PermPayrollApprove, ResourceDescriptor{})
		assert.False(t, d.Allowed)
		assert.Equal(t, ReasonPermissionDenied, d.Reason)
		assert.Equal(t, RequirementPermission, d.FailedRequirement)

		// the denial reaches the audit trail
		assert.Len(t, sink.entries, 1)
		assert.Equal(t, model.AuditOutcomeDenied, sink.entries[0].Outcome)
		assert.Equal(t, model.PermPayrollApprove, sink.entries[0].Action)
	})

	t.Run("HRManager with Payroll.Process is allowed", func(t *testing.T) {
		engine, _ := newTestEngine(t, newFixtureDirectory())
		d := engine.Evaluate(context.Background(), testPrincipal(t, 2, 3), model.PermPayrollProcess, ResourceDescriptor{})
		assert.True(t, d.Allowed)
	})

	t.Run("zero active roles always denies", func(t *testing.T) {
		dir := newFixtureDirectory()
		dir.rolesByEmp[7] = nil
		dir.employees[7] = &model.Employee{ID: 7, OrganizationID: 1, BranchID: 10}
		engine, _ := newTestEngine(t, dir)
		d := engine.Evaluate(context.Background(), testPrincipal(t, 7), model.PermEmployeeView, ResourceDescriptor{})
		assert.False(t, d.Allowed)
		assert.Equal(t, ReasonPermissionDenied, d.Reason)
	})

	t.Run("explicit false grant does not veto another role's grant", func(t *testing.T) {
		dir := newFixtureDirectory()
		// staff role carries an explicit deny row for Employee.View
		dir.grantsByRole[5] = map[string]bool{model.PermEmployeeView: false}
		engine, _ := newTestEngine(t, dir)
		d := engine.Evaluate(context.Background(), testPrincipal(t, 2, 3, 5), model.PermEmployeeView, ResourceDescriptor{})
		assert.True(t, d.Allowed)
	})

	t.Run("only an explicit false grant denies", func(t *testing.T) {
		dir := newFixtureDirectory()
		dir.grantsByRole[5] = map[string]bool{model.PermEmployeeView: false}
		engine, _ := newTestEngine(t, dir)
		d := engine.Evaluate(context.Background(), testPrincipal(t, 4, 5), model.PermEmployeeView, ResourceDescriptor{})
		assert.False(t, d.Allowed)
		assert.Equal(t, ReasonPermissionDenied, d.Reason)
	})
}

func TestHierarchyCheck(t *testing.T) {
	t.Run("peer outside manager chain is denied", func(t *testing.T) {
		engine, _ := newTestEngine(t, newFixtureDirectory())
		d := engine.Evaluate(context.Background(), testPrincipal(t, 2, 3), model.PermEmployeeUpdate, ResourceDescriptor{
			TargetEmployeeID: ref(3),
		})
		assert.False(t, d.Allowed)
		assert.Equal(t, ReasonInsufficientHierarchy, d.Reason)
		assert.Equal(t, RequirementHierarchy, d.FailedRequirement)
	})

	t.Run("direct manager is allowed", func(t *testing.T) {
		engine, _ := newTestEngine(t, newFixtureDirectory())
		d := engine.Evaluate(context.Background(), testPrincipal(t, 2, 3), model.PermEmployeeUpdate, ResourceDescriptor{
			TargetEmployeeID: ref(4),
		})
		assert.True(t, d.Allowed)
	})

	t.Run("transitive manager is allowed", func(t *testing.T) {
		dir := newFixtureDirectory()
		engine, _ := newTestEngine(t, dir)
		// chain: 5 reports to 4 reports to 2
		mgr := int64(4)
		dir.employees[5] = &model.Employee{ID: 5, OrganizationID: 1, BranchID: 10, ReportingManagerID: &mgr}
		dir.rolesByEmp[5] = dir.rolesByEmp[4]
		d := engine.Evaluate(context.Background(), testPrincipal(t, 2, 3), model.PermEmployeeUpdate, ResourceDescriptor{
			TargetEmployeeID: ref(5),
		})
		assert.True(t, d.Allowed)
	})

	t.Run("self action bypasses hierarchy", func(t *testing.T) {
		engine, _ := newTestEngine(t, newFixtureDirectory())
		d := engine.Evaluate(context.Background(), testPrincipal(t, 2, 3), model.PermEmployeeUpdate, ResourceDescriptor{
			TargetEmployeeID: ref(2),
		})
		assert.True(t, d.Allowed)
	})

	t.Run("higher rank outranks every target role", func(t *testing.T) {
		// HRManager (level 3) acting on a Staff-only employee (level 5)
		// who is outside the principal's chain
		dir := newFixtureDirectory()
		dir.employees[6] = &model.Employee{ID: 6, OrganizationID: 1, BranchID: 11, ReportingManagerID: nil}
		dir.rolesByEmp[6] = dir.rolesByEmp[4] // Staff
		engine, _ := newTestEngine(t, dir)
		d := engine.Evaluate(context.Background(), testPrincipal(t, 2, 3), model.PermEmployeeUpdate, ResourceDescriptor{
			TargetEmployeeID: ref(6),
		})
		assert.True(t, d.Allowed)
	})

	t.Run("corrupted manager cycle terminates with a deny", func(t *testing.T) {
		engine, _ := newTestEngine(t, newFixtureDirectory())
		d := engine.Evaluate(context.Background(), testPrincipal(t, 2, 3), model.PermEmployeeUpdate, ResourceDescriptor{
			TargetEmployeeID: ref(8),
		})
		assert.False(t, d.Allowed)
		assert.Equal(t, ReasonHierarchyCycle, d.Reason)
	})

	t.Run("super admin bypasses hierarchy", func(t *testing.T) {
		engine, _ := newTestEngine(t, newFixtureDirectory())
		d := engine.Evaluate(context.Background(), testPrincipal(t, 1, 1), model.PermEmployeeUpdate, ResourceDescriptor{
			TargetEmployeeID: ref(3),
		})
		assert.True(t, d.Allowed)
	})
}

func TestBranchAccessCheck(t *testing.T) {
	t.Run("isolation disabled allows regardless of grants", func(t *testing.T) {
		dir := newFixtureDirectory()
		dir.isolation = false
		engine, _ := newTestEngine(t, dir)
		d := engine.Evaluate(context.Background(), testPrincipal(t, 2, 3), model.PermEmployeeView, ResourceDescriptor{
			TargetBranchID: ref(99),
		})
		assert.True(t, d.Allowed)
	})

	t.Run("no grant denies under isolation", func(t *testing.T) {
		engine, _ := newTestEngine(t, newFixtureDirectory())
		d := engine.Evaluate(context.Background(), testPrincipal(t, 2, 3), model.PermEmployeeView, ResourceDescriptor{
			TargetBranchID: ref(11),
		})
		assert.False(t, d.Allowed)
		assert.Equal(t, ReasonBranchAccessDenied, d.Reason)
		assert.Equal(t, RequirementBranch, d.FailedRequirement)
	})

	t.Run("revocation flips allow to deny on the next read", func(t *testing.T) {
		dir := newFixtureDirectory()
		dir.grantBranch(2, 11)
		engine, _ := newTestEngine(t, dir)
		res := ResourceDescriptor{TargetBranchID: ref(11)}

		d := engine.Evaluate(context.Background(), testPrincipal(t, 2, 3), model.PermEmployeeView, res)
		assert.True(t, d.Allowed)

		dir.revokeBranch(2, 11)
		d = engine.Evaluate(context.Background(), testPrincipal(t, 2, 3), model.PermEmployeeView, res)
		assert.False(t, d.Allowed)
		assert.Equal(t, ReasonBranchAccessDenied, d.Reason)
	})

	t.Run("nil branch id makes the check inapplicable", func(t *testing.T) {
		engine, _ := newTestEngine(t, newFixtureDirectory())
		d := engine.Evaluate(context.Background(), testPrincipal(t, 2, 3), model.PermEmployeeView, ResourceDescriptor{})
		assert.True(t, d.Allowed)
	})

	t.Run("super admin bypasses isolation", func(t *testing.T) {
		engine, _ := newTestEngine(t, newFixtureDirectory())
		d := engine.Evaluate(context.Background(), testPrincipal(t, 1, 1), model.PermEmployeeView, ResourceDescriptor{
			TargetBranchID: ref(99),
		})
		assert.True(t, d.Allowed)
	})
}

func TestEvaluateIdempotence(t *testing.T) {
	engine, _ := newTestEngine(t, newFixtureDirectory())
	res := ResourceDescriptor{TargetEmployeeID: ref(3), TargetBranchID: ref(11)}

	first := engine.Evaluate(context.Background(), testPrincipal(t, 2, 3), model.PermEmployeeUpdate, res)
	second := engine.Evaluate(context.Background(), testPrincipal(t, 2, 3), model.PermEmployeeUpdate, res)
	assert.Equal(t, first, second)
}

func TestAuditRequiredPolicies(t *testing.T) {
	t.Run("allow on an audit-required policy is recorded", func(t *testing.T) {
		engine, sink := newTestEngine(t, newFixtureDirectory())
		d := engine.Evaluate(context.Background(), testPrincipal(t, 2, 3), model.PermPayrollProcess, ResourceDescriptor{})
		assert.True(t, d.Allowed)
		assert.Len(t, sink.entries, 1)
		assert.Equal(t, model.AuditOutcomeAllowed, sink.entries[0].Outcome)
	})

	t.Run("failed audit write forces deny on audit-required policy", func(t *testing.T) {
		engine, sink := newTestEngine(t, newFixtureDirectory())
		sink.failErr = errors.New("sink down")
		d := engine.Evaluate(context.Background(), testPrincipal(t, 2, 3), model.PermPayrollProcess, ResourceDescriptor{})
		assert.False(t, d.Allowed)
		assert.Equal(t, ReasonUnavailable, d.Reason)
	})

	t.Run("failed audit write does not block a plain policy", func(t *testing.T) {
		engine, sink := newTestEngine(t, newFixtureDirectory())
		sink.failErr = errors.New("sink down")
		d := engine.Evaluate(context.Background(), testPrincipal(t, 2, 3), model.PermEmployeeView, ResourceDescriptor{})
		assert.True(t, d.Allowed)
	})
}
