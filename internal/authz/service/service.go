package service

import (
	"context"
	"errors"

	"peopledesk/internal/authz/audit"
	"peopledesk/internal/authz/model"
	"peopledesk/internal/authz/policy"
	"peopledesk/internal/authz/repository"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict: assignment or grant already exists")
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("bad request")
)

// AccessService is the administrative surface that produces the rows
// the decision engine reads. Every mutation is itself gated through the
// engine and recorded in the audit trail.
type AccessService interface {
	AssignEmployeeRole(ctx context.Context, p *model.Principal, req model.AssignEmployeeRoleReq) error
	RevokeEmployeeRole(ctx context.Context, p *model.Principal, req model.RevokeEmployeeRoleReq) error
	GrantBranchAccess(ctx context.Context, p *model.Principal, req model.GrantBranchAccessReq) error
	RevokeBranchAccess(ctx context.Context, p *model.Principal, req model.RevokeBranchAccessReq) error
	SetBranchIsolation(ctx context.Context, p *model.Principal, req model.SetBranchIsolationReq) error
	GetMyAccess(ctx context.Context, p *model.Principal) (*model.MyAccess, error)
	GetAuditLogs(ctx context.Context, p *model.Principal, req model.GetAuditLogsReq) ([]*model.AuditLog, int64, error)
	Evaluate(ctx context.Context, p *model.Principal, req model.EvaluateReq) policy.Decision
}

type Service struct {
	Repo     repository.AccessRepository
	Reader   repository.DirectoryReader
	Audits   repository.AuditRepository
	Engine   *policy.Engine
	Recorder *audit.Recorder
}

func NewService(
	repo repository.AccessRepository,
	reader repository.DirectoryReader,
	audits repository.AuditRepository,
	engine *policy.Engine,
	recorder *audit.Recorder,
) *Service {
	return &Service{
		Repo:     repo,
		Reader:   reader,
		Audits:   audits,
		Engine:   engine,
		Recorder: recorder,
	}
}

// Evaluate probes a policy decision without performing the action.
func (s *Service) Evaluate(ctx context.Context, p *model.Principal, req model.EvaluateReq) policy.Decision {
	return s.Engine.Evaluate(ctx, p, req.Policy, policy.ResourceDescriptor{
		TargetBranchID:   req.TargetBranchID,
		TargetEmployeeID: req.TargetEmployeeID,
	})
}

func (s *Service) GetMyAccess(ctx context.Context, p *model.Principal) (*model.MyAccess, error) {
	if p == nil {
		return nil, ErrUnauthorized
	}
	roles, err := s.Reader.ActiveRoles(ctx, p.EmployeeID())
	if err != nil {
		return nil, err
	}
	grants, err := s.Repo.FindBranchAccess(ctx, model.BranchAccessFilter{
		UserID:     p.UserID(),
		ActiveOnly: true,
	})
	if err != nil {
		return nil, err
	}
	return &model.MyAccess{Roles: roles, BranchAccess: grants}, nil
}

func (s *Service) GetAuditLogs(ctx context.Context, p *model.Principal, req model.GetAuditLogsReq) ([]*model.AuditLog, int64, error) {
	if p == nil {
		return nil, 0, ErrUnauthorized
	}
	if err := req.Validate(); err != nil {
		return nil, 0, err
	}
	// Route-level gating (Access.ViewAudit) happens in AuthzMiddleware;
	// the listing itself is a plain read of the append-only log.
	return s.Audits.FindAuditLogs(ctx, model.AuditLogFilter{
		ActorUserID: req.ActorUserID,
		Category:    req.Category,
		Outcome:     req.Outcome,
		Page:        req.Page,
		PageSize:    req.PageSize,
	})
}
