package handler

import (
	"context"

	"peopledesk/internal/authz/model"
	"peopledesk/internal/authz/policy"

	"github.com/stretchr/testify/mock"
)

type MockAccessService struct {
	mock.Mock
}

func (m *MockAccessService) AssignEmployeeRole(ctx context.Context, p *model.Principal, req model.AssignEmployeeRoleReq) error {
	args := m.Called(ctx, p, req)
	return args.Error(0)
}

func (m *MockAccessService) RevokeEmployeeRole(ctx context.Context, p *model.Principal, req model.RevokeEmployeeRoleReq) error {
	args := m.Called(ctx, p, req)
	return args.Error(0)
}

func (m *MockAccessService) GrantBranchAccess(ctx context.Context, p *model.Principal, req model.GrantBranchAccessReq) error {
	args := m.Called(ctx, p, req)
	return args.Error(0)
}

func (m *MockAccessService) RevokeBranchAccess(ctx context.Context, p *model.Principal, req model.RevokeBranchAccessReq) error {
	args := m.Called(ctx, p, req)
	return args.Error(0)
}

func (m *MockAccessService) SetBranchIsolation(ctx context.Context, p *model.Principal, req model.SetBranchIsolationReq) error {
	args := m.Called(ctx, p, req)
	return args.Error(0)
}

func (m *MockAccessService) GetMyAccess(ctx context.Context, p *model.Principal) (*model.MyAccess, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MyAccess), args.Error(1)
}

func (m *MockAccessService) GetAuditLogs(ctx context.Context, p *model.Principal, req model.GetAuditLogsReq) ([]*model.AuditLog, int64, error) {
	args := m.Called(ctx, p, req)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.AuditLog), args.Get(1).(int64), args.Error(2)
}

func (m *MockAccessService) Evaluate(ctx context.Context, p *model.Principal, req model.EvaluateReq) policy.Decision {
	args := m.Called(ctx, p, req)
	return args.Get(0).(policy.Decision)
}
