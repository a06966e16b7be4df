package audit

import (
	"context"
	"log/slog"

	"peopledesk/internal/authz/model"
	"peopledesk/internal/authz/repository"
)

// Recorder appends security-relevant decisions and mutations to the
// audit log. Recording is a side effect only: it never influences the
// decision itself, except where a policy is marked audit-required and
// the caller uses RecordRequired.
type Recorder struct {
	sink   repository.AuditRepository
	logger *slog.Logger
}

func NewRecorder(sink repository.AuditRepository, logger *slog.Logger) *Recorder {
	return &Recorder{sink: sink, logger: logger}
}

// Record appends best-effort. A failed write is surfaced to the logs as
// an observability error and otherwise swallowed.
func (r *Recorder) Record(ctx context.Context, entry *model.AuditLog) {
	if err := r.sink.AppendAuditLog(ctx, entry); err != nil {
		r.logger.Error("audit write failed",
			"action", entry.Action,
			"actor", entry.ActorUserID,
			"outcome", entry.Outcome,
			"error", err,
		)
	}
}

// RecordRequired appends and reports failure to the caller. Used for
// compliance-critical policies where a missing audit entry must force a
// deny.
func (r *Recorder) RecordRequired(ctx context.Context, entry *model.AuditLog) error {
	if err := r.sink.AppendAuditLog(ctx, entry); err != nil {
		r.logger.Error("required audit write failed",
			"action", entry.Action,
			"actor", entry.ActorUserID,
			"outcome", entry.Outcome,
			"error", err,
		)
		return err
	}
	return nil
}
