package model

import "time"

// AuditLog is an append-only record of a security-relevant decision or
// mutation. Rows are immutable once written; retention is an
// operational concern outside this service.
type AuditLog struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	ActorUserID int64     `bson:"actor_user_id" json:"actor_user_id"`
	Action      string    `bson:"action" json:"action"`
	EntityName  string    `bson:"entity_name,omitempty" json:"entity_name,omitempty"`
	EntityID    string    `bson:"entity_id,omitempty" json:"entity_id,omitempty"`
	Category    string    `bson:"category" json:"category"`
	Severity    string    `bson:"severity" json:"severity"`
	Outcome     string    `bson:"outcome" json:"outcome"`
	Detail      string    `bson:"detail,omitempty" json:"detail,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// AuditLogFilter narrows FindAuditLogs queries.
type AuditLogFilter struct {
	ActorUserID int64
	Category    string
	Outcome     string
	Page        int64
	PageSize    int64
}
