package repository

import (
	"context"
	"time"

	"peopledesk/internal/authz/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoRepository) EnsureAuditIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "actor_user_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_audit_actor_time"),
		},
		{
			Keys: bson.D{
				{Key: "category", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_audit_category_time"),
		},
	}
	_, err := r.AuditLogs.Indexes().CreateMany(ctx, indexes)
	return err
}

// AppendAuditLog inserts only. There is deliberately no update or
// delete path for audit entries in this repository.
func (r *MongoRepository) AppendAuditLog(ctx context.Context, entry *model.AuditLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	_, err := r.AuditLogs.InsertOne(ctx, entry)
	return err
}

func (r *MongoRepository) FindAuditLogs(ctx context.Context, filter model.AuditLogFilter) ([]*model.AuditLog, int64, error) {
	query := bson.M{}
	if filter.ActorUserID != 0 {
		query["actor_user_id"] = filter.ActorUserID
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Outcome != "" {
		query["outcome"] = filter.Outcome
	}

	total, err := r.AuditLogs.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 50
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((page - 1) * pageSize).
		SetLimit(pageSize)

	cursor, err := r.AuditLogs.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var entries []*model.AuditLog
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
