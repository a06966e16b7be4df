package repository

import (
	"context"
	"time"

	"peopledesk/internal/authz/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *MongoRepository) AssignEmployeeRole(ctx context.Context, assignment *model.EmployeeRole) error {
	now := time.Now()
	assignment.IsActive = true
	if assignment.AssignedDate.IsZero() {
		assignment.AssignedDate = now
	}

	_, err := r.EmployeeRoles.InsertOne(ctx, assignment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *MongoRepository) RevokeEmployeeRole(ctx context.Context, employeeID, roleID, revokedBy int64) error {
	filter := bson.M{
		"employee_id": employeeID,
		"role_id":     roleID,
		"is_active":   true,
	}
	update := bson.M{
		"$set": bson.M{
			"is_active":  false,
			"revoked_at": time.Now(),
			"revoked_by": revokedBy,
		},
	}
	res, err := r.EmployeeRoles.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) FindEmployeeRoles(ctx context.Context, employeeID int64, activeOnly bool) ([]*model.EmployeeRole, error) {
	query := bson.M{"employee_id": employeeID}
	if activeOnly {
		query["is_active"] = true
		query["revoked_at"] = nil
	}
	cursor, err := r.EmployeeRoles.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assignments []*model.EmployeeRole
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// GrantBranchAccess inserts a fresh grant row; earlier revoked rows for
// the same (user, branch) pair keep their revocation stamps untouched.
// Uniqueness is scoped to active rows by the partial index, so a second
// active grant still collides. Granting a primary demotes the user's
// current primary inside the same transaction so the one-active-primary
// invariant holds at every point.
func (r *MongoRepository) GrantBranchAccess(ctx context.Context, grant *model.UserBranchAccess) error {
	session, err := r.Client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	prepareBranchGrant(grant, time.Now())

	callback := func(sessCtx mongo.SessionContext) (interface{}, error) {
		if grant.IsPrimary {
			demote := bson.M{
				"user_id":    grant.UserID,
				"is_active":  true,
				"is_primary": true,
				"branch_id":  bson.M{"$ne": grant.BranchID},
			}
			_, err := r.BranchAccess.UpdateMany(sessCtx, demote, bson.M{
				"$set": bson.M{"is_primary": false},
			})
			if err != nil {
				return nil, err
			}
		}

		_, err := r.BranchAccess.InsertOne(sessCtx, grant)
		return nil, err
	}

	_, err = session.WithTransaction(ctx, callback)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// prepareBranchGrant stamps a new grant row. The row starts active with
// a fresh id and carries no revocation stamps of its own.
func prepareBranchGrant(grant *model.UserBranchAccess, now time.Time) {
	grant.ID = ""
	grant.IsActive = true
	if grant.GrantedAt.IsZero() {
		grant.GrantedAt = now
	}
	grant.RevokedBy = nil
	grant.RevokedAt = nil
}

func (r *MongoRepository) RevokeBranchAccess(ctx context.Context, userID, branchID, revokedBy int64) error {
	filter := bson.M{
		"user_id":   userID,
		"branch_id": branchID,
		"is_active": true,
	}
	update := bson.M{
		"$set": bson.M{
			"is_active":  false,
			"is_primary": false,
			"revoked_at": time.Now(),
			"revoked_by": revokedBy,
		},
	}
	res, err := r.BranchAccess.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) FindBranchAccess(ctx context.Context, filter model.BranchAccessFilter) ([]*model.UserBranchAccess, error) {
	query := bson.M{}
	if filter.UserID != 0 {
		query["user_id"] = filter.UserID
	}
	if filter.BranchID != 0 {
		query["branch_id"] = filter.BranchID
	}
	if filter.ActiveOnly {
		query["is_active"] = true
		query["revoked_at"] = nil
	}

	cursor, err := r.BranchAccess.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var grants []*model.UserBranchAccess
	if err := cursor.All(ctx, &grants); err != nil {
		return nil, err
	}
	return grants, nil
}

func (r *MongoRepository) SetBranchIsolation(ctx context.Context, organizationID int64, enabled bool) error {
	res, err := r.Organizations.UpdateOne(ctx,
		bson.M{"_id": organizationID},
		bson.M{"$set": bson.M{
			"branch_isolation_enabled": enabled,
			"updated_at":               time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
