package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names that are not operator-configurable.
const (
	collOrganizations   = "organizations"
	collEmployees       = "employees"
	collRoles           = "roles"
	collPermissions     = "permissions"
	collRolePermissions = "role_permissions"
)

type MongoRepository struct {
	Organizations   *mongo.Collection
	Employees       *mongo.Collection
	Roles           *mongo.Collection
	RolePermissions *mongo.Collection
	Permissions     *mongo.Collection
	EmployeeRoles   *mongo.Collection
	BranchAccess    *mongo.Collection
	AuditLogs       *mongo.Collection
	Client          *mongo.Client // for multi-document transactions
}

func NewMongoRepository(db *mongo.Database, employeeRolesColl, branchAccessColl, auditColl string) *MongoRepository {
	return &MongoRepository{
		Organizations:   db.Collection(collOrganizations),
		Employees:       db.Collection(collEmployees),
		Roles:           db.Collection(collRoles),
		RolePermissions: db.Collection(collRolePermissions),
		Permissions:     db.Collection(collPermissions),
		EmployeeRoles:   db.Collection(employeeRolesColl),
		BranchAccess:    db.Collection(branchAccessColl),
		AuditLogs:       db.Collection(auditColl),
		Client:          db.Client(),
	}
}

func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	// One assignment row per (employee, role); revoked rows stay and the
	// partial filter keeps uniqueness scoped to active assignments.
	idxEmployeeRole := mongo.IndexModel{
		Keys: bson.D{
			{Key: "employee_id", Value: 1},
			{Key: "role_id", Value: 1},
		},
		Options: options.Index().
			SetUnique(true).
			SetName("uniq_active_employee_role").
			SetPartialFilterExpression(bson.M{"is_active": true}),
	}
	if _, err := r.EmployeeRoles.Indexes().CreateOne(ctx, idxEmployeeRole); err != nil {
		return err
	}

	// One active grant row per (user, branch).
	idxGrant := mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "branch_id", Value: 1},
		},
		Options: options.Index().
			SetUnique(true).
			SetName("uniq_active_branch_grant").
			SetPartialFilterExpression(bson.M{"is_active": true}),
	}

	// At most one active primary grant per user.
	idxPrimary := mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetName("uniq_primary_branch_grant").
			SetPartialFilterExpression(bson.M{"is_active": true, "is_primary": true}),
	}

	_, err := r.BranchAccess.Indexes().CreateMany(ctx, []mongo.IndexModel{idxGrant, idxPrimary})
	if err != nil {
		return err
	}

	// (role, permission) is unique regardless of the granted flag.
	idxRolePerm := mongo.IndexModel{
		Keys: bson.D{
			{Key: "role_id", Value: 1},
			{Key: "permission_id", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("uniq_role_permission"),
	}
	if _, err := r.RolePermissions.Indexes().CreateOne(ctx, idxRolePerm); err != nil {
		return err
	}

	idxPermName := mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_permission_name"),
	}
	_, err = r.Permissions.Indexes().CreateOne(ctx, idxPermName)
	return err
}
