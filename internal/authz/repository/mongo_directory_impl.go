package repository

import (
	"context"
	"errors"

	"peopledesk/internal/authz/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoRepository) ActiveRoles(ctx context.Context, employeeID int64) ([]*model.Role, error) {
	cursor, err := r.EmployeeRoles.Find(ctx, bson.M{
		"employee_id": employeeID,
		"is_active":   true,
		"revoked_at":  nil,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assignments []*model.EmployeeRole
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return nil, nil
	}

	roleIDs := make([]int64, 0, len(assignments))
	for _, a := range assignments {
		roleIDs = append(roleIDs, a.RoleID)
	}

	roleCursor, err := r.Roles.Find(ctx, bson.M{
		"_id":        bson.M{"$in": roleIDs},
		"is_active":  true,
		"deleted_at": nil,
	})
	if err != nil {
		return nil, err
	}
	defer roleCursor.Close(ctx)

	var roles []*model.Role
	if err := roleCursor.All(ctx, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *MongoRepository) PermissionGrants(ctx context.Context, roleIDs []int64, permissionName string) ([]*model.RolePermission, error) {
	if len(roleIDs) == 0 || permissionName == "" {
		return nil, nil
	}

	var perm model.Permission
	err := r.Permissions.FindOne(ctx, bson.M{"name": permissionName}).Decode(&perm)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Unknown permission contributes nothing; the engine treats
			// an empty grant set as a denial.
			return nil, nil
		}
		return nil, err
	}

	cursor, err := r.RolePermissions.Find(ctx, bson.M{
		"role_id":       bson.M{"$in": roleIDs},
		"permission_id": perm.ID,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var grants []*model.RolePermission
	if err := cursor.All(ctx, &grants); err != nil {
		return nil, err
	}
	return grants, nil
}

func (r *MongoRepository) GetEmployee(ctx context.Context, employeeID int64) (*model.Employee, error) {
	var emp model.Employee
	err := r.Employees.FindOne(ctx, bson.M{
		"_id":        employeeID,
		"deleted_at": nil,
	}).Decode(&emp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &emp, nil
}

func (r *MongoRepository) CountEmployees(ctx context.Context, organizationID int64) (int64, error) {
	return r.Employees.CountDocuments(ctx, bson.M{
		"organization_id": organizationID,
		"deleted_at":      nil,
	})
}

func (r *MongoRepository) BranchIsolationEnabled(ctx context.Context, organizationID int64) (bool, error) {
	var org model.Organization
	err := r.Organizations.FindOne(ctx, bson.M{"_id": organizationID}).Decode(&org)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, ErrNotFound
		}
		return false, err
	}
	return org.BranchIsolationEnabled, nil
}

func (r *MongoRepository) HasActiveBranchAccess(ctx context.Context, userID, branchID int64) (bool, error) {
	opts := options.Count().SetLimit(1)
	count, err := r.BranchAccess.CountDocuments(ctx, bson.M{
		"user_id":    userID,
		"branch_id":  branchID,
		"is_active":  true,
		"revoked_at": nil,
	}, opts)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
