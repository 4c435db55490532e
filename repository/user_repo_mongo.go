package repository

import (
	"context"
	"errors"
	"time"

	"courierhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoUserRepo struct {
	DB     *mongo.Client
	DBName string
}

func NewMongoUserRepo(db *mongo.Client, dbName string) *MongoUserRepo {
	return &MongoUserRepo{DB: db, DBName: dbName}
}

func (r *MongoUserRepo) coll() *mongo.Collection {
	return r.DB.Database(r.DBName).Collection("app_users")
}

func (r *MongoUserRepo) CreateUser(user *models.AppUser) error {
	ctx := context.Background()

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	user.Active = true

	_, err := r.coll().InsertOne(ctx, user)
	return wrapDuplicate(err)
}

func (r *MongoUserRepo) GetUserByEmail(email string) (*models.AppUser, error) {
	ctx := context.Background()

	var user models.AppUser
	err := r.coll().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepo) GetUsers() ([]*models.AppUser, error) {
	ctx := context.Background()

	cur, err := r.coll().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.AppUser
	for cur.Next(ctx) {
		var u models.AppUser
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		out = append(out, &u)
	}
	return out, cur.Err()
}

func (r *MongoUserRepo) UpdateUser(user *models.AppUser) error {
	ctx := context.Background()

	res, err := r.coll().ReplaceOne(ctx, bson.M{"email": user.Email}, user)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

type MongoRoleRepo struct {
	DB     *mongo.Client
	DBName string
}

func NewMongoRoleRepo(db *mongo.Client, dbName string) *MongoRoleRepo {
	return &MongoRoleRepo{DB: db, DBName: dbName}
}

func (r *MongoRoleRepo) coll() *mongo.Collection {
	return r.DB.Database(r.DBName).Collection("roles")
}

func (r *MongoRoleRepo) CreateRole(role *models.Role) error {
	ctx := context.Background()

	if role.CreatedAt.IsZero() {
		role.CreatedAt = time.Now().UTC()
	}
	_, err := r.coll().InsertOne(ctx, role)
	return wrapDuplicate(err)
}

func (r *MongoRoleRepo) GetRoleByName(name string) (*models.Role, error) {
	ctx := context.Background()

	var role models.Role
	err := r.coll().FindOne(ctx, bson.M{"name": name}).Decode(&role)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func (r *MongoRoleRepo) GetRoles() ([]*models.Role, error) {
	ctx := context.Background()

	cur, err := r.coll().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.Role
	for cur.Next(ctx) {
		var role models.Role
		if err := cur.Decode(&role); err != nil {
			return nil, err
		}
		out = append(out, &role)
	}
	return out, cur.Err()
}

func (r *MongoRoleRepo) UpdateRole(role *models.Role) error {
	ctx := context.Background()

	res, err := r.coll().ReplaceOne(ctx, bson.M{"name": role.Name}, role)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoRoleRepo) DeleteRole(name string) error {
	ctx := context.Background()

	res, err := r.coll().DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
