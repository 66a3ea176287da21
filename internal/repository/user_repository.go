package repository

import (
	"context"
	"errors"

	"github.com/Chirandip-dev07/ujjivana/internal/model"
	"github.com/Chirandip-dev07/ujjivana/internal/util"
	"github.com/Chirandip-dev07/ujjivana/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository struct {
	Col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{Col: db.Collection(database.ColUsers)}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	res, err := r.Col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return util.ErrEmailRegistered
		}
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	var user model.User
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.Col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Save replaces the full document. Callers follow a read-modify-write
// pattern, so the repository keeps no partial-update surface for users.
func (r *UserRepository) Save(ctx context.Context, user *model.User) error {
	res, err := r.Col.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return util.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.Col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return util.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) ExistsByRole(ctx context.Context, role model.UserRole) (bool, error) {
	n, err := r.Col.CountDocuments(ctx, bson.M{"role": role}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *UserRepository) List(ctx context.Context, filter bson.M, page, limit int) ([]model.User, int64, error) {
	total, err := r.Col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var users []model.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// TopByPoints returns the highest scoring students, ordered by the named
// points field (points, weeklyPoints or monthlyPoints).
func (r *UserRepository) TopByPoints(ctx context.Context, field, school string, limit int) ([]model.User, error) {
	filter := bson.M{"role": model.Student}
	if school != "" {
		filter["school"] = school
	}

	opts := options.Find().
		SetSort(bson.D{{Key: field, Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{
			"name":          1,
			"school":        1,
			"points":        1,
			"weeklyPoints":  1,
			"monthlyPoints": 1,
			"badges":        1,
			"streak":        1,
		})

	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []model.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
