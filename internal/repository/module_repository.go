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

type ModuleRepository struct {
	Col *mongo.Collection
}

func NewModuleRepository(db *mongo.Database) *ModuleRepository {
	return &ModuleRepository{Col: db.Collection(database.ColModules)}
}

func (r *ModuleRepository) Create(ctx context.Context, m *model.Module) error {
	res, err := r.Col.InsertOne(ctx, m)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		m.ID = id
	}
	return nil
}

func (r *ModuleRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Module, error) {
	var m model.Module
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ModuleRepository) FindActive(ctx context.Context, category string) ([]model.Module, error) {
	filter := bson.M{"isActive": true}
	if category != "" {
		filter["category"] = category
	}

	cur, err := r.Col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var modules []model.Module
	if err := cur.All(ctx, &modules); err != nil {
		return nil, err
	}
	return modules, nil
}

func (r *ModuleRepository) Save(ctx context.Context, m *model.Module) error {
	res, err := r.Col.ReplaceOne(ctx, bson.M{"_id": m.ID}, m)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return util.ErrNotFound
	}
	return nil
}

// Deactivate marks a module inactive instead of removing it, so existing
// progress records keep a valid reference.
func (r *ModuleRepository) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"isActive": false}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return util.ErrNotFound
	}
	return nil
}
