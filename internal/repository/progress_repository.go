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
)

type ProgressRepository struct {
	Col *mongo.Collection
}

func NewProgressRepository(db *mongo.Database) *ProgressRepository {
	return &ProgressRepository{Col: db.Collection(database.ColUserProgress)}
}

func (r *ProgressRepository) Create(ctx context.Context, p *model.UserProgress) error {
	res, err := r.Col.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = id
	}
	return nil
}

func (r *ProgressRepository) FindByUserAndModule(ctx context.Context, userID, moduleID primitive.ObjectID) (*model.UserProgress, error) {
	var p model.UserProgress
	err := r.Col.FindOne(ctx, bson.M{"user": userID, "module": moduleID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProgressRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]model.UserProgress, error) {
	cur, err := r.Col.Find(ctx, bson.M{"user": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var records []model.UserProgress
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *ProgressRepository) Save(ctx context.Context, p *model.UserProgress) error {
	res, err := r.Col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return util.ErrNotFound
	}
	return nil
}
