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

type RewardRepository struct {
	Col *mongo.Collection
}

func NewRewardRepository(db *mongo.Database) *RewardRepository {
	return &RewardRepository{Col: db.Collection(database.ColRewards)}
}

func (r *RewardRepository) Create(ctx context.Context, rw *model.Reward) error {
	res, err := r.Col.InsertOne(ctx, rw)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		rw.ID = id
	}
	return nil
}

func (r *RewardRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Reward, error) {
	var rw model.Reward
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&rw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rw, nil
}

func (r *RewardRepository) FindActive(ctx context.Context, category string) ([]model.Reward, error) {
	filter := bson.M{"isActive": true}
	if category != "" {
		filter["category"] = category
	}

	cur, err := r.Col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "pointsRequired", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rewards []model.Reward
	if err := cur.All(ctx, &rewards); err != nil {
		return nil, err
	}
	return rewards, nil
}

func (r *RewardRepository) Save(ctx context.Context, rw *model.Reward) error {
	res, err := r.Col.ReplaceOne(ctx, bson.M{"_id": rw.ID}, rw)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return util.ErrNotFound
	}
	return nil
}

// DecrementStock atomically takes one unit off a limited reward. It matches
// only documents with positive stock, so a concurrent sell-out loses cleanly.
func (r *RewardRepository) DecrementStock(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.Col.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"stock": -1}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return util.ErrRewardOutOfStock
	}
	return nil
}

func (r *RewardRepository) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"isActive": false}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return util.ErrNotFound
	}
	return nil
}
