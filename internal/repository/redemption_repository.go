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

type RedemptionRepository struct {
	Col *mongo.Collection
}

func NewRedemptionRepository(db *mongo.Database) *RedemptionRepository {
	return &RedemptionRepository{Col: db.Collection(database.ColRedemptions)}
}

func (r *RedemptionRepository) Create(ctx context.Context, rd *model.Redemption) error {
	res, err := r.Col.InsertOne(ctx, rd)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		rd.ID = id
	}
	return nil
}

func (r *RedemptionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Redemption, error) {
	var rd model.Redemption
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&rd)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rd, nil
}

func (r *RedemptionRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Redemption, error) {
	cur, err := r.Col.Find(ctx, bson.M{"user": userID},
		options.Find().SetSort(bson.D{{Key: "redeemedAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var redemptions []model.Redemption
	if err := cur.All(ctx, &redemptions); err != nil {
		return nil, err
	}
	return redemptions, nil
}

func (r *RedemptionRepository) List(ctx context.Context, status model.RedemptionStatus, page, limit int) ([]model.Redemption, int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	total, err := r.Col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "redeemedAt", Value: -1}})

	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var redemptions []model.Redemption
	if err := cur.All(ctx, &redemptions); err != nil {
		return nil, 0, err
	}
	return redemptions, total, nil
}

func (r *RedemptionRepository) Save(ctx context.Context, rd *model.Redemption) error {
	res, err := r.Col.ReplaceOne(ctx, bson.M{"_id": rd.ID}, rd)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return util.ErrNotFound
	}
	return nil
}
