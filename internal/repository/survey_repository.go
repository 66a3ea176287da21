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

type SurveyRepository struct {
	Col *mongo.Collection
}

func NewSurveyRepository(db *mongo.Database) *SurveyRepository {
	return &SurveyRepository{Col: db.Collection(database.ColSurveys)}
}

func (r *SurveyRepository) Create(ctx context.Context, s *model.Survey) error {
	res, err := r.Col.InsertOne(ctx, s)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.ID = id
	}
	return nil
}

func (r *SurveyRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Survey, error) {
	var s model.Survey
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SurveyRepository) FindActive(ctx context.Context) ([]model.Survey, error) {
	cur, err := r.Col.Find(ctx, bson.M{"isActive": true},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var surveys []model.Survey
	if err := cur.All(ctx, &surveys); err != nil {
		return nil, err
	}
	return surveys, nil
}

func (r *SurveyRepository) Save(ctx context.Context, s *model.Survey) error {
	res, err := r.Col.ReplaceOne(ctx, bson.M{"_id": s.ID}, s)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return util.ErrNotFound
	}
	return nil
}

func (r *SurveyRepository) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"isActive": false}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return util.ErrNotFound
	}
	return nil
}
