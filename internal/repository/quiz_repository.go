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

type QuizRepository struct {
	Col *mongo.Collection
}

func NewQuizRepository(db *mongo.Database) *QuizRepository {
	return &QuizRepository{Col: db.Collection(database.ColQuizzes)}
}

func (r *QuizRepository) Create(ctx context.Context, q *model.Quiz) error {
	res, err := r.Col.InsertOne(ctx, q)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		q.ID = id
	}
	return nil
}

func (r *QuizRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Quiz, error) {
	var q model.Quiz
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&q)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuizRepository) FindActive(ctx context.Context, moduleID *primitive.ObjectID) ([]model.Quiz, error) {
	filter := bson.M{"isActive": true, "isDailyQuestion": false}
	if moduleID != nil {
		filter["module"] = *moduleID
	}

	cur, err := r.Col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var quizzes []model.Quiz
	if err := cur.All(ctx, &quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}

// FindDaily looks up the daily question for a calendar date (YYYY-MM-DD),
// preferring a school-specific question over the global one.
func (r *QuizRepository) FindDaily(ctx context.Context, date, school string) (*model.Quiz, error) {
	var q model.Quiz
	err := r.Col.FindOne(ctx, bson.M{
		"isDailyQuestion": true,
		"dailyDate":       date,
		"school":          school,
	}).Decode(&q)
	if errors.Is(err, mongo.ErrNoDocuments) {
		err = r.Col.FindOne(ctx, bson.M{
			"isDailyQuestion": true,
			"dailyDate":       date,
			"school":          "",
		}).Decode(&q)
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// FindAnyActiveDaily returns an active daily-question quiz regardless of its
// assigned date, used to promote a quiz to today's question.
func (r *QuizRepository) FindAnyActiveDaily(ctx context.Context, school string) (*model.Quiz, error) {
	filter := bson.M{"isDailyQuestion": true, "isActive": true}
	if school != "" {
		filter["school"] = bson.M{"$in": bson.A{school, ""}}
	}

	var q model.Quiz
	err := r.Col.FindOne(ctx, filter, options.FindOne().SetSort(bson.D{{Key: "dailyDate", Value: 1}})).Decode(&q)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuizRepository) Save(ctx context.Context, q *model.Quiz) error {
	res, err := r.Col.ReplaceOne(ctx, bson.M{"_id": q.ID}, q)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return util.ErrNotFound
	}
	return nil
}

func (r *QuizRepository) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"isActive": false}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return util.ErrNotFound
	}
	return nil
}
