package repository

import (
	"context"

	"github.com/Chirandip-dev07/ujjivana/internal/model"
	"github.com/Chirandip-dev07/ujjivana/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// QuizAttemptRepository is append-only: attempts are never updated or removed.
type QuizAttemptRepository struct {
	Col *mongo.Collection
}

func NewQuizAttemptRepository(db *mongo.Database) *QuizAttemptRepository {
	return &QuizAttemptRepository{Col: db.Collection(database.ColQuizAttempts)}
}

func (r *QuizAttemptRepository) Create(ctx context.Context, a *model.QuizAttempt) error {
	res, err := r.Col.InsertOne(ctx, a)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = id
	}
	return nil
}

func (r *QuizAttemptRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]model.QuizAttempt, error) {
	cur, err := r.Col.Find(ctx, bson.M{"user": userID},
		options.Find().SetSort(bson.D{{Key: "completedAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var attempts []model.QuizAttempt
	if err := cur.All(ctx, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *QuizAttemptRepository) FindByQuiz(ctx context.Context, quizID primitive.ObjectID) ([]model.QuizAttempt, error) {
	cur, err := r.Col.Find(ctx, bson.M{"quiz": quizID},
		options.Find().SetSort(bson.D{{Key: "completedAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var attempts []model.QuizAttempt
	if err := cur.All(ctx, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}
