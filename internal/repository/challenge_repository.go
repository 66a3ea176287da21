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

type ChallengeRepository struct {
	Col *mongo.Collection
}

func NewChallengeRepository(db *mongo.Database) *ChallengeRepository {
	return &ChallengeRepository{Col: db.Collection(database.ColChallenges)}
}

func (r *ChallengeRepository) Create(ctx context.Context, ch *model.Challenge) error {
	res, err := r.Col.InsertOne(ctx, ch)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		ch.ID = id
	}
	return nil
}

func (r *ChallengeRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Challenge, error) {
	var ch model.Challenge
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&ch)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

func (r *ChallengeRepository) FindActive(ctx context.Context, category string) ([]model.Challenge, error) {
	filter := bson.M{"isActive": true}
	if category != "" {
		filter["category"] = category
	}

	cur, err := r.Col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "startDate", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var challenges []model.Challenge
	if err := cur.All(ctx, &challenges); err != nil {
		return nil, err
	}
	return challenges, nil
}

// FindJoinedBy returns challenges in which the user appears as a participant.
func (r *ChallengeRepository) FindJoinedBy(ctx context.Context, userID primitive.ObjectID) ([]model.Challenge, error) {
	cur, err := r.Col.Find(ctx, bson.M{"participants.user": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var challenges []model.Challenge
	if err := cur.All(ctx, &challenges); err != nil {
		return nil, err
	}
	return challenges, nil
}

// FindWithPendingSubmissions lists challenges holding at least one
// unreviewed submission, for the moderation queue.
func (r *ChallengeRepository) FindWithPendingSubmissions(ctx context.Context) ([]model.Challenge, error) {
	cur, err := r.Col.Find(ctx, bson.M{
		"participants.submissions.status": model.SubmissionPending,
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var challenges []model.Challenge
	if err := cur.All(ctx, &challenges); err != nil {
		return nil, err
	}
	return challenges, nil
}

func (r *ChallengeRepository) Save(ctx context.Context, ch *model.Challenge) error {
	res, err := r.Col.ReplaceOne(ctx, bson.M{"_id": ch.ID}, ch)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return util.ErrNotFound
	}
	return nil
}

func (r *ChallengeRepository) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"isActive": false}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return util.ErrNotFound
	}
	return nil
}
