package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Chirandip-dev07/ujjivana/internal/model"
	"github.com/Chirandip-dev07/ujjivana/internal/util"
	"github.com/Chirandip-dev07/ujjivana/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EventRepository struct {
	Col *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{Col: db.Collection(database.ColEvents)}
}

func (r *EventRepository) Create(ctx context.Context, e *model.Event) error {
	res, err := r.Col.InsertOne(ctx, e)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		e.ID = id
	}
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Event, error) {
	var e model.Event
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EventRepository) FindUpcoming(ctx context.Context, now time.Time) ([]model.Event, error) {
	cur, err := r.Col.Find(ctx,
		bson.M{"isActive": true, "date": bson.M{"$gte": now}},
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []model.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) FindAll(ctx context.Context) ([]model.Event, error) {
	cur, err := r.Col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []model.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) Save(ctx context.Context, e *model.Event) error {
	res, err := r.Col.ReplaceOne(ctx, bson.M{"_id": e.ID}, e)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return util.ErrNotFound
	}
	return nil
}

func (r *EventRepository) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"isActive": false}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return util.ErrNotFound
	}
	return nil
}
