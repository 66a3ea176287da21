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

type EcoPinRepository struct {
	Col *mongo.Collection
}

func NewEcoPinRepository(db *mongo.Database) *EcoPinRepository {
	return &EcoPinRepository{Col: db.Collection(database.ColEcoPins)}
}

func (r *EcoPinRepository) Create(ctx context.Context, p *model.EcoPin) error {
	res, err := r.Col.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = id
	}
	return nil
}

func (r *EcoPinRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.EcoPin, error) {
	var p model.EcoPin
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *EcoPinRepository) FindActive(ctx context.Context, filter model.PinFilter) ([]model.EcoPin, error) {
	query := bson.M{"isActive": true}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if minLat, maxLat, minLng, maxLng, ok := filter.Bounds(); ok {
		query["latitude"] = bson.M{"$gte": minLat, "$lte": maxLat}
		query["longitude"] = bson.M{"$gte": minLng, "$lte": maxLng}
	}

	cur, err := r.Col.Find(ctx, query,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var pins []model.EcoPin
	if err := cur.All(ctx, &pins); err != nil {
		return nil, err
	}
	return pins, nil
}

func (r *EcoPinRepository) Save(ctx context.Context, p *model.EcoPin) error {
	res, err := r.Col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return util.ErrNotFound
	}
	return nil
}

func (r *EcoPinRepository) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"isActive": false}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return util.ErrNotFound
	}
	return nil
}

type PinRequestRepository struct {
	Col *mongo.Collection
}

func NewPinRequestRepository(db *mongo.Database) *PinRequestRepository {
	return &PinRequestRepository{Col: db.Collection(database.ColPinRequests)}
}

func (r *PinRequestRepository) Create(ctx context.Context, req *model.PinRequest) error {
	res, err := r.Col.InsertOne(ctx, req)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		req.ID = id
	}
	return nil
}

func (r *PinRequestRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.PinRequest, error) {
	var req model.PinRequest
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *PinRequestRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]model.PinRequest, error) {
	return r.find(ctx, bson.M{"requestedBy": userID})
}

func (r *PinRequestRepository) List(ctx context.Context, status model.PinRequestStatus) ([]model.PinRequest, error) {
	query := bson.M{}
	if status != "" {
		query["status"] = status
	}
	return r.find(ctx, query)
}

func (r *PinRequestRepository) find(ctx context.Context, query bson.M) ([]model.PinRequest, error) {
	cur, err := r.Col.Find(ctx, query,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var requests []model.PinRequest
	if err := cur.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *PinRequestRepository) Save(ctx context.Context, req *model.PinRequest) error {
	res, err := r.Col.ReplaceOne(ctx, bson.M{"_id": req.ID}, req)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return util.ErrNotFound
	}
	return nil
}
