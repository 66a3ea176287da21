package database

import (
	"context"
	"log"
	"time"

	"github.com/Chirandip-dev07/ujjivana/internal/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used across the repositories.
const (
	ColUsers        = "users"
	ColModules      = "modules"
	ColUserProgress = "user_progress"
	ColQuizzes      = "quizzes"
	ColQuizAttempts = "quiz_attempts"
	ColChallenges   = "challenges"
	ColRewards      = "rewards"
	ColRedemptions  = "redemptions"
	ColSurveys      = "surveys"
	ColEvents       = "events"
	ColEcoPins      = "eco_pins"
	ColPinRequests  = "pin_requests"
)

func InitMongo(cfg *config.MongoConfig) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetRetryWrites(true)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	log.Println("MongoDB connection established")

	db := client.Database(cfg.Database)
	if err := ensureIndexes(ctx, db); err != nil {
		return nil, err
	}

	return db, nil
}

func Disconnect(db *mongo.Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.Client().Disconnect(ctx); err != nil {
		log.Printf("Error disconnecting from MongoDB: %s", err)
	}
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	_, err := db.Collection(ColUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(ColUserProgress).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}, {Key: "module", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(ColQuizAttempts).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user", Value: 1}, {Key: "quiz", Value: 1}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(ColQuizzes).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "dailyDate", Value: 1}, {Key: "school", Value: 1}},
	})
	return err
}
