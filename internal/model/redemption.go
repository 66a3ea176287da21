package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RedemptionStatus string

const (
	RedemptionPending   RedemptionStatus = "pending"
	RedemptionCompleted RedemptionStatus = "completed"
	RedemptionCancelled RedemptionStatus = "cancelled"
)

// Redemption records a single reward purchase against a user's balance.
type Redemption struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User        primitive.ObjectID `bson:"user" json:"user"`
	Reward      primitive.ObjectID `bson:"reward" json:"reward"`
	RewardName  string             `bson:"rewardName" json:"rewardName"`
	PointsSpent int                `bson:"pointsSpent" json:"pointsSpent"`
	Status      RedemptionStatus   `bson:"status" json:"status"`
	RedeemedAt  time.Time          `bson:"redeemedAt" json:"redeemedAt"`
	CompletedAt *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
}
