package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SurveyQuestion is free-form: rendering is left to the client.
type SurveyQuestion struct {
	Question string   `bson:"question" json:"question"`
	Type     string   `bson:"type" json:"type"`
	Options  []string `bson:"options,omitempty" json:"options,omitempty"`
}

type Survey struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title          string             `bson:"title" json:"title"`
	Description    string             `bson:"description" json:"description"`
	Organization   string             `bson:"organization,omitempty" json:"organization,omitempty"`
	Category       string             `bson:"category,omitempty" json:"category,omitempty"`
	Points         int                `bson:"points" json:"points"`
	Duration       int                `bson:"duration,omitempty" json:"duration,omitempty"`
	Questions      []SurveyQuestion   `bson:"questions,omitempty" json:"questions,omitempty"`
	TargetAudience string             `bson:"targetAudience,omitempty" json:"targetAudience,omitempty"`
	IsActive       bool               `bson:"isActive" json:"isActive"`
	CreatedBy      primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
