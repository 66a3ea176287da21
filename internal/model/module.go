package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Lesson struct {
	Title    string `bson:"title" json:"title"`
	Content  string `bson:"content" json:"content,omitempty"`
	Duration int    `bson:"duration" json:"duration"` // minutes
	Order    int    `bson:"order" json:"order"`
}

// Module is a structured lesson sequence with a point reward on completion.
type Module struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description" json:"description"`
	Category      string             `bson:"category" json:"category"`
	Lessons       []Lesson           `bson:"lessons" json:"lessons"`
	EstimatedTime int                `bson:"estimatedTime" json:"estimatedTime"` // total minutes
	Points        int                `bson:"points" json:"points"`
	Badge         string             `bson:"badge,omitempty" json:"badge,omitempty"`
	School        string             `bson:"school" json:"school"`
	IsActive      bool               `bson:"isActive" json:"isActive"`
	CreatedBy     primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// ModuleCategories mirrors the curriculum taxonomy; createModule validates against it.
var ModuleCategories = []string{
	"Green Habits",
	"Global Warming",
	"Biodiversity",
	"Sustainable Development",
	"Renewable Energy",
	"Waste Management",
}

// RecalculateEstimatedTime sums lesson durations; called before every persist.
func (m *Module) RecalculateEstimatedTime() {
	total := 0
	for _, l := range m.Lessons {
		total += l.Duration
	}
	m.EstimatedTime = total
}
