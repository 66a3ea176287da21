package model

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserProgress tracks a single user's position inside a single module.
// IsCompleted may only become true once every lesson index has been recorded.
type UserProgress struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User             primitive.ObjectID `bson:"user" json:"user"`
	Module           primitive.ObjectID `bson:"module" json:"module"`
	CompletedLessons []int              `bson:"completedLessons" json:"completedLessons"`
	CurrentLesson    int                `bson:"currentLesson" json:"currentLesson"`
	IsCompleted      bool               `bson:"isCompleted" json:"isCompleted"`
	CompletedAt      time.Time          `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	EarnedPoints     int                `bson:"earnedPoints" json:"earnedPoints"`
	TimeSpent        int                `bson:"timeSpent" json:"timeSpent"` // minutes
	LastAccessed     time.Time          `bson:"lastAccessed" json:"lastAccessed"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// MarkLessonComplete records a lesson index, keeping the slice deduplicated and
// ascending. Calling it again with the same index is a no-op.
func (p *UserProgress) MarkLessonComplete(lessonIndex int) {
	for _, idx := range p.CompletedLessons {
		if idx == lessonIndex {
			return
		}
	}
	p.CompletedLessons = append(p.CompletedLessons, lessonIndex)
	sort.Ints(p.CompletedLessons)
}
