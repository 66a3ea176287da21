package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultQuestionPoints = 10

type Question struct {
	Question      string   `bson:"question" json:"question"`
	Options       []string `bson:"options" json:"options"`
	CorrectAnswer int      `bson:"correctAnswer" json:"correctAnswer"`
	Points        int      `bson:"points" json:"points"`
}

type Quiz struct {
	ID                       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title                    string             `bson:"title" json:"title"`
	Description              string             `bson:"description,omitempty" json:"description,omitempty"`
	Module                   primitive.ObjectID `bson:"module,omitempty" json:"module,omitempty"`
	School                   string             `bson:"school" json:"school"`
	Questions                []Question         `bson:"questions" json:"questions"`
	TotalPoints              int                `bson:"totalPoints" json:"totalPoints"`
	TimeLimit                int                `bson:"timeLimit" json:"timeLimit"` // minutes
	IsDailyQuestion          bool               `bson:"isDailyQuestion" json:"isDailyQuestion"`
	DailyDate                string             `bson:"dailyDate,omitempty" json:"dailyDate,omitempty"` // YYYY-MM-DD
	RequiresModuleCompletion bool               `bson:"requiresModuleCompletion" json:"requiresModuleCompletion"`
	IsActive                 bool               `bson:"isActive" json:"isActive"`
	CreatedBy                primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt                time.Time          `bson:"createdAt" json:"createdAt"`
}

// Normalize defaults unset question points and recomputes the quiz total;
// called before every persist.
func (q *Quiz) Normalize() {
	total := 0
	for i := range q.Questions {
		if q.Questions[i].Points == 0 {
			q.Questions[i].Points = DefaultQuestionPoints
		}
		total += q.Questions[i].Points
	}
	q.TotalPoints = total
}

// Sanitized returns a copy with correct answers stripped, for student-facing reads.
func (q Quiz) Sanitized() Quiz {
	questions := make([]Question, len(q.Questions))
	for i, question := range q.Questions {
		question.CorrectAnswer = 0
		questions[i] = question
	}
	q.Questions = questions
	return q
}
