package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AnswerResult struct {
	QuestionIndex int  `bson:"questionIndex" json:"questionIndex"`
	AnswerIndex   int  `bson:"answerIndex" json:"answerIndex"`
	IsCorrect     bool `bson:"isCorrect" json:"isCorrect"`
	Points        int  `bson:"points" json:"points"`
}

// QuizAttempt is an append-only record of one scored submission; never mutated
// after insert.
type QuizAttempt struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User           primitive.ObjectID `bson:"user" json:"user"`
	Quiz           primitive.ObjectID `bson:"quiz" json:"quiz"`
	Score          int                `bson:"score" json:"score"`
	TotalPoints    int                `bson:"totalPoints" json:"totalPoints"`
	Answers        []AnswerResult     `bson:"answers" json:"answers"`
	Percentage     float64            `bson:"percentage" json:"percentage"`
	IsFirstAttempt bool               `bson:"isFirstAttempt" json:"isFirstAttempt"`
	SubmittedAt    time.Time          `bson:"submittedAt" json:"submittedAt"`
}
