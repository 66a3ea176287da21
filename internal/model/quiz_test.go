package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuizNormalizeDefaultsAndTotals(t *testing.T) {
	q := &Quiz{
		Questions: []Question{
			{Question: "a", Options: []string{"x", "y"}, CorrectAnswer: 0},
			{Question: "b", Options: []string{"x", "y"}, CorrectAnswer: 1, Points: 25},
		},
	}
	q.Normalize()

	assert.Equal(t, DefaultQuestionPoints, q.Questions[0].Points)
	assert.Equal(t, 25, q.Questions[1].Points)
	assert.Equal(t, 35, q.TotalPoints)
}

func TestQuizSanitizedStripsAnswers(t *testing.T) {
	q := Quiz{
		Title: "Water Cycle",
		Questions: []Question{
			{Question: "a", Options: []string{"x", "y"}, CorrectAnswer: 1},
		},
	}

	clean := q.Sanitized()
	assert.Zero(t, clean.Questions[0].CorrectAnswer)
	assert.Equal(t, 1, q.Questions[0].CorrectAnswer, "the original is untouched")
}

func TestQuestionSerializesAnswerIndexZero(t *testing.T) {
	raw, err := json.Marshal(Question{
		Question:      "a",
		Options:       []string{"x", "y"},
		CorrectAnswer: 0,
		Points:        10,
	})
	assert.NoError(t, err)
	assert.Contains(t, string(raw), `"correctAnswer":0`,
		"the first option being correct must survive an unsanitized read")
}
