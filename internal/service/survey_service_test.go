package service

import (
	"context"
	"testing"
	"time"

	"github.com/Chirandip-dev07/ujjivana/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCompleteSurveyAwardsOnce(t *testing.T) {
	users := newFakeUserStore()
	surveys := newFakeSurveyStore()

	now := time.Date(2025, 10, 1, 10, 0, 0, 0, time.UTC)
	userID := newTestUser(users, now)
	surveyID := surveys.add(&model.Survey{
		Title:    "Eco Habits Check-in",
		Points:   30,
		IsActive: true,
	})

	points := NewPointsService(users)
	points.Now = func() time.Time { return now }
	svc := NewSurveyService(surveys, points)
	ctx := context.Background()

	completion, err := svc.Complete(ctx, userID, surveyID)
	require.NoError(t, err)
	assert.Equal(t, 30, completion.PointsEarned)
	assert.False(t, completion.AlreadyCompleted)

	user, err := users.FindByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 30, user.Points)
	require.Len(t, user.CompletedSurveys, 1)

	// Repeats succeed without paying again.
	completion, err = svc.Complete(ctx, userID, surveyID)
	require.NoError(t, err)
	assert.Equal(t, 0, completion.PointsEarned)
	assert.True(t, completion.AlreadyCompleted)

	user, err = users.FindByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 30, user.Points)
	assert.Len(t, user.CompletedSurveys, 1)
	assert.Len(t, user.PointsHistory, 1)
}

func TestCompleteSurveyUnknownSurvey(t *testing.T) {
	users := newFakeUserStore()
	userID := newTestUser(users, time.Now())

	svc := NewSurveyService(newFakeSurveyStore(), NewPointsService(users))
	_, err := svc.Complete(context.Background(), userID, primitive.NewObjectID())
	assert.Error(t, err)
}
