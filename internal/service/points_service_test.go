package service

import (
	"context"
	"testing"
	"time"

	"github.com/Chirandip-dev07/ujjivana/internal/model"
	"github.com/Chirandip-dev07/ujjivana/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestUser(users *fakeUserStore, at time.Time) primitive.ObjectID {
	return users.add(&model.User{
		Name:             "Asha",
		Email:            "asha@example.com",
		Role:             model.Student,
		School:           "Green Valley High",
		LastWeeklyReset:  at,
		LastMonthlyReset: at,
	})
}

func TestApplyKeepsCountersAndHistoryInStep(t *testing.T) {
	users := newFakeUserStore()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	userID := newTestUser(users, now)

	svc := NewPointsService(users)
	svc.Now = func() time.Time { return now }

	deltas := []int{50, 20, 10}
	for _, d := range deltas {
		_, err := svc.Apply(context.Background(), userID, d, model.PointsModuleCompleted, "module", primitive.NewObjectID())
		require.NoError(t, err)
	}

	user, err := users.FindByID(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 80, user.Points)
	assert.Equal(t, 80, user.MonthlyPoints)
	assert.Equal(t, 80, user.WeeklyPoints)
	require.Len(t, user.PointsHistory, 3)

	sum := 0
	for _, entry := range user.PointsHistory {
		sum += entry.Points
	}
	assert.Equal(t, user.Points, sum)
}

func TestApplyNegativeDelta(t *testing.T) {
	users := newFakeUserStore()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	userID := newTestUser(users, now)

	svc := NewPointsService(users)
	svc.Now = func() time.Time { return now }

	_, err := svc.Apply(context.Background(), userID, 100, model.PointsEventRegistration, "registered", primitive.NewObjectID())
	require.NoError(t, err)
	user, err := svc.Apply(context.Background(), userID, -100, model.PointsEventRegistration, "unregistered", primitive.NewObjectID())
	require.NoError(t, err)

	assert.Equal(t, 0, user.Points)
	assert.Equal(t, 0, user.WeeklyPoints)
	require.Len(t, user.PointsHistory, 2)
	assert.Equal(t, -100, user.PointsHistory[1].Points)
}

func TestApplyWeeklyRollover(t *testing.T) {
	users := newFakeUserStore()
	start := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	userID := newTestUser(users, start)

	svc := NewPointsService(users)
	now := start
	svc.Now = func() time.Time { return now }

	_, err := svc.Apply(context.Background(), userID, 40, model.PointsQuizCompleted, "quiz", primitive.NewObjectID())
	require.NoError(t, err)

	// Six days later the window is still open.
	now = start.Add(6 * 24 * time.Hour)
	user, err := svc.Apply(context.Background(), userID, 10, model.PointsQuizCompleted, "quiz", primitive.NewObjectID())
	require.NoError(t, err)
	assert.Equal(t, 50, user.WeeklyPoints)
	assert.Equal(t, start, user.LastWeeklyReset)

	// Seven full days after the reset the counter restarts from zero.
	now = start.Add(7 * 24 * time.Hour)
	user, err = svc.Apply(context.Background(), userID, 5, model.PointsQuizCompleted, "quiz", primitive.NewObjectID())
	require.NoError(t, err)
	assert.Equal(t, 5, user.WeeklyPoints)
	assert.Equal(t, now, user.LastWeeklyReset)
	assert.Equal(t, 55, user.Points, "lifetime total is unaffected by the rollover")
}

func TestApplyMonthlyRollover(t *testing.T) {
	users := newFakeUserStore()
	start := time.Date(2025, 3, 31, 23, 0, 0, 0, time.UTC)
	userID := newTestUser(users, start)

	svc := NewPointsService(users)
	now := start
	svc.Now = func() time.Time { return now }

	_, err := svc.Apply(context.Background(), userID, 60, model.PointsChallengeCompleted, "challenge", primitive.NewObjectID())
	require.NoError(t, err)

	// The calendar month advanced, even though less than 30 days have passed.
	now = time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	user, err := svc.Apply(context.Background(), userID, 15, model.PointsChallengeCompleted, "challenge", primitive.NewObjectID())
	require.NoError(t, err)
	assert.Equal(t, 15, user.MonthlyPoints)
	assert.Equal(t, now, user.LastMonthlyReset)
	assert.Equal(t, 75, user.Points)
}

func TestApplyUnknownUser(t *testing.T) {
	svc := NewPointsService(newFakeUserStore())
	_, err := svc.Apply(context.Background(), primitive.NewObjectID(), 10, model.PointsOther, "", primitive.NilObjectID)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}
