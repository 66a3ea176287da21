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

func newLearningFixture(t *testing.T) (*LearningService, *fakeUserStore, *fakeModuleStore, primitive.ObjectID, primitive.ObjectID) {
	t.Helper()

	users := newFakeUserStore()
	modules := newFakeModuleStore()
	progress := newFakeProgressStore()

	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	userID := newTestUser(users, now)
	moduleID := modules.add(&model.Module{
		Title:    "Composting Basics",
		Category: "Waste Management",
		Lessons: []model.Lesson{
			{Title: "Why compost", Duration: 10, Order: 1},
			{Title: "Building a bin", Duration: 15, Order: 2},
			{Title: "Troubleshooting", Duration: 5, Order: 3},
		},
		Points:   50,
		IsActive: true,
	})

	points := NewPointsService(users)
	points.Now = func() time.Time { return now }
	return NewLearningService(modules, progress, points), users, modules, userID, moduleID
}

func TestGetModuleProgressCreatesOnFirstAccess(t *testing.T) {
	svc, _, _, userID, moduleID := newLearningFixture(t)
	ctx := context.Background()

	progress, err := svc.GetModuleProgress(ctx, userID, moduleID)
	require.NoError(t, err)
	assert.False(t, progress.ID.IsZero())
	assert.Empty(t, progress.CompletedLessons)

	again, err := svc.GetModuleProgress(ctx, userID, moduleID)
	require.NoError(t, err)
	assert.Equal(t, progress.ID, again.ID, "second access reuses the record")
}

func TestUpdateLessonProgressIsIdempotent(t *testing.T) {
	svc, _, _, userID, moduleID := newLearningFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.UpdateLessonProgress(ctx, userID, moduleID, 1, true)
		require.NoError(t, err)
	}

	progress, err := svc.GetModuleProgress(ctx, userID, moduleID)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, progress.CompletedLessons)
	assert.Equal(t, 1, progress.CurrentLesson)
}

func TestUpdateLessonProgressRejectsOutOfRangeIndex(t *testing.T) {
	svc, _, _, userID, moduleID := newLearningFixture(t)

	_, err := svc.UpdateLessonProgress(context.Background(), userID, moduleID, 3, true)
	assert.ErrorIs(t, err, util.ErrValidation)

	_, err = svc.UpdateLessonProgress(context.Background(), userID, moduleID, -1, true)
	assert.ErrorIs(t, err, util.ErrValidation)
}

func TestCompleteModuleRequiresEveryLesson(t *testing.T) {
	svc, _, _, userID, moduleID := newLearningFixture(t)
	ctx := context.Background()

	_, err := svc.UpdateLessonProgress(ctx, userID, moduleID, 0, true)
	require.NoError(t, err)
	_, err = svc.UpdateLessonProgress(ctx, userID, moduleID, 1, true)
	require.NoError(t, err)

	_, _, err = svc.CompleteModule(ctx, userID, moduleID)
	assert.ErrorIs(t, err, util.ErrModuleNotCompleted)
}

func TestCompleteModuleAwardsPointsAndBadgeOnce(t *testing.T) {
	svc, users, _, userID, moduleID := newLearningFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.UpdateLessonProgress(ctx, userID, moduleID, i, true)
		require.NoError(t, err)
	}

	progress, earned, err := svc.CompleteModule(ctx, userID, moduleID)
	require.NoError(t, err)
	assert.Equal(t, 50, earned)
	assert.True(t, progress.IsCompleted)
	assert.Equal(t, 50, progress.EarnedPoints)

	user, err := users.FindByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 50, user.Points)
	assert.Equal(t, 1, user.ModulesCompleted)
	require.Len(t, user.Badges, 1)
	assert.Equal(t, "Waste Management Expert", user.Badges[0].Name)
	require.Len(t, user.PointsHistory, 1)
	assert.Equal(t, model.PointsModuleCompleted, user.PointsHistory[0].Type)

	// Completing again conflicts; nothing is awarded twice.
	_, _, err = svc.CompleteModule(ctx, userID, moduleID)
	assert.ErrorIs(t, err, util.ErrConflict)

	user, err = users.FindByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 50, user.Points)
	assert.Equal(t, 1, user.ModulesCompleted)
}

func TestCompletionStatus(t *testing.T) {
	svc, _, _, userID, moduleID := newLearningFixture(t)
	ctx := context.Background()

	completed, total, canComplete, isCompleted, err := svc.CompletionStatus(ctx, userID, moduleID)
	require.NoError(t, err)
	assert.Equal(t, 0, completed)
	assert.Equal(t, 3, total)
	assert.False(t, canComplete)
	assert.False(t, isCompleted)

	for i := 0; i < 3; i++ {
		_, err := svc.UpdateLessonProgress(ctx, userID, moduleID, i, true)
		require.NoError(t, err)
	}

	completed, _, canComplete, isCompleted, err = svc.CompletionStatus(ctx, userID, moduleID)
	require.NoError(t, err)
	assert.Equal(t, 3, completed)
	assert.True(t, canComplete)
	assert.False(t, isCompleted)

	_, _, err = svc.CompleteModule(ctx, userID, moduleID)
	require.NoError(t, err)

	_, _, canComplete, isCompleted, err = svc.CompletionStatus(ctx, userID, moduleID)
	require.NoError(t, err)
	assert.False(t, canComplete)
	assert.True(t, isCompleted)
}

func TestCreateModuleValidatesCategory(t *testing.T) {
	svc, _, _, _, _ := newLearningFixture(t)

	err := svc.CreateModule(context.Background(), &model.Module{
		Title:    "Mystery",
		Category: "Astrology",
		Lessons:  []model.Lesson{{Title: "Intro", Duration: 5}},
	}, primitive.NewObjectID())
	assert.ErrorIs(t, err, util.ErrValidation)
}

func TestCreateModuleComputesEstimatedTime(t *testing.T) {
	svc, _, modules, _, _ := newLearningFixture(t)
	ctx := context.Background()

	m := &model.Module{
		Title:    "Solar at Home",
		Category: "Renewable Energy",
		Lessons: []model.Lesson{
			{Title: "Panels", Duration: 20},
			{Title: "Inverters", Duration: 25},
		},
		Points: 40,
	}
	require.NoError(t, svc.CreateModule(ctx, m, primitive.NewObjectID()))

	stored, err := modules.FindByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 45, stored.EstimatedTime)
	assert.True(t, stored.IsActive)
}
