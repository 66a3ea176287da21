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

func newChallengeFixture(t *testing.T) (*ChallengeService, *fakeUserStore, *fakeChallengeStore, primitive.ObjectID) {
	t.Helper()

	users := newFakeUserStore()
	challenges := newFakeChallengeStore()

	now := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	userID := newTestUser(users, now)

	points := NewPointsService(users)
	points.Now = func() time.Time { return now }

	svc := NewChallengeService(challenges, points)
	svc.Now = func() time.Time { return now }
	return svc, users, challenges, userID
}

func plasticFreeChallenge(challenges *fakeChallengeStore, target int) primitive.ObjectID {
	return challenges.add(&model.Challenge{
		Title:        "Plastic-Free Week",
		Description:  "Go a week without single-use plastic",
		PointsReward: 100,
		Category:     "Green Habits",
		Duration:     7,
		CompletionCriteria: model.CompletionCriteria{
			Type:               "custom",
			Target:             target,
			RequiresSubmission: true,
		},
		Participants: []model.Participant{},
		IsActive:     true,
		CreatedBy:    primitive.NewObjectID(),
	})
}

func TestJoinIsIdempotent(t *testing.T) {
	svc, _, challenges, userID := newChallengeFixture(t)
	challengeID := plasticFreeChallenge(challenges, 1)
	ctx := context.Background()

	_, err := svc.Join(ctx, userID, challengeID)
	require.NoError(t, err)
	_, err = svc.Join(ctx, userID, challengeID)
	require.NoError(t, err)

	ch, err := challenges.FindByID(ctx, challengeID)
	require.NoError(t, err)
	assert.Len(t, ch.Participants, 1)
}

func TestSubmitWorkCreatesParticipantOnFirstContact(t *testing.T) {
	svc, _, challenges, userID := newChallengeFixture(t)
	challengeID := plasticFreeChallenge(challenges, 1)
	ctx := context.Background()

	sub, err := svc.SubmitWork(ctx, userID, challengeID, "photo-of-reusable-bag.jpg", "Day one")
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionPending, sub.Status)

	ch, err := challenges.FindByID(ctx, challengeID)
	require.NoError(t, err)
	require.Len(t, ch.Participants, 1)
	assert.Equal(t, userID, ch.Participants[0].User)
	require.Len(t, ch.Participants[0].Submissions, 1)
}

func TestSubmitWorkRejectedWithoutSubmissionCriteria(t *testing.T) {
	svc, _, challenges, userID := newChallengeFixture(t)
	challengeID := challenges.add(&model.Challenge{
		Title:        "Honor System",
		PointsReward: 20,
		CompletionCriteria: model.CompletionCriteria{
			Type:   "custom",
			Target: 1,
		},
		IsActive: true,
	})

	_, err := svc.SubmitWork(context.Background(), userID, challengeID, "evidence", "")
	assert.ErrorIs(t, err, util.ErrSubmissionNotRequired)
}

func TestReviewRequiresTeacherOrAdmin(t *testing.T) {
	svc, _, challenges, userID := newChallengeFixture(t)
	challengeID := plasticFreeChallenge(challenges, 1)
	ctx := context.Background()

	sub, err := svc.SubmitWork(ctx, userID, challengeID, "evidence", "")
	require.NoError(t, err)
	ch, err := challenges.FindByID(ctx, challengeID)
	require.NoError(t, err)
	participantID := ch.Participants[0].ID

	_, err = svc.ReviewSubmission(ctx, model.Student, challengeID, participantID, sub.ID,
		ReviewInput{Status: model.SubmissionApproved})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestReviewApprovalCompletesChallengeExactlyOnce(t *testing.T) {
	svc, users, challenges, userID := newChallengeFixture(t)
	challengeID := plasticFreeChallenge(challenges, 2)
	ctx := context.Background()

	submit := func() (primitive.ObjectID, primitive.ObjectID) {
		sub, err := svc.SubmitWork(ctx, userID, challengeID, "evidence", "")
		require.NoError(t, err)
		ch, err := challenges.FindByID(ctx, challengeID)
		require.NoError(t, err)
		return ch.Participants[0].ID, sub.ID
	}

	participantID, firstSub := submit()
	reviewed, err := svc.ReviewSubmission(ctx, model.Teacher, challengeID, participantID, firstSub,
		ReviewInput{Status: model.SubmissionApproved, Feedback: "Nice work"})
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionApproved, reviewed.Status)

	ch, err := challenges.FindByID(ctx, challengeID)
	require.NoError(t, err)
	assert.InDelta(t, 50, ch.Participants[0].Progress, 0.01)
	assert.False(t, ch.Participants[0].Completed)

	user, err := users.FindByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, user.Points, "no reward until the target is reached")

	// Second approval hits the target and completes.
	_, secondSub := submit()
	_, err = svc.ReviewSubmission(ctx, model.Teacher, challengeID, participantID, secondSub,
		ReviewInput{Status: model.SubmissionApproved})
	require.NoError(t, err)

	ch, err = challenges.FindByID(ctx, challengeID)
	require.NoError(t, err)
	assert.True(t, ch.Participants[0].Completed)
	assert.InDelta(t, 100, ch.Participants[0].Progress, 0.01)

	user, err = users.FindByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 100, user.Points)
	require.Len(t, user.Badges, 1)
	assert.Equal(t, "Challenge Champion: Plastic-Free Week", user.Badges[0].Name)

	// A third approval past the target must not pay the reward again.
	_, thirdSub := submit()
	_, err = svc.ReviewSubmission(ctx, model.Teacher, challengeID, participantID, thirdSub,
		ReviewInput{Status: model.SubmissionApproved})
	require.NoError(t, err)

	user, err = users.FindByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 100, user.Points)
	assert.Len(t, user.Badges, 1)
}

func TestReviewBonusPointsIndependentOfVerdict(t *testing.T) {
	svc, users, challenges, userID := newChallengeFixture(t)
	challengeID := plasticFreeChallenge(challenges, 5)
	ctx := context.Background()

	sub, err := svc.SubmitWork(ctx, userID, challengeID, "evidence", "")
	require.NoError(t, err)
	ch, err := challenges.FindByID(ctx, challengeID)
	require.NoError(t, err)
	participantID := ch.Participants[0].ID

	// Rejected, yet the reviewer hands out effort points.
	reviewed, err := svc.ReviewSubmission(ctx, model.Teacher, challengeID, participantID, sub.ID,
		ReviewInput{Status: model.SubmissionRejected, Feedback: "Blurry photo, try again", PointsAwarded: 15})
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionRejected, reviewed.Status)
	assert.Equal(t, 15, reviewed.PointsAwarded)

	user, err := users.FindByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 15, user.Points)
	require.Len(t, user.PointsHistory, 1)
	assert.Equal(t, model.PointsOther, user.PointsHistory[0].Type)

	ch, err = challenges.FindByID(ctx, challengeID)
	require.NoError(t, err)
	assert.Equal(t, 0, ch.Participants[0].ApprovedSubmissions)
	assert.Zero(t, ch.Participants[0].Progress)
}

func TestReviewIsFinal(t *testing.T) {
	svc, _, challenges, userID := newChallengeFixture(t)
	challengeID := plasticFreeChallenge(challenges, 5)
	ctx := context.Background()

	sub, err := svc.SubmitWork(ctx, userID, challengeID, "evidence", "")
	require.NoError(t, err)
	ch, err := challenges.FindByID(ctx, challengeID)
	require.NoError(t, err)
	participantID := ch.Participants[0].ID

	_, err = svc.ReviewSubmission(ctx, model.Teacher, challengeID, participantID, sub.ID,
		ReviewInput{Status: model.SubmissionRejected})
	require.NoError(t, err)

	_, err = svc.ReviewSubmission(ctx, model.Teacher, challengeID, participantID, sub.ID,
		ReviewInput{Status: model.SubmissionApproved})
	assert.ErrorIs(t, err, util.ErrAlreadyReviewed)
}

func TestDirectCompleteRequiresParticipation(t *testing.T) {
	svc, _, challenges, userID := newChallengeFixture(t)
	challengeID := plasticFreeChallenge(challenges, 1)

	_, err := svc.Complete(context.Background(), userID, challengeID)
	assert.ErrorIs(t, err, util.ErrNotParticipant)
}

func TestDirectCompleteAwardsOnce(t *testing.T) {
	svc, users, challenges, userID := newChallengeFixture(t)
	challengeID := plasticFreeChallenge(challenges, 1)
	ctx := context.Background()

	_, err := svc.Join(ctx, userID, challengeID)
	require.NoError(t, err)

	participant, err := svc.Complete(ctx, userID, challengeID)
	require.NoError(t, err)
	assert.True(t, participant.Completed)
	assert.InDelta(t, 100, participant.Progress, 0.01)

	user, err := users.FindByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 100, user.Points)

	_, err = svc.Complete(ctx, userID, challengeID)
	assert.ErrorIs(t, err, util.ErrConflict)
}

func TestUpdateRestrictedToOwnerOrAdmin(t *testing.T) {
	svc, _, challenges, _ := newChallengeFixture(t)
	owner := primitive.NewObjectID()
	challengeID := challenges.add(&model.Challenge{
		Title:     "Owned",
		Duration:  7,
		IsActive:  true,
		CreatedBy: owner,
	})
	ctx := context.Background()

	edit := &model.Challenge{ID: challengeID, Title: "Renamed", Duration: 7}
	err := svc.Update(ctx, edit, primitive.NewObjectID(), model.Teacher)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	require.NoError(t, svc.Update(ctx, &model.Challenge{ID: challengeID, Title: "Renamed", Duration: 7}, owner, model.Teacher))
	require.NoError(t, svc.Update(ctx, &model.Challenge{ID: challengeID, Title: "Renamed again", Duration: 7}, primitive.NewObjectID(), model.Admin))
}

func TestPendingSubmissionsQueue(t *testing.T) {
	svc, users, challenges, userID := newChallengeFixture(t)
	challengeID := plasticFreeChallenge(challenges, 3)
	otherID := newTestUserWithEmail(users, "ravi@example.com")
	ctx := context.Background()

	_, err := svc.SubmitWork(ctx, userID, challengeID, "one", "")
	require.NoError(t, err)
	_, err = svc.SubmitWork(ctx, otherID, challengeID, "two", "")
	require.NoError(t, err)

	queue, err := svc.PendingSubmissions(ctx)
	require.NoError(t, err)
	assert.Len(t, queue, 2)
	for _, item := range queue {
		assert.Equal(t, challengeID, item.ChallengeID)
		assert.Equal(t, "Plastic-Free Week", item.ChallengeTitle)
		assert.Equal(t, model.SubmissionPending, item.Submission.Status)
	}
}

func TestStats(t *testing.T) {
	svc, users, challenges, userID := newChallengeFixture(t)
	challengeID := plasticFreeChallenge(challenges, 1)
	otherID := newTestUserWithEmail(users, "ravi@example.com")
	ctx := context.Background()

	sub, err := svc.SubmitWork(ctx, userID, challengeID, "one", "")
	require.NoError(t, err)
	_, err = svc.SubmitWork(ctx, otherID, challengeID, "two", "")
	require.NoError(t, err)

	ch, err := challenges.FindByID(ctx, challengeID)
	require.NoError(t, err)
	_, err = svc.ReviewSubmission(ctx, model.Teacher, challengeID, ch.Participants[0].ID, sub.ID,
		ReviewInput{Status: model.SubmissionApproved})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, challengeID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Participants)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 1, stats.PendingReviews)
	assert.Equal(t, 2, stats.TotalSubmissions)
	assert.InDelta(t, 50, stats.CompletionRate, 0.01)
}

func newTestUserWithEmail(users *fakeUserStore, email string) primitive.ObjectID {
	now := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	return users.add(&model.User{
		Name:             "Ravi",
		Email:            email,
		Role:             model.Student,
		School:           "Green Valley High",
		LastWeeklyReset:  now,
		LastMonthlyReset: now,
	})
}
