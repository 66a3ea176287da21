package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Chirandip-dev07/ujjivana/internal/model"
	"github.com/Chirandip-dev07/ujjivana/internal/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ChallengeService struct {
	Challenges ChallengeStore
	Points     *PointsService

	Now func() time.Time
}

func NewChallengeService(challenges ChallengeStore, points *PointsService) *ChallengeService {
	return &ChallengeService{Challenges: challenges, Points: points, Now: time.Now}
}

func (s *ChallengeService) List(ctx context.Context, category string) ([]model.Challenge, error) {
	return s.Challenges.FindActive(ctx, category)
}

func (s *ChallengeService) Get(ctx context.Context, id primitive.ObjectID) (*model.Challenge, error) {
	return s.Challenges.FindByID(ctx, id)
}

func (s *ChallengeService) Joined(ctx context.Context, userID primitive.ObjectID) ([]model.Challenge, error) {
	return s.Challenges.FindJoinedBy(ctx, userID)
}

func (s *ChallengeService) Create(ctx context.Context, ch *model.Challenge, createdBy primitive.ObjectID) error {
	if ch.Title == "" || ch.PointsReward < 0 || ch.Duration < 1 {
		return fmt.Errorf("%w: title, non-negative reward and positive duration are required", util.ErrValidation)
	}

	ch.Normalize()
	ch.IsActive = true
	ch.CreatedBy = createdBy
	ch.CreatedAt = s.Now()
	ch.Participants = []model.Participant{}
	return s.Challenges.Create(ctx, ch)
}

// Update is restricted to the challenge owner or an admin.
func (s *ChallengeService) Update(ctx context.Context, ch *model.Challenge, editor primitive.ObjectID, editorRole model.UserRole) error {
	existing, err := s.Challenges.FindByID(ctx, ch.ID)
	if err != nil {
		return err
	}
	if existing.CreatedBy != editor && editorRole != model.Admin {
		return util.ErrPermissionDenied
	}

	ch.Participants = existing.Participants
	ch.CreatedBy = existing.CreatedBy
	ch.CreatedAt = existing.CreatedAt
	ch.Normalize()
	return s.Challenges.Save(ctx, ch)
}

func (s *ChallengeService) Delete(ctx context.Context, id, editor primitive.ObjectID, editorRole model.UserRole) error {
	existing, err := s.Challenges.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.CreatedBy != editor && editorRole != model.Admin {
		return util.ErrPermissionDenied
	}
	return s.Challenges.Deactivate(ctx, id)
}

// Join registers the user as a participant; joining twice is a no-op.
func (s *ChallengeService) Join(ctx context.Context, userID, challengeID primitive.ObjectID) (*model.Challenge, error) {
	ch, err := s.Challenges.FindByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	if ch.FindParticipant(userID) == nil {
		ch.Participants = append(ch.Participants, model.Participant{
			ID:          primitive.NewObjectID(),
			User:        userID,
			JoinedAt:    s.Now(),
			Submissions: []model.Submission{},
		})
		if err := s.Challenges.Save(ctx, ch); err != nil {
			return nil, err
		}
	}
	return ch, nil
}

// SubmitWork hands in evidence for a submission-based challenge. The
// participant record is created on first contact.
func (s *ChallengeService) SubmitWork(ctx context.Context, userID, challengeID primitive.ObjectID, content, description string) (*model.Submission, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: submission content is required", util.ErrValidation)
	}

	ch, err := s.Challenges.FindByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if ch.CompletionCriteria.Type != "custom" || !ch.CompletionCriteria.RequiresSubmission {
		return nil, util.ErrSubmissionNotRequired
	}

	participant := ch.FindParticipant(userID)
	if participant == nil {
		ch.Participants = append(ch.Participants, model.Participant{
			ID:          primitive.NewObjectID(),
			User:        userID,
			JoinedAt:    s.Now(),
			Submissions: []model.Submission{},
		})
		participant = &ch.Participants[len(ch.Participants)-1]
	}

	submission := model.Submission{
		ID:          primitive.NewObjectID(),
		Content:     content,
		Description: description,
		Status:      model.SubmissionPending,
		SubmittedAt: s.Now(),
	}
	participant.Submissions = append(participant.Submissions, submission)

	if err := s.Challenges.Save(ctx, ch); err != nil {
		return nil, err
	}
	return &submission, nil
}

type ReviewInput struct {
	Status        model.SubmissionStatus
	Feedback      string
	PointsAwarded int
}

// ReviewSubmission resolves a pending submission. Bonus points, when set, are
// credited whatever the verdict. An approval that pushes progress to 100 for
// the first time completes the challenge: reward points and the champion
// badge are granted exactly once.
func (s *ChallengeService) ReviewSubmission(ctx context.Context, reviewerRole model.UserRole, challengeID, participantID, submissionID primitive.ObjectID, in ReviewInput) (*model.Submission, error) {
	if reviewerRole != model.Teacher && reviewerRole != model.Admin {
		return nil, util.ErrPermissionDenied
	}
	if in.Status != model.SubmissionApproved && in.Status != model.SubmissionRejected {
		return nil, fmt.Errorf("%w: status must be approved or rejected", util.ErrValidation)
	}

	ch, err := s.Challenges.FindByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	participant := ch.ParticipantByID(participantID)
	if participant == nil {
		return nil, util.ErrNotFound
	}
	submission := participant.SubmissionByID(submissionID)
	if submission == nil {
		return nil, util.ErrNotFound
	}
	if submission.Status != model.SubmissionPending {
		return nil, util.ErrAlreadyReviewed
	}

	now := s.Now()
	submission.Status = in.Status
	submission.Feedback = in.Feedback
	submission.PointsAwarded = in.PointsAwarded
	submission.ReviewedAt = now

	if in.PointsAwarded > 0 {
		if _, err := s.Points.Apply(ctx, participant.User, in.PointsAwarded, model.PointsOther,
			fmt.Sprintf("Bonus points for submission in challenge: %s", ch.Title), ch.ID); err != nil {
			return nil, err
		}
	}

	if in.Status == model.SubmissionApproved {
		participant.ApprovedSubmissions++
		target := ch.CompletionCriteria.Target
		progress := float64(participant.ApprovedSubmissions) / float64(target) * 100
		if progress > 100 {
			progress = 100
		}
		participant.Progress = progress

		if progress >= 100 && !participant.Completed {
			participant.Completed = true
			participant.CompletedAt = now

			user, err := s.Points.Apply(ctx, participant.User, ch.PointsReward,
				model.PointsChallengeCompleted,
				fmt.Sprintf("Completed challenge: %s", ch.Title), ch.ID)
			if err != nil {
				return nil, err
			}
			user.AddBadge("Challenge Champion: "+ch.Title,
				fmt.Sprintf("Completed the %s challenge", ch.Title))
			if err := s.Points.Users.Save(ctx, user); err != nil {
				return nil, err
			}
		}
	}

	if err := s.Challenges.Save(ctx, ch); err != nil {
		return nil, err
	}
	return submission, nil
}

// Complete is the direct completion path for challenges that track progress
// without submissions.
func (s *ChallengeService) Complete(ctx context.Context, userID, challengeID primitive.ObjectID) (*model.Participant, error) {
	ch, err := s.Challenges.FindByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	participant := ch.FindParticipant(userID)
	if participant == nil {
		return nil, util.ErrNotParticipant
	}
	if participant.Completed {
		return nil, fmt.Errorf("%w: challenge already completed", util.ErrConflict)
	}

	now := s.Now()
	participant.Completed = true
	participant.CompletedAt = now
	participant.Progress = 100

	user, err := s.Points.Apply(ctx, userID, ch.PointsReward, model.PointsChallengeCompleted,
		fmt.Sprintf("Completed challenge: %s", ch.Title), ch.ID)
	if err != nil {
		return nil, err
	}
	user.AddBadge("Challenge Champion: "+ch.Title,
		fmt.Sprintf("Completed the %s challenge", ch.Title))
	if err := s.Points.Users.Save(ctx, user); err != nil {
		return nil, err
	}

	if err := s.Challenges.Save(ctx, ch); err != nil {
		return nil, err
	}
	return participant, nil
}

// MySubmissions returns the caller's submissions for one challenge.
func (s *ChallengeService) MySubmissions(ctx context.Context, userID, challengeID primitive.ObjectID) ([]model.Submission, error) {
	ch, err := s.Challenges.FindByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	participant := ch.FindParticipant(userID)
	if participant == nil {
		return []model.Submission{}, nil
	}
	return participant.Submissions, nil
}

// PendingReview is the moderation queue entry shape.
type PendingReview struct {
	ChallengeID    primitive.ObjectID `json:"challengeId"`
	ChallengeTitle string             `json:"challengeTitle"`
	ParticipantID  primitive.ObjectID `json:"participantId"`
	UserID         primitive.ObjectID `json:"userId"`
	Submission     model.Submission   `json:"submission"`
}

func (s *ChallengeService) PendingSubmissions(ctx context.Context) ([]PendingReview, error) {
	challenges, err := s.Challenges.FindWithPendingSubmissions(ctx)
	if err != nil {
		return nil, err
	}

	var queue []PendingReview
	for _, ch := range challenges {
		for _, p := range ch.Participants {
			for _, sub := range p.Submissions {
				if sub.Status == model.SubmissionPending {
					queue = append(queue, PendingReview{
						ChallengeID:    ch.ID,
						ChallengeTitle: ch.Title,
						ParticipantID:  p.ID,
						UserID:         p.User,
						Submission:     sub,
					})
				}
			}
		}
	}
	return queue, nil
}

type ChallengeStats struct {
	Participants     int     `json:"participants"`
	Completed        int     `json:"completed"`
	PendingReviews   int     `json:"pendingReviews"`
	CompletionRate   float64 `json:"completionRate"`
	TotalSubmissions int     `json:"totalSubmissions"`
}

func (s *ChallengeService) Stats(ctx context.Context, challengeID primitive.ObjectID) (*ChallengeStats, error) {
	ch, err := s.Challenges.FindByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	stats := &ChallengeStats{Participants: len(ch.Participants)}
	for _, p := range ch.Participants {
		if p.Completed {
			stats.Completed++
		}
		stats.TotalSubmissions += len(p.Submissions)
		for _, sub := range p.Submissions {
			if sub.Status == model.SubmissionPending {
				stats.PendingReviews++
			}
		}
	}
	if stats.Participants > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(stats.Participants) * 100
	}
	return stats, nil
}
