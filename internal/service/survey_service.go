package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Chirandip-dev07/ujjivana/internal/model"
	"github.com/Chirandip-dev07/ujjivana/internal/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SurveyService struct {
	Surveys SurveyStore
	Points  *PointsService
}

func NewSurveyService(surveys SurveyStore, points *PointsService) *SurveyService {
	return &SurveyService{Surveys: surveys, Points: points}
}

func (s *SurveyService) List(ctx context.Context) ([]model.Survey, error) {
	return s.Surveys.FindActive(ctx)
}

func (s *SurveyService) Get(ctx context.Context, id primitive.ObjectID) (*model.Survey, error) {
	return s.Surveys.FindByID(ctx, id)
}

func (s *SurveyService) Create(ctx context.Context, survey *model.Survey, createdBy primitive.ObjectID) error {
	if survey.Title == "" {
		return fmt.Errorf("%w: title is required", util.ErrValidation)
	}

	survey.IsActive = true
	survey.CreatedBy = createdBy
	survey.CreatedAt = time.Now()
	return s.Surveys.Create(ctx, survey)
}

func (s *SurveyService) Update(ctx context.Context, survey *model.Survey) error {
	survey.UpdatedAt = time.Now()
	return s.Surveys.Save(ctx, survey)
}

func (s *SurveyService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.Surveys.Deactivate(ctx, id)
}

type SurveyCompletion struct {
	PointsEarned     int  `json:"pointsEarned"`
	AlreadyCompleted bool `json:"alreadyCompleted"`
}

// Complete awards the survey's points once per user. Repeats succeed but earn
// nothing.
func (s *SurveyService) Complete(ctx context.Context, userID, surveyID primitive.ObjectID) (*SurveyCompletion, error) {
	survey, err := s.Surveys.FindByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	user, err := s.Points.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.HasCompletedSurvey(surveyID) {
		return &SurveyCompletion{PointsEarned: 0, AlreadyCompleted: true}, nil
	}

	user, err = s.Points.Apply(ctx, userID, survey.Points, model.PointsSurveyCompleted,
		fmt.Sprintf("Completed survey: %s", survey.Title), survey.ID)
	if err != nil {
		return nil, err
	}

	user.CompletedSurveys = append(user.CompletedSurveys, surveyID)
	if err := s.Points.Users.Save(ctx, user); err != nil {
		return nil, err
	}

	return &SurveyCompletion{PointsEarned: survey.Points, AlreadyCompleted: false}, nil
}
