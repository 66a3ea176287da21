package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Chirandip-dev07/ujjivana/internal/model"
	"github.com/Chirandip-dev07/ujjivana/internal/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DailyQuestionPoints is the flat award for a correct daily answer.
const DailyQuestionPoints = 5

type QuizService struct {
	Quizzes  QuizStore
	Attempts AttemptStore
	Progress ProgressStore
	Points   *PointsService

	Now func() time.Time
}

func NewQuizService(quizzes QuizStore, attempts AttemptStore, progress ProgressStore, points *PointsService) *QuizService {
	return &QuizService{
		Quizzes:  quizzes,
		Attempts: attempts,
		Progress: progress,
		Points:   points,
		Now:      time.Now,
	}
}

type SubmitResult struct {
	Score          int                  `json:"score"`
	TotalPoints    int                  `json:"totalPoints"`
	Percentage     int                  `json:"percentage"`
	Answers        []model.AnswerResult `json:"answers"`
	PointsAwarded  int                  `json:"pointsAwarded"`
	IsFirstAttempt bool                 `json:"isFirstAttempt"`
}

// Submit scores a quiz submission. Only the first attempt ever awards points;
// later attempts are scored and recorded but earn nothing. Attempts that score
// zero are not persisted.
func (s *QuizService) Submit(ctx context.Context, userID, quizID primitive.ObjectID, answers []int) (*SubmitResult, error) {
	quiz, err := s.Quizzes.FindByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if !quiz.IsActive {
		return nil, util.ErrNotFound
	}

	user, err := s.Points.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if quiz.RequiresModuleCompletion && !quiz.Module.IsZero() {
		progress, err := s.Progress.FindByUserAndModule(ctx, userID, quiz.Module)
		if err != nil && !errors.Is(err, util.ErrNotFound) {
			return nil, err
		}
		if progress == nil || !progress.IsCompleted {
			return nil, fmt.Errorf("%w: complete the module before taking its quiz", util.ErrModuleNotCompleted)
		}
	}

	// First-attempt status is decided up front, before any state changes.
	_, hasPriorAttempt := user.QuizAttempts[quizID.Hex()]

	score := 0
	results := make([]model.AnswerResult, 0, len(quiz.Questions))
	for i, question := range quiz.Questions {
		answerIndex := -1
		if i < len(answers) {
			answerIndex = answers[i]
		}
		correct := answerIndex == question.CorrectAnswer
		points := 0
		if correct {
			points = question.Points
			score += points
		}
		results = append(results, model.AnswerResult{
			QuestionIndex: i,
			AnswerIndex:   answerIndex,
			IsCorrect:     correct,
			Points:        points,
		})
	}

	percentage := 0.0
	if quiz.TotalPoints > 0 {
		percentage = float64(score) / float64(quiz.TotalPoints) * 100
	}

	if score > 0 {
		attempt := &model.QuizAttempt{
			User:           userID,
			Quiz:           quizID,
			Score:          score,
			TotalPoints:    quiz.TotalPoints,
			Answers:        results,
			Percentage:     percentage,
			IsFirstAttempt: !hasPriorAttempt,
			SubmittedAt:    s.Now(),
		}
		if err := s.Attempts.Create(ctx, attempt); err != nil {
			return nil, err
		}
	}

	pointsAwarded := 0
	if !hasPriorAttempt && score > 0 {
		pointsAwarded = score
		user, err = s.Points.Apply(ctx, userID, score, model.PointsQuizCompleted,
			fmt.Sprintf("Completed quiz: %s", quiz.Title), quiz.ID)
		if err != nil {
			return nil, err
		}
	}

	if score > 0 {
		user.RecordQuizScore(quizID, score)
		if err := s.Points.Users.Save(ctx, user); err != nil {
			return nil, err
		}
	}

	return &SubmitResult{
		Score:          score,
		TotalPoints:    quiz.TotalPoints,
		Percentage:     int(math.Round(percentage)),
		Answers:        results,
		PointsAwarded:  pointsAwarded,
		IsFirstAttempt: !hasPriorAttempt,
	}, nil
}

// DailyQuestion returns today's daily quiz, promoting an active daily quiz to
// today's date when none is assigned yet.
func (s *QuizService) DailyQuestion(ctx context.Context, school string) (*model.Quiz, error) {
	today := s.Now().Format("2006-01-02")

	quiz, err := s.Quizzes.FindDaily(ctx, today, school)
	if errors.Is(err, util.ErrNotFound) {
		quiz, err = s.Quizzes.FindAnyActiveDaily(ctx, school)
		if err != nil {
			return nil, err
		}
		quiz.DailyDate = today
		if err := s.Quizzes.Save(ctx, quiz); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	return quiz, nil
}

type DailyAnswerResult struct {
	Correct       bool `json:"correct"`
	PointsAwarded int  `json:"pointsAwarded"`
	Streak        int  `json:"streak"`
}

// AnswerDaily handles the once-per-day question: a correct answer is worth a
// flat award and extends the streak, a wrong one resets it. Either way the
// day is consumed.
func (s *QuizService) AnswerDaily(ctx context.Context, userID primitive.ObjectID, school string, answerIndex int) (*DailyAnswerResult, error) {
	user, err := s.Points.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	if sameDay(user.LastDailyAnswer, now) {
		return nil, util.ErrDailyAlreadyAnswered
	}

	quiz, err := s.DailyQuestion(ctx, school)
	if err != nil {
		return nil, err
	}
	if len(quiz.Questions) == 0 {
		return nil, fmt.Errorf("%w: daily quiz has no question", util.ErrValidation)
	}

	correct := answerIndex == quiz.Questions[0].CorrectAnswer
	if correct {
		user, err = s.Points.Apply(ctx, userID, DailyQuestionPoints, model.PointsDailyQuestion,
			"Daily question answered correctly", quiz.ID)
		if err != nil {
			return nil, err
		}
		user.Streak++
	} else {
		user.Streak = 0
	}
	user.LastDailyAnswer = now
	if err := s.Points.Users.Save(ctx, user); err != nil {
		return nil, err
	}

	points := 0
	if correct {
		points = DailyQuestionPoints
	}
	return &DailyAnswerResult{Correct: correct, PointsAwarded: points, Streak: user.Streak}, nil
}

func (s *QuizService) List(ctx context.Context, moduleID *primitive.ObjectID) ([]model.Quiz, error) {
	return s.Quizzes.FindActive(ctx, moduleID)
}

func (s *QuizService) Get(ctx context.Context, id primitive.ObjectID) (*model.Quiz, error) {
	return s.Quizzes.FindByID(ctx, id)
}

func (s *QuizService) Create(ctx context.Context, quiz *model.Quiz, createdBy primitive.ObjectID) error {
	if quiz.Title == "" || len(quiz.Questions) == 0 {
		return fmt.Errorf("%w: title and at least one question are required", util.ErrValidation)
	}
	for i, q := range quiz.Questions {
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return fmt.Errorf("%w: question %d has an out-of-range correct answer", util.ErrValidation, i)
		}
	}

	quiz.Normalize()
	quiz.IsActive = true
	quiz.CreatedBy = createdBy
	quiz.CreatedAt = s.Now()
	return s.Quizzes.Create(ctx, quiz)
}

func (s *QuizService) Update(ctx context.Context, quiz *model.Quiz) error {
	quiz.Normalize()
	return s.Quizzes.Save(ctx, quiz)
}

func (s *QuizService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.Quizzes.Deactivate(ctx, id)
}

// MarkAsDaily flags a quiz as the daily question for a given date.
func (s *QuizService) MarkAsDaily(ctx context.Context, id primitive.ObjectID, date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", util.ErrValidation)
	}

	quiz, err := s.Quizzes.FindByID(ctx, id)
	if err != nil {
		return err
	}
	quiz.IsDailyQuestion = true
	quiz.DailyDate = date
	return s.Quizzes.Save(ctx, quiz)
}

func (s *QuizService) AttemptsByUser(ctx context.Context, userID primitive.ObjectID) ([]model.QuizAttempt, error) {
	return s.Attempts.FindByUser(ctx, userID)
}

func (s *QuizService) AttemptsByQuiz(ctx context.Context, quizID primitive.ObjectID) ([]model.QuizAttempt, error) {
	return s.Attempts.FindByQuiz(ctx, quizID)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
