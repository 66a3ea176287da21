package service

import (
	"context"
	"time"

	"github.com/Chirandip-dev07/ujjivana/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store interfaces consumed by the services. The concrete implementations
// live in internal/repository; tests substitute in-memory fakes.

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Save(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ExistsByRole(ctx context.Context, role model.UserRole) (bool, error)
	List(ctx context.Context, filter bson.M, page, limit int) ([]model.User, int64, error)
	TopByPoints(ctx context.Context, field, school string, limit int) ([]model.User, error)
}

type ModuleStore interface {
	Create(ctx context.Context, m *model.Module) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Module, error)
	FindActive(ctx context.Context, category string) ([]model.Module, error)
	Save(ctx context.Context, m *model.Module) error
	Deactivate(ctx context.Context, id primitive.ObjectID) error
}

type ProgressStore interface {
	Create(ctx context.Context, p *model.UserProgress) error
	FindByUserAndModule(ctx context.Context, userID, moduleID primitive.ObjectID) (*model.UserProgress, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]model.UserProgress, error)
	Save(ctx context.Context, p *model.UserProgress) error
}

type QuizStore interface {
	Create(ctx context.Context, q *model.Quiz) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Quiz, error)
	FindActive(ctx context.Context, moduleID *primitive.ObjectID) ([]model.Quiz, error)
	FindDaily(ctx context.Context, date, school string) (*model.Quiz, error)
	FindAnyActiveDaily(ctx context.Context, school string) (*model.Quiz, error)
	Save(ctx context.Context, q *model.Quiz) error
	Deactivate(ctx context.Context, id primitive.ObjectID) error
}

type AttemptStore interface {
	Create(ctx context.Context, a *model.QuizAttempt) error
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]model.QuizAttempt, error)
	FindByQuiz(ctx context.Context, quizID primitive.ObjectID) ([]model.QuizAttempt, error)
}

type ChallengeStore interface {
	Create(ctx context.Context, ch *model.Challenge) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Challenge, error)
	FindActive(ctx context.Context, category string) ([]model.Challenge, error)
	FindJoinedBy(ctx context.Context, userID primitive.ObjectID) ([]model.Challenge, error)
	FindWithPendingSubmissions(ctx context.Context) ([]model.Challenge, error)
	Save(ctx context.Context, ch *model.Challenge) error
	Deactivate(ctx context.Context, id primitive.ObjectID) error
}

type RewardStore interface {
	Create(ctx context.Context, rw *model.Reward) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Reward, error)
	FindActive(ctx context.Context, category string) ([]model.Reward, error)
	Save(ctx context.Context, rw *model.Reward) error
	DecrementStock(ctx context.Context, id primitive.ObjectID) error
	Deactivate(ctx context.Context, id primitive.ObjectID) error
}

type RedemptionStore interface {
	Create(ctx context.Context, rd *model.Redemption) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Redemption, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Redemption, error)
	List(ctx context.Context, status model.RedemptionStatus, page, limit int) ([]model.Redemption, int64, error)
	Save(ctx context.Context, rd *model.Redemption) error
}

type SurveyStore interface {
	Create(ctx context.Context, s *model.Survey) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Survey, error)
	FindActive(ctx context.Context) ([]model.Survey, error)
	Save(ctx context.Context, s *model.Survey) error
	Deactivate(ctx context.Context, id primitive.ObjectID) error
}

type EventStore interface {
	Create(ctx context.Context, e *model.Event) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Event, error)
	FindUpcoming(ctx context.Context, now time.Time) ([]model.Event, error)
	FindAll(ctx context.Context) ([]model.Event, error)
	Save(ctx context.Context, e *model.Event) error
	Deactivate(ctx context.Context, id primitive.ObjectID) error
}

type PinStore interface {
	Create(ctx context.Context, p *model.EcoPin) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.EcoPin, error)
	FindActive(ctx context.Context, filter model.PinFilter) ([]model.EcoPin, error)
	Save(ctx context.Context, p *model.EcoPin) error
	Deactivate(ctx context.Context, id primitive.ObjectID) error
}

type PinRequestStore interface {
	Create(ctx context.Context, req *model.PinRequest) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.PinRequest, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]model.PinRequest, error)
	List(ctx context.Context, status model.PinRequestStatus) ([]model.PinRequest, error)
	Save(ctx context.Context, req *model.PinRequest) error
}

type CodeStore interface {
	Set(ctx context.Context, email, code string) error
	Verify(ctx context.Context, email, code string) error
}
