package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Chirandip-dev07/ujjivana/internal/config"
	"github.com/Chirandip-dev07/ujjivana/internal/model"
	"github.com/Chirandip-dev07/ujjivana/internal/util"
	"github.com/Chirandip-dev07/ujjivana/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	Users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{Users: users}
}

func (s *UserService) Get(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	return s.Users.FindByID(ctx, id)
}

type ProfileUpdate struct {
	Name      string   `json:"name"`
	Phone     string   `json:"phone"`
	School    string   `json:"school"`
	Bio       string   `json:"bio"`
	Location  string   `json:"location"`
	Interests []string `json:"interests"`
}

func (s *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, in ProfileUpdate) (*model.User, error) {
	user, err := s.Users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Phone != "" {
		user.Phone = in.Phone
	}
	if in.School != "" {
		user.School = in.School
	}
	user.Bio = in.Bio
	user.Location = in.Location
	if in.Interests != nil {
		user.Interests = in.Interests
	}

	if err := s.Users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) PointsHistory(ctx context.Context, id primitive.ObjectID) ([]model.PointsEntry, error) {
	user, err := s.Users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.PointsHistory, nil
}

func (s *UserService) List(ctx context.Context, role model.UserRole, school string, page, limit int) ([]model.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter := bson.M{}
	if role != "" {
		filter["role"] = role
	}
	if school != "" {
		filter["school"] = school
	}
	return s.Users.List(ctx, filter, page, limit)
}

// SetRole changes an account's role. Demoting the caller's own account is the
// controller's problem; the service only validates the target role.
func (s *UserService) SetRole(ctx context.Context, id primitive.ObjectID, role model.UserRole) (*model.User, error) {
	switch role {
	case model.Student, model.Teacher, model.Admin:
	default:
		return nil, fmt.Errorf("%w: unknown role %q", util.ErrValidation, role)
	}

	user, err := s.Users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.Users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.Users.Delete(ctx, id)
}

// EnsureAdmin provisions the bootstrap administrator once. The check is on
// the role, not the configured email, so re-running the flag after the
// original admin was renamed or replaced stays a no-op.
func (s *UserService) EnsureAdmin(ctx context.Context, cfg config.AdminConfig) error {
	exists, err := s.Users.ExistsByRole(ctx, model.Admin)
	if err != nil {
		return err
	}
	if exists {
		if logger.Log != nil {
			logger.Log.Info("admin account already provisioned")
		}
		return nil
	}

	if cfg.Email == "" || cfg.Password == "" {
		return fmt.Errorf("%w: admin email and password must be configured", util.ErrValidation)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	admin := &model.User{
		Name:             cfg.Name,
		Email:            strings.ToLower(strings.TrimSpace(cfg.Email)),
		Password:         string(hashed),
		School:           model.AdminSchool,
		Role:             model.Admin,
		EmailVerified:    true,
		Badges:           []model.Badge{},
		PointsHistory:    []model.PointsEntry{},
		LastWeeklyReset:  now,
		LastMonthlyReset: now,
		CreatedAt:        now,
	}

	err = s.Users.Create(ctx, admin)
	if errors.Is(err, util.ErrEmailRegistered) {
		// The configured email exists with a lesser role; leave it untouched.
		return fmt.Errorf("%w: configured admin email is already taken", util.ErrConflict)
	}
	if err != nil {
		return err
	}

	if logger.Log != nil {
		logger.Log.Info("admin account provisioned", zap.String("email", admin.Email))
	}
	return nil
}
