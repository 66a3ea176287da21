package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/Chirandip-dev07/ujjivana/internal/config"
	"github.com/Chirandip-dev07/ujjivana/internal/model"
	"github.com/Chirandip-dev07/ujjivana/internal/util"
	"github.com/Chirandip-dev07/ujjivana/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	Users UserStore
	Codes CodeStore
	JWT   config.JWTConfig
}

func NewAuthService(users UserStore, codes CodeStore, jwtCfg config.JWTConfig) *AuthService {
	return &AuthService{Users: users, Codes: codes, JWT: jwtCfg}
}

type RegisterInput struct {
	Name       string         `json:"name" binding:"required"`
	Email      string         `json:"email" binding:"required,email"`
	Password   string         `json:"password" binding:"required,min=6"`
	Phone      string         `json:"phone"`
	School     string         `json:"school" binding:"required"`
	RollNumber string         `json:"rollNumber"`
	Role       model.UserRole `json:"role"`
}

// Register creates an account. Self-registration is limited to the student and
// teacher roles; admins are provisioned out of band.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, string, error) {
	role := in.Role
	if role == "" {
		role = model.Student
	}
	if role != model.Student && role != model.Teacher {
		return nil, "", fmt.Errorf("%w: role must be student or teacher", util.ErrValidation)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	user := &model.User{
		Name:             in.Name,
		Email:            strings.ToLower(strings.TrimSpace(in.Email)),
		Password:         string(hashed),
		Phone:            in.Phone,
		School:           in.School,
		RollNumber:       in.RollNumber,
		Role:             role,
		Badges:           []model.Badge{},
		PointsHistory:    []model.PointsEntry{},
		LastWeeklyReset:  now,
		LastMonthlyReset: now,
		CreatedAt:        now,
	}

	if err := s.Users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := util.GenerateJWT(user, s.JWT.Secret, s.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.Users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", util.ErrInvalidCredentials
	}

	user.LastLogin = time.Now()
	if err := s.Users.Save(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := util.GenerateJWT(user, s.JWT.Secret, s.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// RequestOTP issues a six digit code valid for ten minutes. Mail transport is
// not wired; the code is surfaced in the server log for now.
func (s *AuthService) RequestOTP(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.Users.FindByEmail(ctx, email); err != nil {
		return err
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}
	if err := s.Codes.Set(ctx, email, code); err != nil {
		return err
	}

	// Debug so live reset codes stay out of production logs.
	if logger.Log != nil {
		logger.Log.Debug("verification code issued",
			zap.String("email", email),
			zap.String("code", code))
	}
	return nil
}

// VerifyOTP consumes the code and marks the account's email verified.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.Codes.Verify(ctx, email, code); err != nil {
		return err
	}

	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	user.EmailVerified = true
	return s.Users.Save(ctx, user)
}

// ResetPassword sets a new password after a valid OTP.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.Codes.Verify(ctx, email, code); err != nil {
		return err
	}

	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return s.Users.Save(ctx, user)
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
