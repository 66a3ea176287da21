package service

import (
	"context"
	"time"

	"github.com/Chirandip-dev07/ujjivana/internal/model"
	"github.com/Chirandip-dev07/ujjivana/pkg/logger"
	"github.com/Chirandip-dev07/ujjivana/pkg/monitoring"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// PointsService is the single write path for the points ledger. Every point
// movement in the system goes through Apply so the counters and the history
// stay in step.
type PointsService struct {
	Users UserStore

	// Now is replaceable in tests to exercise the rollover windows.
	Now func() time.Time
}

func NewPointsService(users UserStore) *PointsService {
	return &PointsService{Users: users, Now: time.Now}
}

// Apply credits or debits a user. Weekly and monthly counters are rolled over
// first, then the delta lands on all three counters and one history entry is
// appended. The whole document is persisted in one write.
func (s *PointsService) Apply(ctx context.Context, userID primitive.ObjectID, delta int, ptype model.PointsType, description string, relatedID primitive.ObjectID) (*model.User, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	s.rollover(user, now)

	user.Points += delta
	user.MonthlyPoints += delta
	user.WeeklyPoints += delta
	user.PointsHistory = append(user.PointsHistory, model.PointsEntry{
		Points:      delta,
		Type:        ptype,
		Description: description,
		RelatedID:   relatedID,
		EarnedAt:    now,
	})

	if err := s.Users.Save(ctx, user); err != nil {
		return nil, err
	}

	if delta > 0 {
		monitoring.PointsAwarded.WithLabelValues(string(ptype)).Add(float64(delta))
	}
	if logger.Log != nil {
		logger.Log.Debug("points applied",
			zap.String("user", userID.Hex()),
			zap.Int("delta", delta),
			zap.String("type", string(ptype)))
	}
	return user, nil
}

// rollover zeroes the weekly counter after seven full days and the monthly
// counter once the calendar month has advanced. Points earned since the last
// reset are dropped from the window, not carried over.
func (s *PointsService) rollover(user *model.User, now time.Time) {
	if now.Sub(user.LastWeeklyReset) >= 7*24*time.Hour {
		user.WeeklyPoints = 0
		user.LastWeeklyReset = now
	}

	last := user.LastMonthlyReset
	if (now.Year()*12+int(now.Month()))-(last.Year()*12+int(last.Month())) >= 1 {
		user.MonthlyPoints = 0
		user.LastMonthlyReset = now
	}
}
