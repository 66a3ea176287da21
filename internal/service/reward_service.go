package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Chirandip-dev07/ujjivana/internal/model"
	"github.com/Chirandip-dev07/ujjivana/internal/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RewardService struct {
	Rewards     RewardStore
	Redemptions RedemptionStore
	Users       UserStore

	Now func() time.Time
}

func NewRewardService(rewards RewardStore, redemptions RedemptionStore, users UserStore) *RewardService {
	return &RewardService{Rewards: rewards, Redemptions: redemptions, Users: users, Now: time.Now}
}

func (s *RewardService) List(ctx context.Context, category string) ([]model.Reward, error) {
	return s.Rewards.FindActive(ctx, category)
}

func (s *RewardService) Get(ctx context.Context, id primitive.ObjectID) (*model.Reward, error) {
	return s.Rewards.FindByID(ctx, id)
}

func (s *RewardService) Create(ctx context.Context, rw *model.Reward, createdBy primitive.ObjectID) error {
	if rw.Name == "" || rw.PointsRequired <= 0 {
		return fmt.Errorf("%w: name and a positive point price are required", util.ErrValidation)
	}
	if rw.Type != model.RewardProduct && rw.Type != model.RewardCoupon {
		return fmt.Errorf("%w: type must be product or coupon", util.ErrValidation)
	}

	rw.GenerateCodes()
	rw.IsActive = true
	rw.IsLimited = rw.Stock != nil
	rw.CreatedBy = createdBy
	rw.CreatedAt = s.Now()
	return s.Rewards.Create(ctx, rw)
}

func (s *RewardService) Update(ctx context.Context, rw *model.Reward, updatedBy primitive.ObjectID) error {
	existing, err := s.Rewards.FindByID(ctx, rw.ID)
	if err != nil {
		return err
	}

	rw.ProductID = existing.ProductID
	rw.CouponCode = existing.CouponCode
	rw.CreatedBy = existing.CreatedBy
	rw.CreatedAt = existing.CreatedAt
	rw.IsLimited = rw.Stock != nil
	rw.UpdatedBy = updatedBy
	rw.UpdatedAt = s.Now()
	return s.Rewards.Save(ctx, rw)
}

func (s *RewardService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.Rewards.Deactivate(ctx, id)
}

// Redeem exchanges points for a reward. The deduction is applied directly to
// the balance counters, outside the points history; the steps are sequential
// with no compensation on a partial failure.
func (s *RewardService) Redeem(ctx context.Context, userID, rewardID primitive.ObjectID) (*model.Redemption, error) {
	reward, err := s.Rewards.FindByID(ctx, rewardID)
	if err != nil {
		return nil, err
	}
	if !reward.IsActive {
		return nil, util.ErrRewardInactive
	}

	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Points < reward.PointsRequired {
		return nil, fmt.Errorf("%w: need %d points, have %d",
			util.ErrInsufficientPoints, reward.PointsRequired, user.Points)
	}
	if !reward.InStock() {
		return nil, util.ErrRewardOutOfStock
	}

	user.Points -= reward.PointsRequired
	if err := s.Users.Save(ctx, user); err != nil {
		return nil, err
	}

	if reward.Stock != nil {
		if err := s.Rewards.DecrementStock(ctx, rewardID); err != nil {
			return nil, err
		}
	}

	redemption := &model.Redemption{
		User:        userID,
		Reward:      rewardID,
		RewardName:  reward.Name,
		PointsSpent: reward.PointsRequired,
		Status:      model.RedemptionPending,
		RedeemedAt:  s.Now(),
	}
	if err := s.Redemptions.Create(ctx, redemption); err != nil {
		return nil, err
	}
	return redemption, nil
}

func (s *RewardService) History(ctx context.Context, userID primitive.ObjectID) ([]model.Redemption, error) {
	return s.Redemptions.FindByUser(ctx, userID)
}

func (s *RewardService) AllRedemptions(ctx context.Context, status model.RedemptionStatus, page, limit int) ([]model.Redemption, int64, error) {
	return s.Redemptions.List(ctx, status, page, limit)
}

// UpdateRedemptionStatus moves a redemption through its lifecycle. The first
// transition to completed stamps completedAt; cancellation does not refund.
func (s *RewardService) UpdateRedemptionStatus(ctx context.Context, id primitive.ObjectID, status model.RedemptionStatus) (*model.Redemption, error) {
	switch status {
	case model.RedemptionPending, model.RedemptionCompleted, model.RedemptionCancelled:
	default:
		return nil, fmt.Errorf("%w: unknown redemption status %q", util.ErrValidation, status)
	}

	redemption, err := s.Redemptions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	redemption.Status = status
	if status == model.RedemptionCompleted && redemption.CompletedAt == nil {
		now := s.Now()
		redemption.CompletedAt = &now
	}
	if err := s.Redemptions.Save(ctx, redemption); err != nil {
		return nil, err
	}
	return redemption, nil
}
