package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"gamearena/backend/internal/ledger"
	"gamearena/backend/internal/metrics"
	"gamearena/backend/internal/models"
)

// RewardService runs the point-for-reward redemption workflow.
type RewardService struct {
	db      *gorm.DB
	ledger  *ledger.Ledger
	metrics *metrics.Metrics
}

func NewRewardService(db *gorm.DB, l *ledger.Ledger, m *metrics.Metrics) *RewardService {
	return &RewardService{db: db, ledger: l, metrics: m}
}

// Claim exchanges points for the reward. Preconditions are checked in a
// fixed order (exists, active, in stock, affordable) so the caller sees a
// specific failure. On success the claim record, the ledger debit and the
// stock decrement commit as one transaction; stock can never go negative
// because the decrement only matches rows with stock remaining.
func (s *RewardService) Claim(ctx context.Context, userID, rewardID uint) (int, error) {
	balance, err := s.claim(ctx, userID, rewardID)
	if s.metrics != nil {
		result := "success"
		if err != nil {
			result = "rejected"
		}
		s.metrics.RewardClaims.WithLabelValues(result).Inc()
	}
	return balance, err
}

func (s *RewardService) claim(ctx context.Context, userID, rewardID uint) (int, error) {
	var reward models.Reward
	if err := s.db.WithContext(ctx).First(&reward, rewardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrRewardNotFound
		}
		return 0, err
	}

	if !reward.IsActive {
		return 0, ErrRewardInactive
	}
	if reward.Stock <= 0 {
		return 0, ErrOutOfStock
	}

	var profile models.Profile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return 0, err
	}
	if profile.Points < reward.Points {
		return 0, ErrInsufficientPoints
	}

	var balance int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		claim := models.UserReward{
			UserID:   userID,
			RewardID: reward.ID,
			Status:   "granted",
		}
		if err := tx.Create(&claim).Error; err != nil {
			return err
		}

		rewardID := reward.ID
		newBalance, err := s.ledger.ApplyChecked(tx, ledger.Entry{
			UserID:      userID,
			Delta:       -reward.Points,
			Type:        models.ActivityRewardClaim,
			Description: fmt.Sprintf("Claimed reward: %s", reward.Title),
			RewardID:    &rewardID,
		})
		if err != nil {
			return err
		}

		// Guarded decrement: no row matches once stock hits zero, so a
		// concurrent claim that won the race rolls this one back.
		res := tx.Model(&models.Reward{}).
			Where("id = ? AND stock > 0", reward.ID).
			Update("stock", gorm.Expr("stock - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOutOfStock
		}

		balance = newBalance
		return nil
	})
	return balance, err
}

// Claims lists the rewards the user has redeemed.
func (s *RewardService) Claims(ctx context.Context, userID uint) ([]models.UserReward, error) {
	var claims []models.UserReward
	err := s.db.WithContext(ctx).Preload("Reward").
		Where("user_id = ?", userID).
		Order("claimed_at DESC").
		Find(&claims).Error
	return claims, err
}
