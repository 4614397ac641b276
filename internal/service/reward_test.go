package service_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gamearena/backend/internal/ledger"
	"gamearena/backend/internal/metrics"
	"gamearena/backend/internal/models"
	"gamearena/backend/internal/service"
	"gamearena/backend/internal/testutil"
)

func seedReward(t *testing.T, db *gorm.DB, title string, points, stock int, active bool) models.Reward {
	t.Helper()
	reward := models.Reward{
		Title:    title,
		Points:   points,
		Category: "Gaming Gear",
		Stock:    stock,
		IsActive: active,
	}
	require.NoError(t, db.Create(&reward).Error)
	return reward
}

func newRewardService(db *gorm.DB) *service.RewardService {
	m := metrics.New(prometheus.NewRegistry())
	return service.NewRewardService(db, ledger.New(m), m)
}

func TestClaimSucceeds(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.SeedUser(t, db, "alice", 500)
	reward := seedReward(t, db, "Gaming Mouse", 300, 1, true)

	svc := newRewardService(db)

	balance, err := svc.Claim(context.Background(), user.ID, reward.ID)
	require.NoError(t, err)
	require.Equal(t, 200, balance)

	var updated models.Reward
	require.NoError(t, db.First(&updated, reward.ID).Error)
	require.Equal(t, 0, updated.Stock)

	var claim models.UserReward
	require.NoError(t, db.Where("user_id = ? AND reward_id = ?", user.ID, reward.ID).First(&claim).Error)
	require.Equal(t, "granted", claim.Status)

	var activity models.UserActivity
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&activity).Error)
	require.Equal(t, models.ActivityRewardClaim, activity.ActivityType)
	require.Equal(t, -300, activity.PointsChange)
}

func TestClaimExhaustedStock(t *testing.T) {
	db := testutil.NewTestDB(t)
	first := testutil.SeedUser(t, db, "alice", 500)
	second := testutil.SeedUser(t, db, "bob", 500)
	reward := seedReward(t, db, "Gaming Mouse", 300, 1, true)

	svc := newRewardService(db)

	_, err := svc.Claim(context.Background(), first.ID, reward.ID)
	require.NoError(t, err)

	_, err = svc.Claim(context.Background(), second.ID, reward.ID)
	require.ErrorIs(t, err, service.ErrOutOfStock)

	// Stock never goes below zero.
	var updated models.Reward
	require.NoError(t, db.First(&updated, reward.ID).Error)
	require.Equal(t, 0, updated.Stock)
}

func TestClaimInsufficientPoints(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.SeedUser(t, db, "alice", 150)
	reward := seedReward(t, db, "Gaming Headset", 300, 10, true)

	svc := newRewardService(db)

	_, err := svc.Claim(context.Background(), user.ID, reward.ID)
	require.ErrorIs(t, err, service.ErrInsufficientPoints)

	requireClaimUnchanged(t, db, user.ID, reward.ID, 150, 10)
}

func TestClaimInactiveReward(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.SeedUser(t, db, "alice", 500)
	reward := seedReward(t, db, "Retired Headset", 300, 10, false)

	svc := newRewardService(db)

	_, err := svc.Claim(context.Background(), user.ID, reward.ID)
	require.ErrorIs(t, err, service.ErrRewardInactive)

	requireClaimUnchanged(t, db, user.ID, reward.ID, 500, 10)
}

func TestClaimUnknownReward(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.SeedUser(t, db, "alice", 500)

	svc := newRewardService(db)

	_, err := svc.Claim(context.Background(), user.ID, 999)
	require.ErrorIs(t, err, service.ErrRewardNotFound)
}

func TestClaimZeroStock(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.SeedUser(t, db, "alice", 500)
	reward := seedReward(t, db, "Sold Out Keyboard", 300, 0, true)

	svc := newRewardService(db)

	_, err := svc.Claim(context.Background(), user.ID, reward.ID)
	require.ErrorIs(t, err, service.ErrOutOfStock)
}

// requireClaimUnchanged asserts that a failed claim left balance, stock and
// claim records exactly as they were.
func requireClaimUnchanged(t *testing.T, db *gorm.DB, userID, rewardID uint, points, stock int) {
	t.Helper()

	var profile models.Profile
	require.NoError(t, db.Where("user_id = ?", userID).First(&profile).Error)
	require.Equal(t, points, profile.Points)

	var reward models.Reward
	require.NoError(t, db.First(&reward, rewardID).Error)
	require.Equal(t, stock, reward.Stock)

	var claims int64
	require.NoError(t, db.Model(&models.UserReward{}).Where("user_id = ?", userID).Count(&claims).Error)
	require.Zero(t, claims)

	var activities int64
	require.NoError(t, db.Model(&models.UserActivity{}).Where("user_id = ?", userID).Count(&activities).Error)
	require.Zero(t, activities)
}

func TestClaimsListsRedeemedRewards(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.SeedUser(t, db, "alice", 1000)
	first := seedReward(t, db, "Gaming Mouse", 300, 5, true)
	second := seedReward(t, db, "Steam Gift Card", 400, 5, true)

	svc := newRewardService(db)

	_, err := svc.Claim(context.Background(), user.ID, first.ID)
	require.NoError(t, err)
	_, err = svc.Claim(context.Background(), user.ID, second.ID)
	require.NoError(t, err)

	claims, err := svc.Claims(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, claims, 2)
	for _, claim := range claims {
		require.NotZero(t, claim.Reward.ID)
	}
}
