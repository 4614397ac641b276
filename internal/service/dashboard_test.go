package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"gamearena/backend/internal/ledger"
	"gamearena/backend/internal/metrics"
	"gamearena/backend/internal/models"
	"gamearena/backend/internal/service"
	"gamearena/backend/internal/testutil"
)

func TestDashboardAggregates(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.SeedUser(t, db, "alice", 500)

	l := ledger.New(metrics.New(prometheus.NewRegistry()))
	tournaments := service.NewTournamentService(db, l)
	rewards := service.NewRewardService(db, l, metrics.New(prometheus.NewRegistry()))

	first := seedTournament(t, db, "Spring Showdown", user.ID)
	second := seedTournament(t, db, "Summer Clash", user.ID)
	prize := seedReward(t, db, "Gaming Mouse", 300, 5, true)

	_, err := tournaments.Join(context.Background(), user.ID, first.ID)
	require.NoError(t, err)
	_, err = tournaments.Join(context.Background(), user.ID, second.ID)
	require.NoError(t, err)
	_, err = rewards.Claim(context.Background(), user.ID, prize.ID)
	require.NoError(t, err)

	svc := service.NewDashboardService(db)
	dashboard, err := svc.Data(context.Background(), user.ID)
	require.NoError(t, err)

	require.Equal(t, user.ID, dashboard.User.ID)
	// 500 + 10 + 10 - 300
	require.Equal(t, 220, dashboard.User.Profile.Points)

	require.Equal(t, int64(2), dashboard.TotalTournaments)
	require.Len(t, dashboard.Participations, 2)
	for _, p := range dashboard.Participations {
		require.NotZero(t, p.Tournament.ID)
	}

	require.Equal(t, int64(1), dashboard.TotalRewards)
	require.Len(t, dashboard.Rewards, 1)
	require.Equal(t, prize.ID, dashboard.Rewards[0].Reward.ID)

	require.Len(t, dashboard.Activities, 3)
}

func TestDashboardActivityFeedIsCappedNewestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.SeedUser(t, db, "alice", 0)

	for i := 0; i < service.DashboardActivityLimit+5; i++ {
		activity := models.UserActivity{
			UserID:       user.ID,
			ActivityType: models.ActivityPointsEarned,
			Description:  fmt.Sprintf("Submitted game: Build %d", i),
			PointsChange: service.GameSubmissionPoints,
		}
		require.NoError(t, db.Create(&activity).Error)
	}

	svc := service.NewDashboardService(db)
	dashboard, err := svc.Data(context.Background(), user.ID)
	require.NoError(t, err)

	require.Len(t, dashboard.Activities, service.DashboardActivityLimit)
	for i := 1; i < len(dashboard.Activities); i++ {
		require.Greater(t, dashboard.Activities[i-1].ID, dashboard.Activities[i].ID)
	}
}

func TestDashboardUnknownUser(t *testing.T) {
	db := testutil.NewTestDB(t)

	svc := service.NewDashboardService(db)
	_, err := svc.Data(context.Background(), 999)
	require.Error(t, err)
}
