package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gamearena/backend/internal/ledger"
	"gamearena/backend/internal/models"
	"gamearena/backend/internal/service"
	"gamearena/backend/internal/testutil"
)

func seedTournament(t *testing.T, db *gorm.DB, title string, createdBy uint) models.Tournament {
	t.Helper()
	tournament := models.Tournament{
		Title:           title,
		Game:            "FIFA 24",
		Status:          models.TournamentUpcoming,
		StartDate:       time.Now().Add(7 * 24 * time.Hour),
		EndDate:         time.Now().Add(9 * 24 * time.Hour),
		PrizePool:       "$5,000",
		MaxParticipants: 64,
		CreatedByID:     createdBy,
	}
	require.NoError(t, db.Create(&tournament).Error)
	return tournament
}

func TestJoinAwardsPointsAndRecordsActivity(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.SeedUser(t, db, "alice", 150)
	host := testutil.SeedUser(t, db, "host", 300)
	tournament := seedTournament(t, db, "FIFA 24 Championship", host.ID)

	svc := service.NewTournamentService(db, ledger.New(nil))

	balance, err := svc.Join(context.Background(), user.ID, tournament.ID)
	require.NoError(t, err)
	require.Equal(t, 160, balance)

	var participant models.TournamentParticipant
	require.NoError(t, db.Where("user_id = ? AND tournament_id = ?", user.ID, tournament.ID).First(&participant).Error)

	var activity models.UserActivity
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&activity).Error)
	require.Equal(t, models.ActivityTournamentJoin, activity.ActivityType)
	require.Equal(t, 10, activity.PointsChange)
	require.NotNil(t, activity.TournamentID)
	require.Equal(t, tournament.ID, *activity.TournamentID)
}

func TestJoinTwiceFails(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.SeedUser(t, db, "alice", 150)
	tournament := seedTournament(t, db, "FIFA 24 Championship", user.ID)

	svc := service.NewTournamentService(db, ledger.New(nil))

	_, err := svc.Join(context.Background(), user.ID, tournament.ID)
	require.NoError(t, err)

	_, err = svc.Join(context.Background(), user.ID, tournament.ID)
	require.ErrorIs(t, err, service.ErrAlreadyJoined)

	// The failed join moved no points.
	var profile models.Profile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	require.Equal(t, 160, profile.Points)
}

func TestJoinUnknownTournament(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.SeedUser(t, db, "alice", 150)

	svc := service.NewTournamentService(db, ledger.New(nil))

	_, err := svc.Join(context.Background(), user.ID, 999)
	require.ErrorIs(t, err, service.ErrTournamentNotFound)
}

func TestLeaveDeductsPointsAndAllowsRejoin(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.SeedUser(t, db, "alice", 150)
	tournament := seedTournament(t, db, "FIFA 24 Championship", user.ID)

	svc := service.NewTournamentService(db, ledger.New(nil))

	_, err := svc.Join(context.Background(), user.ID, tournament.ID)
	require.NoError(t, err)

	balance, err := svc.Leave(context.Background(), user.ID, tournament.ID)
	require.NoError(t, err)
	require.Equal(t, 150, balance)

	var count int64
	require.NoError(t, db.Model(&models.TournamentParticipant{}).
		Where("user_id = ? AND tournament_id = ?", user.ID, tournament.ID).
		Count(&count).Error)
	require.Zero(t, count)

	// Membership is gone, so joining again succeeds.
	balance, err = svc.Join(context.Background(), user.ID, tournament.ID)
	require.NoError(t, err)
	require.Equal(t, 160, balance)
}

func TestLeaveWithoutMembership(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.SeedUser(t, db, "alice", 150)
	tournament := seedTournament(t, db, "FIFA 24 Championship", user.ID)

	svc := service.NewTournamentService(db, ledger.New(nil))

	_, err := svc.Leave(context.Background(), user.ID, tournament.ID)
	require.ErrorIs(t, err, service.ErrNotEnrolled)
}

func TestLeaveMayGoNegative(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.SeedUser(t, db, "alice", 0)
	tournament := seedTournament(t, db, "FIFA 24 Championship", user.ID)

	svc := service.NewTournamentService(db, ledger.New(nil))

	_, err := svc.Join(context.Background(), user.ID, tournament.ID)
	require.NoError(t, err)

	// Drain the balance behind the membership's back.
	require.NoError(t, db.Model(&models.Profile{}).
		Where("user_id = ?", user.ID).
		Update("points", 3).Error)

	balance, err := svc.Leave(context.Background(), user.ID, tournament.ID)
	require.NoError(t, err)
	require.Equal(t, -7, balance)
}

func TestParticipationsListsMemberships(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.SeedUser(t, db, "alice", 150)
	first := seedTournament(t, db, "FIFA 24 Championship", user.ID)
	second := seedTournament(t, db, "Rocket League Pro Series", user.ID)

	svc := service.NewTournamentService(db, ledger.New(nil))

	_, err := svc.Join(context.Background(), user.ID, first.ID)
	require.NoError(t, err)
	_, err = svc.Join(context.Background(), user.ID, second.ID)
	require.NoError(t, err)

	participations, err := svc.Participations(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, participations, 2)
	for _, p := range participations {
		require.NotZero(t, p.Tournament.ID)
	}
}
