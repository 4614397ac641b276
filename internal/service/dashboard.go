package service

import (
	"context"

	"gorm.io/gorm"

	"gamearena/backend/internal/models"
)

// DashboardActivityLimit caps the activity feed returned on the dashboard.
const DashboardActivityLimit = 20

// Dashboard is the read-only projection of one user's platform state.
type Dashboard struct {
	User             models.User
	Participations   []models.TournamentParticipant
	Rewards          []models.UserReward
	Activities       []models.UserActivity
	TotalTournaments int64
	TotalRewards     int64
}

// DashboardService aggregates dashboard data. It never mutates anything.
type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// Data assembles the dashboard for the user: profile, memberships, claims,
// the most recent activity entries newest-first, and summary counts.
func (s *DashboardService) Data(ctx context.Context, userID uint) (*Dashboard, error) {
	db := s.db.WithContext(ctx)

	var dashboard Dashboard
	if err := db.Preload("Profile").First(&dashboard.User, userID).Error; err != nil {
		return nil, err
	}

	if err := db.Preload("Tournament").
		Where("user_id = ?", userID).
		Order("joined_at DESC").
		Find(&dashboard.Participations).Error; err != nil {
		return nil, err
	}

	if err := db.Preload("Reward").
		Where("user_id = ?", userID).
		Order("claimed_at DESC").
		Find(&dashboard.Rewards).Error; err != nil {
		return nil, err
	}

	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(DashboardActivityLimit).
		Find(&dashboard.Activities).Error; err != nil {
		return nil, err
	}

	dashboard.TotalTournaments = int64(len(dashboard.Participations))
	dashboard.TotalRewards = int64(len(dashboard.Rewards))

	return &dashboard, nil
}
