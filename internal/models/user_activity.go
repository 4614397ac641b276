package models

import "time"

// ActivityType classifies a point-affecting (or point-neutral) event.
type ActivityType string

const (
	ActivityLogin           ActivityType = "login"
	ActivityTournamentJoin  ActivityType = "tournament_join"
	ActivityTournamentLeave ActivityType = "tournament_leave"
	ActivityRewardClaim     ActivityType = "reward_claim"
	ActivityPointsEarned    ActivityType = "points_earned"
)

// UserActivity is one row of the append-only points ledger. Rows are
// immutable once written; nothing updates or deletes them, which is why the
// model carries only a creation timestamp.
type UserActivity struct {
	ID           uint         `gorm:"primaryKey"`
	UserID       uint         `gorm:"not null;index"`
	ActivityType ActivityType `gorm:"size:50;not null;index"`
	Description  string       `gorm:"not null"`
	PointsChange int          `gorm:"not null;default:0"`
	TournamentID *uint        `gorm:"index"`
	RewardID     *uint        `gorm:"index"`
	CreatedAt    time.Time

	User       User        `gorm:"foreignKey:UserID"`
	Tournament *Tournament `gorm:"foreignKey:TournamentID"`
	Reward     *Reward     `gorm:"foreignKey:RewardID"`
}
