package models

import (
	"time"

	"gorm.io/gorm"
)

// TournamentStatus defines the lifecycle state of a tournament.
type TournamentStatus string

const (
	TournamentUpcoming  TournamentStatus = "upcoming"
	TournamentOngoing   TournamentStatus = "ongoing"
	TournamentCompleted TournamentStatus = "completed"
	TournamentCancelled TournamentStatus = "cancelled"
)

// Tournament represents a competitive event users can join.
type Tournament struct {
	gorm.Model
	Title           string           `gorm:"size:255;not null"`
	Game            string           `gorm:"size:255;not null"`
	Description     string
	Status          TournamentStatus `gorm:"size:50;not null;default:'upcoming';index"`
	StartDate       time.Time
	EndDate         time.Time
	PrizePool       string `gorm:"size:255"`
	MaxParticipants int    `gorm:"not null;default:0"`
	CreatedByID     uint   `gorm:"not null"`

	CreatedBy User `gorm:"foreignKey:CreatedByID"`
}

// TournamentParticipant is a user's active registration in a tournament.
// At most one row may exist per (user, tournament); leaving hard-deletes
// the row, so a user may re-join later.
type TournamentParticipant struct {
	ID           uint      `gorm:"primaryKey"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_participant_user_tournament"`
	TournamentID uint      `gorm:"not null;uniqueIndex:idx_participant_user_tournament"`
	Status       string    `gorm:"size:50;not null;default:'registered'"`
	JoinedAt     time.Time `gorm:"autoCreateTime"`

	User       User       `gorm:"foreignKey:UserID"`
	Tournament Tournament `gorm:"foreignKey:TournamentID"`
}
