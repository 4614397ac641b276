package models

import "gorm.io/gorm"

// GameStatus defines the review state of a submitted game.
type GameStatus string

const (
	GamePending  GameStatus = "pending"
	GameTesting  GameStatus = "testing"
	GameApproved GameStatus = "approved"
	GameRejected GameStatus = "rejected"
)

// ValidGameStatus reports whether s is one of the known review states.
func ValidGameStatus(s GameStatus) bool {
	switch s {
	case GamePending, GameTesting, GameApproved, GameRejected:
		return true
	}
	return false
}

// Game represents a game submitted for publication review.
type Game struct {
	gorm.Model
	Title         string     `gorm:"size:255;not null"`
	Developer     string     `gorm:"size:255"`
	Genre         string     `gorm:"size:100;index"`
	Description   string
	Status        GameStatus `gorm:"size:50;not null;default:'pending';index"`
	SubmittedByID uint       `gorm:"not null"`

	SubmittedBy User `gorm:"foreignKey:SubmittedByID"`
}
