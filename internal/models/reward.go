package models

import (
	"time"

	"gorm.io/gorm"
)

// Reward is a catalog item exchangeable for points.
type Reward struct {
	gorm.Model
	Title       string `gorm:"size:255;not null"`
	Description string
	Points      int    `gorm:"not null"` // cost in points, always > 0
	Category    string `gorm:"size:100;index"`
	Stock       int    `gorm:"not null;default:0"`
	IsActive    bool   `gorm:"not null;default:true"`
}

// UserReward records one successful claim of a reward by a user.
type UserReward struct {
	gorm.Model
	UserID    uint      `gorm:"not null;index"`
	RewardID  uint      `gorm:"not null;index"`
	Status    string    `gorm:"size:50;not null;default:'granted'"`
	ClaimedAt time.Time `gorm:"autoCreateTime"`

	User   User   `gorm:"foreignKey:UserID"`
	Reward Reward `gorm:"foreignKey:RewardID"`
}
