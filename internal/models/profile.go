package models

import "gorm.io/gorm"

// Role defines what a user is allowed to do on the platform.
type Role string

const (
	RoleUser  Role = "user"
	RoleHost  Role = "host"
	RoleAdmin Role = "admin"
)

// Profile carries the gamification state for a user.
// Points are only ever mutated through the ledger so that every change
// has a matching UserActivity row.
type Profile struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex;not null"`
	Role   Role `gorm:"size:50;not null;default:'user';index"`
	Points int  `gorm:"not null;default:0"`
}
