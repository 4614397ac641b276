package models

import "gorm.io/gorm"

// User represents a registered account.
type User struct {
	gorm.Model
	Username     string `gorm:"size:255;unique;not null"`
	Email        string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	FirstName    string `gorm:"size:255"`
	LastName     string `gorm:"size:255"`

	// A user owns exactly one profile, created alongside at registration.
	Profile Profile `gorm:"foreignKey:UserID"`
}
