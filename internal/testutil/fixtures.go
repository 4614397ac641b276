package testutil

import (
	"testing"

	"gorm.io/gorm"

	"gamearena/backend/internal/models"
)

// SeedUser creates a user with a profile holding the given starting balance.
func SeedUser(t *testing.T, db *gorm.DB, username string, points int) models.User {
	t.Helper()

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "not-a-real-hash",
		Profile: models.Profile{
			Role:   models.RoleUser,
			Points: points,
		},
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", username, err)
	}
	return user
}
