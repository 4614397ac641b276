// Package ledger applies point balance changes and their audit trail as a
// single unit. Every mutation of a profile's points goes through here so the
// balance always equals the initial balance plus the sum of the user's
// activity rows.
package ledger

import (
	"errors"

	"gorm.io/gorm"

	"gamearena/backend/internal/metrics"
	"gamearena/backend/internal/models"
)

var (
	// ErrProfileNotFound is returned when the user has no profile row.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrInsufficientPoints is returned by ApplyChecked when the debit would
	// push the balance below zero.
	ErrInsufficientPoints = errors.New("insufficient points")
)

// Entry describes one balance movement and the activity row recording it.
type Entry struct {
	UserID       uint
	Delta        int
	Type         models.ActivityType
	Description  string
	TournamentID *uint
	RewardID     *uint
}

// Ledger writes balance deltas and activity rows. It operates inside a
// transaction supplied by the caller; the caller decides what else commits
// or rolls back with the movement.
type Ledger struct {
	metrics *metrics.Metrics
}

// New creates a Ledger. metrics may be nil.
func New(m *metrics.Metrics) *Ledger {
	return &Ledger{metrics: m}
}

// Apply adds e.Delta to the user's balance and appends the activity row,
// returning the new balance. No sign validation is performed; callers are
// responsible for checking affordability before debiting.
func (l *Ledger) Apply(tx *gorm.DB, e Entry) (int, error) {
	return l.apply(tx, e, false)
}

// ApplyChecked is Apply with a zero floor: the balance update only matches
// when points + delta >= 0, so concurrent debits cannot race the balance
// negative. Returns ErrInsufficientPoints when the guard rejects the update.
func (l *Ledger) ApplyChecked(tx *gorm.DB, e Entry) (int, error) {
	return l.apply(tx, e, true)
}

func (l *Ledger) apply(tx *gorm.DB, e Entry, floor bool) (int, error) {
	query := tx.Model(&models.Profile{}).Where("user_id = ?", e.UserID)
	if floor {
		query = query.Where("points + ? >= 0", e.Delta)
	}

	// Relative increment so concurrent movements on the same profile never
	// lose updates.
	res := query.Update("points", gorm.Expr("points + ?", e.Delta))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		if floor {
			var count int64
			if err := tx.Model(&models.Profile{}).Where("user_id = ?", e.UserID).Count(&count).Error; err != nil {
				return 0, err
			}
			if count > 0 {
				return 0, ErrInsufficientPoints
			}
		}
		return 0, ErrProfileNotFound
	}

	activity := models.UserActivity{
		UserID:       e.UserID,
		ActivityType: e.Type,
		Description:  e.Description,
		PointsChange: e.Delta,
		TournamentID: e.TournamentID,
		RewardID:     e.RewardID,
	}
	if err := tx.Create(&activity).Error; err != nil {
		return 0, err
	}

	var profile models.Profile
	if err := tx.Where("user_id = ?", e.UserID).First(&profile).Error; err != nil {
		return 0, err
	}

	if l.metrics != nil {
		l.metrics.ObserveDelta(string(e.Type), e.Delta)
	}

	return profile.Points, nil
}
