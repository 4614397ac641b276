package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"gamearena/backend/internal/ledger"
	"gamearena/backend/internal/models"
)

// TournamentJoinPoints is awarded on join and taken back on leave.
const TournamentJoinPoints = 10

// TournamentService runs the join/leave workflow over membership rows.
type TournamentService struct {
	db     *gorm.DB
	ledger *ledger.Ledger
}

func NewTournamentService(db *gorm.DB, l *ledger.Ledger) *TournamentService {
	return &TournamentService{db: db, ledger: l}
}

// Join registers the user in the tournament and credits the join bonus.
// The membership row and the ledger movement commit together or not at all.
func (s *TournamentService) Join(ctx context.Context, userID, tournamentID uint) (int, error) {
	var tournament models.Tournament
	if err := s.db.WithContext(ctx).First(&tournament, tournamentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrTournamentNotFound
		}
		return 0, err
	}

	var balance int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.TournamentParticipant{}).
			Where("user_id = ? AND tournament_id = ?", userID, tournament.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyJoined
		}

		participant := models.TournamentParticipant{
			UserID:       userID,
			TournamentID: tournament.ID,
		}
		if err := tx.Create(&participant).Error; err != nil {
			return err
		}

		tournamentID := tournament.ID
		newBalance, err := s.ledger.Apply(tx, ledger.Entry{
			UserID:       userID,
			Delta:        TournamentJoinPoints,
			Type:         models.ActivityTournamentJoin,
			Description:  fmt.Sprintf("Joined tournament: %s", tournament.Title),
			TournamentID: &tournamentID,
		})
		if err != nil {
			return err
		}
		balance = newBalance
		return nil
	})
	return balance, err
}

// Leave removes the membership row and debits the join bonus. The debit is
// unconditional: a user whose points were already spent elsewhere may end up
// with a negative balance after leaving.
func (s *TournamentService) Leave(ctx context.Context, userID, tournamentID uint) (int, error) {
	var tournament models.Tournament
	if err := s.db.WithContext(ctx).First(&tournament, tournamentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrTournamentNotFound
		}
		return 0, err
	}

	var balance int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND tournament_id = ?", userID, tournament.ID).
			Delete(&models.TournamentParticipant{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotEnrolled
		}

		tournamentID := tournament.ID
		newBalance, err := s.ledger.Apply(tx, ledger.Entry{
			UserID:       userID,
			Delta:        -TournamentJoinPoints,
			Type:         models.ActivityTournamentLeave,
			Description:  fmt.Sprintf("Left tournament: %s", tournament.Title),
			TournamentID: &tournamentID,
		})
		if err != nil {
			return err
		}
		balance = newBalance
		return nil
	})
	return balance, err
}

// Participations lists the user's active tournament memberships.
func (s *TournamentService) Participations(ctx context.Context, userID uint) ([]models.TournamentParticipant, error) {
	var participations []models.TournamentParticipant
	err := s.db.WithContext(ctx).Preload("Tournament").
		Where("user_id = ?", userID).
		Order("joined_at DESC").
		Find(&participations).Error
	return participations, err
}
