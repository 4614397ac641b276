package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"gamearena/backend/internal/ledger"
	"gamearena/backend/internal/models"
)

// GameSubmissionPoints is awarded once per submitted game.
const GameSubmissionPoints = 25

// GameService runs the game submission workflow.
type GameService struct {
	db     *gorm.DB
	ledger *ledger.Ledger
}

func NewGameService(db *gorm.DB, l *ledger.Ledger) *GameService {
	return &GameService{db: db, ledger: l}
}

// Submit stores the game and credits the submission bonus in one
// transaction. An omitted status defaults to pending; a supplied one must be
// a known review state.
func (s *GameService) Submit(ctx context.Context, userID uint, game *models.Game) (int, error) {
	if game.Status == "" {
		game.Status = models.GamePending
	}
	if !models.ValidGameStatus(game.Status) {
		return 0, ErrInvalidStatus
	}
	game.SubmittedByID = userID

	var balance int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(game).Error; err != nil {
			return err
		}

		newBalance, err := s.ledger.Apply(tx, ledger.Entry{
			UserID:      userID,
			Delta:       GameSubmissionPoints,
			Type:        models.ActivityPointsEarned,
			Description: fmt.Sprintf("Submitted game: %s", game.Title),
		})
		if err != nil {
			return err
		}
		balance = newBalance
		return nil
	})
	return balance, err
}

// UpdateStatus moves the game to a new review state. No points move and no
// activity row is written on a status change.
func (s *GameService) UpdateStatus(ctx context.Context, gameID uint, status models.GameStatus) error {
	if !models.ValidGameStatus(status) {
		return ErrInvalidStatus
	}

	var game models.Game
	if err := s.db.WithContext(ctx).First(&game, gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGameNotFound
		}
		return err
	}

	return s.db.WithContext(ctx).Model(&game).Update("status", status).Error
}
