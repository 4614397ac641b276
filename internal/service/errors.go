package service

import (
	"errors"

	"gamearena/backend/internal/ledger"
)

// Domain failures surfaced to the transport layer. Handlers map each of
// these to a stable status code and message; anything else is a 500.
var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrAlreadyJoined      = errors.New("already joined this tournament")
	ErrNotEnrolled        = errors.New("not enrolled in this tournament")

	ErrRewardNotFound = errors.New("reward not found")
	ErrRewardInactive = errors.New("reward is not active")
	ErrOutOfStock     = errors.New("reward is out of stock")

	ErrGameNotFound  = errors.New("game not found")
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInsufficientPoints is shared with the ledger so its floor guard
	// surfaces as the same failure as the redemption pre-check.
	ErrInsufficientPoints = ledger.ErrInsufficientPoints
)
