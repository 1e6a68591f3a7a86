package services

import "errors"

var (
	// ErrGameNotCompleted rejects summary generation for a running game.
	ErrGameNotCompleted = errors.New("game must be completed to generate summary")

	// ErrGameCompleted rejects live commentary and predictions for a finished game.
	ErrGameCompleted = errors.New("game already completed")

	// ErrSummaryConflict means another writer inserted the summary first.
	ErrSummaryConflict = errors.New("summary already exists for game")

	// ErrNotEnoughWallets rejects strategy comparisons with fewer than 2 wallets.
	ErrNotEnoughWallets = errors.New("provide at least 2 wallet addresses to compare")
)
