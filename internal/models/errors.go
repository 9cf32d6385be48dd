package models

import "errors"

// Custom errors
var (
	ErrNotFound         = errors.New("record not found")
	ErrInvalidWager     = errors.New("invalid wager")
	ErrUnknownWagerType = errors.New("unknown wager type")
	ErrInvalidID        = errors.New("invalid ID format")
)
