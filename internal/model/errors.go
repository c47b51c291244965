package model

import "errors"

// Common errors used across the application
var (
	// Lookup errors
	ErrGameCodeNotFound = errors.New("game code not found")
	ErrSessionNotFound  = errors.New("session not found")
	ErrRoundNotFound    = errors.New("round not found")
	ErrRecordNotFound   = errors.New("record not found")

	// Input errors
	ErrInvalidGameCode       = errors.New("game code must not be empty")
	ErrInvalidNickname       = errors.New("nickname must not be empty")
	ErrInvalidResourceAmount = errors.New("resource amount is negative or exceeds the round's pool")

	// Round errors
	ErrRoundClosed  = errors.New("round already has a successor")
	ErrNotInRoster  = errors.New("player is not in the session roster")
	ErrAlreadyMoved = errors.New("player has already moved this round")
	ErrNoPlayers    = errors.New("no players have joined this game code")
)
