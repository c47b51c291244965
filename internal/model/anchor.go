package model

import "strings"

// GameCodeAnchor identifies a game by a short human-readable code.
// Anchors are authorless: every peer that creates one for the same code
// produces an identical record, so creation is idempotent across peers.
type GameCodeAnchor struct {
	Code string `json:"code"`
}

// NormalizeGameCode canonicalizes a human-entered game code.
// Codes are case-insensitive and surrounding whitespace is ignored.
func NormalizeGameCode(code string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return "", ErrInvalidGameCode
	}
	return normalized, nil
}
