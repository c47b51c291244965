package model

// ResourceAmount is a quantity of the shared resource pool.
// A separate type keeps resource arithmetic distinct from other integers.
type ResourceAmount int

// PlayerStats maps each player to the resources they consumed
type PlayerStats map[PlayerID]ResourceAmount

// DepletionPolicy selects which conditions end a game
type DepletionPolicy string

const (
	// DepletionPolicyFixedRounds ends the game only when the configured
	// round count is exhausted; the floor still clamps the pool.
	DepletionPolicyFixedRounds DepletionPolicy = "fixed_rounds"
	// DepletionPolicyResourceFloor ends the game only when the pool is
	// driven through the depletion floor; rounds are unbounded.
	DepletionPolicyResourceFloor DepletionPolicy = "resource_floor"
	// DepletionPolicyBoth ends the game on whichever happens first
	DepletionPolicyBoth DepletionPolicy = "both"
)

// EndsOnRounds reports whether the policy bounds the number of rounds
func (p DepletionPolicy) EndsOnRounds() bool {
	return p == DepletionPolicyFixedRounds || p == DepletionPolicyBoth
}

// EndsOnFloor reports whether the policy ends the game on depletion
func (p DepletionPolicy) EndsOnFloor() bool {
	return p == DepletionPolicyResourceFloor || p == DepletionPolicyBoth
}

// GameParams holds the configuration every session is played under.
// The values are captured into the session record at start time so that
// all peers evaluate rounds against the same constants.
type GameParams struct {
	StartAmount        ResourceAmount  `json:"start_amount"`
	MaxRounds          int             `json:"max_rounds"`
	DepletionFloor     ResourceAmount  `json:"depletion_floor"`
	DepletionPolicy    DepletionPolicy `json:"depletion_policy"`
	RegenerationFactor float64         `json:"regeneration_factor"`
}

// DefaultGameParams returns the standard game configuration
func DefaultGameParams() GameParams {
	return GameParams{
		StartAmount:        100,
		MaxRounds:          3,
		DepletionFloor:     0,
		DepletionPolicy:    DepletionPolicyBoth,
		RegenerationFactor: 1.0,
	}
}

// GameSession is one played instance of the game for a code.
// The roster is a snapshot of the registrations visible to the starting
// peer at start time and is immutable afterwards.
type GameSession struct {
	Owner     PlayerID   `json:"owner"`
	Code      string     `json:"code"`
	AnchorRef Ref        `json:"anchor_ref"`
	Players   []PlayerID `json:"players"`
	Params    GameParams `json:"params"`
}

// HasPlayer reports whether the given player is in the session roster
func (s *GameSession) HasPlayer(id PlayerID) bool {
	for _, p := range s.Players {
		if p == id {
			return true
		}
	}
	return false
}

// OwnedSession pairs a session with its record reference so callers can
// act on the session without re-deriving its address
type OwnedSession struct {
	Ref     Ref
	Session GameSession
}

// StartedSession is the result of starting a new game session
type StartedSession struct {
	SessionRef Ref
	RoundRef   Ref
}
