package model

// Round is one step of play within a session. Rounds form a singly-linked
// append-only chain: closing round N never mutates it, it appends round
// N+1 (or a terminal GameResult) referencing N as predecessor.
//
// The ResourcesTaken/ResourcesGrown/PlayerStats fields describe the round
// that produced this one; round zero carries zero values for them.
type Round struct {
	SessionRef   Ref `json:"session_ref"`
	RoundNum     int `json:"round_num"`
	PrevRoundRef Ref `json:"prev_round_ref,omitempty"`

	StartAmount    ResourceAmount `json:"start_amount"`
	ResourcesTaken ResourceAmount `json:"resources_taken"`
	ResourcesGrown ResourceAmount `json:"resources_grown"`
	PlayerStats    PlayerStats    `json:"player_stats,omitempty"`
}

// GameOutcome describes how a finished game ended
type GameOutcome string

const (
	// OutcomeDepleted means the commons was driven through the floor
	OutcomeDepleted GameOutcome = "depleted"
	// OutcomeCompleted means all rounds were played with resources left
	OutcomeCompleted GameOutcome = "completed"
)

// GameResult is the terminal record of a session. Like a successor round
// it references the round it closes, so peers discover it the same way.
type GameResult struct {
	SessionRef        Ref            `json:"session_ref"`
	LastRoundRef      Ref            `json:"last_round_ref"`
	Outcome           GameOutcome    `json:"outcome"`
	RemainingResource ResourceAmount `json:"remaining_resource"`
	FinalScores       PlayerStats    `json:"final_scores"`
}

// NextAction tells the caller what to do after a closure evaluation
type NextAction string

const (
	// NextActionWait means not every roster member's move is visible yet;
	// the caller should retry after a delay
	NextActionWait NextAction = "WAIT"
	// NextActionStartNextRound means a successor round exists or was created
	NextActionStartNextRound NextAction = "START_NEXT_ROUND"
	// NextActionShowGameResults means the game has ended
	NextActionShowGameResults NextAction = "SHOW_GAME_RESULTS"
)

// ClosureOutcome is the result of evaluating a round for closure.
// It is never persisted: it is recomputed from the visible moves by
// whichever peer asks.
type ClosureOutcome struct {
	NextAction              NextAction
	NextRoundRef            Ref // set when NextAction is START_NEXT_ROUND
	ResultRef               Ref // set when NextAction is SHOW_GAME_RESULTS
	RemainingResourceAmount ResourceAmount
}

// RoundStatus is a read-only view of a round and its visible moves
type RoundStatus struct {
	Ref    Ref
	Round  Round
	Moves  []Move
	Closed bool
}
