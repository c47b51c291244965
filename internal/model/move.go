package model

// Move is one player's action within one round: how much of the shared
// pool they choose to consume. Moves are authored by the acting player
// and become visible to other peers only after propagation.
type Move struct {
	RoundRef       Ref            `json:"round_ref"`
	PlayerID       PlayerID       `json:"player_id"`
	ResourceAmount ResourceAmount `json:"resource_amount"`

	// Seq is the store-assigned causal order, used to resolve duplicate
	// moves first-write-wins. Envelope metadata, not record content.
	Seq uint64 `json:"-"`
}
