package model

// Ref is the content address of a record in the replicated store.
// Two records with the same kind, author and payload always share a Ref,
// which is what makes re-appending the same content a no-op.
type Ref string

// PlayerID uniquely identifies a player across all peers.
// It is supplied by the identity provider and is stable for a peer install.
type PlayerID string

// Kind identifies the entity type stored in a record's payload
type Kind string

const (
	KindGameCodeAnchor     Kind = "game_code_anchor"
	KindPlayerRegistration Kind = "player_registration"
	KindGameSession        Kind = "game_session"
	KindRound              Kind = "game_round"
	KindMove               Kind = "game_move"
	KindGameResult         Kind = "game_result"
)
