package model

// PlayerRegistration links a game code to a player and their chosen nickname.
// Registrations are appended under the code's anchor so that any peer who
// knows the code can discover who has joined.
type PlayerRegistration struct {
	Code     string   `json:"code"`
	PlayerID PlayerID `json:"player_id"`
	Nickname string   `json:"nickname"`

	// Seq is the store-assigned causal order of the registration.
	// It is envelope metadata, not part of the record content.
	Seq uint64 `json:"-"`
}
