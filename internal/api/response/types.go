package response

import (
	"github.com/commonsgame/commons-go/internal/model"
)

// CreateGameResponse is the response for anchor creation
type CreateGameResponse struct {
	AnchorRef string `json:"anchor_ref"`
}

// JoinGameResponse is the response for joining a game
type JoinGameResponse struct {
	RegistrationRef string `json:"registration_ref"`
}

// Player represents a registered player in API responses
type Player struct {
	PlayerID string `json:"player_id"`
	Nickname string `json:"nickname"`
}

// PlayerFromModel converts a model.PlayerRegistration to a response Player
func PlayerFromModel(r model.PlayerRegistration) Player {
	return Player{
		PlayerID: string(r.PlayerID),
		Nickname: r.Nickname,
	}
}

// PlayersResponse is the response for listing players under a code
type PlayersResponse struct {
	Players []Player `json:"players"`
}

// StartSessionResponse is the response for starting a session
type StartSessionResponse struct {
	SessionRef string `json:"session_ref"`
	RoundRef   string `json:"round_ref"`
}

// Session represents a game session in API responses
type Session struct {
	Ref     string   `json:"ref"`
	Owner   string   `json:"owner"`
	Code    string   `json:"code"`
	Players []string `json:"players"`
}

// SessionFromModel converts a model.OwnedSession to a response Session
func SessionFromModel(s model.OwnedSession) Session {
	players := make([]string, len(s.Session.Players))
	for i, p := range s.Session.Players {
		players[i] = string(p)
	}
	return Session{
		Ref:     string(s.Ref),
		Owner:   string(s.Session.Owner),
		Code:    s.Session.Code,
		Players: players,
	}
}

// SessionsResponse is the response for listing owned sessions
type SessionsResponse struct {
	Sessions []Session `json:"sessions"`
}

// Move represents a move in API responses
type Move struct {
	PlayerID       string `json:"player_id"`
	ResourceAmount int    `json:"resource_amount"`
}

// RoundStatusResponse is the read-only view of a round
type RoundStatusResponse struct {
	Ref         string `json:"ref"`
	RoundNum    int    `json:"round_num"`
	StartAmount int    `json:"start_amount"`
	Closed      bool   `json:"closed"`
	Moves       []Move `json:"moves"`
}

// RoundStatusFromModel converts a model.RoundStatus
func RoundStatusFromModel(st *model.RoundStatus) RoundStatusResponse {
	moves := make([]Move, len(st.Moves))
	for i, mv := range st.Moves {
		moves[i] = Move{
			PlayerID:       string(mv.PlayerID),
			ResourceAmount: int(mv.ResourceAmount),
		}
	}
	return RoundStatusResponse{
		Ref:         string(st.Ref),
		RoundNum:    st.Round.RoundNum,
		StartAmount: int(st.Round.StartAmount),
		Closed:      st.Closed,
		Moves:       moves,
	}
}

// MakeMoveResponse is the response for making a move
type MakeMoveResponse struct {
	MoveRef string `json:"move_ref"`
}

// CloseRoundResponse is the closure decision for a round
type CloseRoundResponse struct {
	NextAction                 string `json:"next_action"`
	CurrentRoundEntryReference string `json:"current_round_entry_reference,omitempty"`
	GameResultReference        string `json:"game_result_reference,omitempty"`
	RemainingResourceAmount    int    `json:"remaining_resource_amount"`
}

// CloseRoundFromModel converts a model.ClosureOutcome
func CloseRoundFromModel(o *model.ClosureOutcome) CloseRoundResponse {
	return CloseRoundResponse{
		NextAction:                 string(o.NextAction),
		CurrentRoundEntryReference: string(o.NextRoundRef),
		GameResultReference:        string(o.ResultRef),
		RemainingResourceAmount:    int(o.RemainingResourceAmount),
	}
}
