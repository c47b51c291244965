package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case CreateGameResult:
		o.printCreateGame(v)
	case JoinGameResult:
		o.printJoinGame(v)
	case PlayersResult:
		o.printPlayers(v)
	case StartSessionResult:
		o.printStartSession(v)
	case SessionsResult:
		o.printSessions(v)
	case RoundStatus:
		o.printRoundStatus(v)
	case MoveResult:
		o.printMoveResult(v)
	case CloseResult:
		o.printCloseResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// CreateGameResult response type (matches API)
type CreateGameResult struct {
	AnchorRef string `json:"anchor_ref"`
}

// JoinGameResult response type
type JoinGameResult struct {
	RegistrationRef string `json:"registration_ref"`
}

// Player response type
type Player struct {
	PlayerID string `json:"player_id"`
	Nickname string `json:"nickname"`
}

// PlayersResult response type
type PlayersResult struct {
	Players []Player `json:"players"`
}

// StartSessionResult response type
type StartSessionResult struct {
	SessionRef string `json:"session_ref"`
	RoundRef   string `json:"round_ref"`
}

// Session response type
type Session struct {
	Ref     string   `json:"ref"`
	Owner   string   `json:"owner"`
	Code    string   `json:"code"`
	Players []string `json:"players"`
}

// SessionsResult response type
type SessionsResult struct {
	Sessions []Session `json:"sessions"`
}

// Move response type
type Move struct {
	PlayerID       string `json:"player_id"`
	ResourceAmount int    `json:"resource_amount"`
}

// RoundStatus response type
type RoundStatus struct {
	Ref         string `json:"ref"`
	RoundNum    int    `json:"round_num"`
	StartAmount int    `json:"start_amount"`
	Closed      bool   `json:"closed"`
	Moves       []Move `json:"moves"`
}

// MoveResult response type
type MoveResult struct {
	MoveRef string `json:"move_ref"`
}

// CloseResult response type
type CloseResult struct {
	NextAction                 string `json:"next_action"`
	CurrentRoundEntryReference string `json:"current_round_entry_reference,omitempty"`
	GameResultReference        string `json:"game_result_reference,omitempty"`
	RemainingResourceAmount    int    `json:"remaining_resource_amount"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printCreateGame(r CreateGameResult) {
	fmt.Printf("Game created\n")
	fmt.Printf("Anchor: %s\n", r.AnchorRef)
}

func (o *Output) printJoinGame(r JoinGameResult) {
	fmt.Printf("Joined game\n")
	fmt.Printf("Registration: %s\n", r.RegistrationRef)
}

func (o *Output) printPlayers(r PlayersResult) {
	fmt.Printf("Players (%d):\n", len(r.Players))
	for _, p := range r.Players {
		fmt.Printf("  - %s (%s)\n", p.Nickname, p.PlayerID)
	}
}

func (o *Output) printStartSession(r StartSessionResult) {
	fmt.Printf("Session started\n")
	fmt.Printf("Session: %s\n", r.SessionRef)
	fmt.Printf("Round:   %s\n", r.RoundRef)
}

func (o *Output) printSessions(r SessionsResult) {
	fmt.Printf("Sessions (%d):\n", len(r.Sessions))
	for _, s := range r.Sessions {
		fmt.Printf("  - %s\n", s.Ref)
		fmt.Printf("    Code: %s\n", s.Code)
		fmt.Printf("    Players: %d\n", len(s.Players))
	}
}

func (o *Output) printRoundStatus(r RoundStatus) {
	fmt.Printf("Round %d (%s)\n", r.RoundNum, r.Ref)
	fmt.Printf("Pool: %d\n", r.StartAmount)
	if r.Closed {
		fmt.Println("State: closed")
	} else {
		fmt.Println("State: open")
	}
	fmt.Printf("Moves (%d):\n", len(r.Moves))
	for _, m := range r.Moves {
		fmt.Printf("  - %s took %d\n", m.PlayerID, m.ResourceAmount)
	}
}

func (o *Output) printMoveResult(r MoveResult) {
	fmt.Printf("Move recorded\n")
	fmt.Printf("Move: %s\n", r.MoveRef)
}

func (o *Output) printCloseResult(r CloseResult) {
	fmt.Printf("Next action: %s\n", r.NextAction)
	fmt.Printf("Remaining: %d\n", r.RemainingResourceAmount)
	if r.CurrentRoundEntryReference != "" {
		fmt.Printf("Next round: %s\n", r.CurrentRoundEntryReference)
	}
	if r.GameResultReference != "" {
		fmt.Printf("Result: %s\n", r.GameResultReference)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
