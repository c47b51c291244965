package request

// CreateGameRequest is the request to create a game code anchor
type CreateGameRequest struct {
	Code string `json:"code"`
}

// JoinGameRequest is the request to join a game code
type JoinGameRequest struct {
	Nickname string `json:"nickname"`
}

// MakeMoveRequest is the request to make a move in a round
type MakeMoveRequest struct {
	ResourceAmount int `json:"resource_amount"`
}
