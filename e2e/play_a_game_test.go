package e2e_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commonsgame/commons-go/internal/api"
	"github.com/commonsgame/commons-go/internal/cli"
	"github.com/commonsgame/commons-go/internal/factory"
	"github.com/commonsgame/commons-go/internal/model"
	"github.com/commonsgame/commons-go/internal/recordstore/memory"
	"github.com/commonsgame/commons-go/internal/testutil"
)

// startPeer brings up one peer's HTTP API over the shared store and
// returns a CLI client pointed at it
func startPeer(t *testing.T, store *memory.Store, id model.PlayerID) *cli.Client {
	t.Helper()

	app := factory.NewTestAppWithStore(store, id, model.DefaultGameParams())
	router := api.NewRouter(api.RouterConfig{
		Logger:           testutil.NopLogger(),
		DirectoryService: app.DirectoryService,
		SessionService:   app.SessionService,
		RoundService:     app.RoundService,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return cli.NewClient(server.URL)
}

// TestPlayAGame drives a two-player game end to end over HTTP: both
// peers run their own API instance and coordinate purely through the
// shared record store.
func TestPlayAGame(t *testing.T) {
	store := memory.New()
	alice := startPeer(t, store, "alice")
	bob := startPeer(t, store, "bob")

	// Alice creates the game and shares the code out of band
	var created cli.CreateGameResult
	require.NoError(t, alice.Post("/api/v1/games", map[string]string{"code": "ABCDE"}, &created))
	require.NotEmpty(t, created.AnchorRef)

	// Both players join by code
	var joined cli.JoinGameResult
	require.NoError(t, alice.Post("/api/v1/games/ABCDE/join", map[string]string{"nickname": "Alice"}, &joined))
	require.NoError(t, bob.Post("/api/v1/games/ABCDE/join", map[string]string{"nickname": "Bob"}, &joined))

	// Bob sees the full roster through his own peer
	var players cli.PlayersResult
	require.NoError(t, bob.Get("/api/v1/games/ABCDE/players", &players))
	require.Len(t, players.Players, 2)

	// Alice starts the session
	var started cli.StartSessionResult
	require.NoError(t, alice.Post("/api/v1/games/ABCDE/sessions", nil, &started))
	require.NotEmpty(t, started.RoundRef)

	// First round: Alice takes 5, Bob takes 10
	var move cli.MoveResult
	require.NoError(t, alice.Post("/api/v1/rounds/"+started.RoundRef+"/moves",
		map[string]int{"resource_amount": 5}, &move))

	// Bob's view of the round grows as moves propagate
	var status cli.RoundStatus
	require.NoError(t, bob.Get("/api/v1/rounds/"+started.RoundRef, &status))
	require.Len(t, status.Moves, 1)
	assert.False(t, status.Closed)

	require.NoError(t, bob.Post("/api/v1/rounds/"+started.RoundRef+"/moves",
		map[string]int{"resource_amount": 10}, &move))

	// Either player may close; both get the same successor
	var closedByAlice, closedByBob cli.CloseResult
	require.NoError(t, alice.Post("/api/v1/rounds/"+started.RoundRef+"/close", nil, &closedByAlice))
	require.NoError(t, bob.Post("/api/v1/rounds/"+started.RoundRef+"/close", nil, &closedByBob))

	assert.Equal(t, "START_NEXT_ROUND", closedByAlice.NextAction)
	assert.Equal(t, 85, closedByAlice.RemainingResourceAmount)
	require.NotEmpty(t, closedByAlice.CurrentRoundEntryReference)
	assert.Equal(t, closedByAlice.CurrentRoundEntryReference, closedByBob.CurrentRoundEntryReference)

	// The successor round carries the new pool and last round's stats
	nextRef := closedByAlice.CurrentRoundEntryReference
	require.NoError(t, alice.Get("/api/v1/rounds/"+nextRef, &status))
	assert.Equal(t, 1, status.RoundNum)
	assert.Equal(t, 85, status.StartAmount)

	// Play out the remaining rounds to the terminal result
	roundRef := nextRef
	for round := 1; round < 3; round++ {
		require.NoError(t, alice.Post("/api/v1/rounds/"+roundRef+"/moves",
			map[string]int{"resource_amount": 5}, &move))
		require.NoError(t, bob.Post("/api/v1/rounds/"+roundRef+"/moves",
			map[string]int{"resource_amount": 10}, &move))

		var closed cli.CloseResult
		require.NoError(t, alice.Post("/api/v1/rounds/"+roundRef+"/close", nil, &closed))

		if round < 2 {
			require.Equal(t, "START_NEXT_ROUND", closed.NextAction)
			roundRef = closed.CurrentRoundEntryReference
		} else {
			require.Equal(t, "SHOW_GAME_RESULTS", closed.NextAction)
			assert.Equal(t, 55, closed.RemainingResourceAmount)
			assert.NotEmpty(t, closed.GameResultReference)
		}
	}
}

// TestCloseBeforeAllMovesWaits verifies a peer never closes a round
// while a roster member's move is missing.
func TestCloseBeforeAllMovesWaits(t *testing.T) {
	store := memory.New()
	alice := startPeer(t, store, "alice")
	bob := startPeer(t, store, "bob")

	var created cli.CreateGameResult
	require.NoError(t, alice.Post("/api/v1/games", map[string]string{"code": "SLOW"}, &created))

	var joined cli.JoinGameResult
	require.NoError(t, alice.Post("/api/v1/games/SLOW/join", map[string]string{"nickname": "Alice"}, &joined))
	require.NoError(t, bob.Post("/api/v1/games/SLOW/join", map[string]string{"nickname": "Bob"}, &joined))

	var started cli.StartSessionResult
	require.NoError(t, alice.Post("/api/v1/games/SLOW/sessions", nil, &started))

	var move cli.MoveResult
	require.NoError(t, alice.Post("/api/v1/rounds/"+started.RoundRef+"/moves",
		map[string]int{"resource_amount": 50}, &move))

	var closed cli.CloseResult
	require.NoError(t, alice.Post("/api/v1/rounds/"+started.RoundRef+"/close", nil, &closed))
	assert.Equal(t, "WAIT", closed.NextAction)

	// An HTTP error response surfaces as a client error
	err := bob.Post("/api/v1/rounds/"+started.RoundRef+"/moves",
		map[string]int{"resource_amount": 200}, &move)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_RESOURCE_AMOUNT")

	require.NoError(t, bob.Post("/api/v1/rounds/"+started.RoundRef+"/moves",
		map[string]int{"resource_amount": 25}, &move))
	require.NoError(t, bob.Post("/api/v1/rounds/"+started.RoundRef+"/close", nil, &closed))
	assert.Equal(t, "START_NEXT_ROUND", closed.NextAction)
	assert.Equal(t, 25, closed.RemainingResourceAmount)
}
