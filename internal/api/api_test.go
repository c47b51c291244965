package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/commonsgame/commons-go/internal/api/response"
	"github.com/commonsgame/commons-go/internal/factory"
	"github.com/commonsgame/commons-go/internal/model"
	"github.com/commonsgame/commons-go/internal/recordstore/memory"
	"github.com/commonsgame/commons-go/internal/testutil"
)

type APISuite struct {
	suite.Suite
	store  *memory.Store
	app    *factory.TestApp
	server *httptest.Server
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	s.store = memory.New()
	s.app = factory.NewTestAppWithStore(s.store, "alice", model.DefaultGameParams())

	router := NewRouter(RouterConfig{
		Logger:           testutil.NopLogger(),
		DirectoryService: s.app.DirectoryService,
		SessionService:   s.app.SessionService,
		RoundService:     s.app.RoundService,
	})
	s.server = httptest.NewServer(router)
}

func (s *APISuite) TearDownTest() {
	if s.server != nil {
		s.server.Close()
	}
}

func (s *APISuite) do(method, path string, body any, result any) *http.Response {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, s.server.URL+path, reqBody)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer func() { _ = resp.Body.Close() }()

	if result != nil {
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(result))
	}
	return resp
}

func (s *APISuite) errorCode(resp map[string]any) string {
	errObj, _ := resp["error"].(map[string]any)
	code, _ := errObj["code"].(string)
	return code
}

// setupGame creates a game with alice and bob joined; bob acts through a
// second peer app on the shared store
func (s *APISuite) setupGame() *factory.TestApp {
	var created response.CreateGameResponse
	resp := s.do(http.MethodPost, "/api/v1/games", map[string]string{"code": "ABCDE"}, &created)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var joined response.JoinGameResponse
	resp = s.do(http.MethodPost, "/api/v1/games/ABCDE/join", map[string]string{"nickname": "Alice"}, &joined)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	bob := factory.NewTestAppWithStore(s.store, "bob", model.DefaultGameParams())
	_, err := bob.DirectoryService.JoinGameWithCode(context.Background(), "ABCDE", "Bob")
	s.Require().NoError(err)

	return bob
}

func (s *APISuite) startSession() (response.StartSessionResponse, *factory.TestApp) {
	bob := s.setupGame()

	var started response.StartSessionResponse
	resp := s.do(http.MethodPost, "/api/v1/games/ABCDE/sessions", nil, &started)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	return started, bob
}

func (s *APISuite) TestHealth() {
	var result map[string]string
	resp := s.do(http.MethodGet, "/api/v1/health", nil, &result)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("ok", result["status"])
}

func (s *APISuite) TestCreateGame() {
	var result response.CreateGameResponse
	resp := s.do(http.MethodPost, "/api/v1/games", map[string]string{"code": "ABCDE"}, &result)
	s.Equal(http.StatusCreated, resp.StatusCode)
	s.NotEmpty(result.AnchorRef)
}

func (s *APISuite) TestCreateGameEmptyCode() {
	var result map[string]any
	resp := s.do(http.MethodPost, "/api/v1/games", map[string]string{"code": "  "}, &result)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("INVALID_GAME_CODE", s.errorCode(result))
}

func (s *APISuite) TestJoinUnknownGame() {
	var result map[string]any
	resp := s.do(http.MethodPost, "/api/v1/games/NOSUCH/join", map[string]string{"nickname": "Alice"}, &result)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Equal("GAME_CODE_NOT_FOUND", s.errorCode(result))
}

func (s *APISuite) TestJoinEmptyNickname() {
	s.setupGame()

	var result map[string]any
	resp := s.do(http.MethodPost, "/api/v1/games/ABCDE/join", map[string]string{"nickname": ""}, &result)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("INVALID_NICKNAME", s.errorCode(result))
}

func (s *APISuite) TestListPlayers() {
	s.setupGame()

	var result response.PlayersResponse
	resp := s.do(http.MethodGet, "/api/v1/games/ABCDE/players", nil, &result)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Require().Len(result.Players, 2)
	s.Equal("Alice", result.Players[0].Nickname)
	s.Equal("Bob", result.Players[1].Nickname)
}

func (s *APISuite) TestStartSession() {
	started, _ := s.startSession()
	s.NotEmpty(started.SessionRef)
	s.NotEmpty(started.RoundRef)
}

func (s *APISuite) TestStartSessionNoPlayers() {
	var created response.CreateGameResponse
	resp := s.do(http.MethodPost, "/api/v1/games", map[string]string{"code": "EMPTY"}, &created)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var result map[string]any
	resp = s.do(http.MethodPost, "/api/v1/games/EMPTY/sessions", nil, &result)
	s.Equal(http.StatusConflict, resp.StatusCode)
	s.Equal("NO_PLAYERS", s.errorCode(result))
}

func (s *APISuite) TestListMySessions() {
	started, _ := s.startSession()

	var result response.SessionsResponse
	resp := s.do(http.MethodGet, "/api/v1/sessions/mine", nil, &result)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Require().Len(result.Sessions, 1)
	s.Equal(started.SessionRef, result.Sessions[0].Ref)
	s.Equal("ABCDE", result.Sessions[0].Code)
	s.ElementsMatch([]string{"alice", "bob"}, result.Sessions[0].Players)
}

func (s *APISuite) TestGetRound() {
	started, _ := s.startSession()

	var result response.RoundStatusResponse
	resp := s.do(http.MethodGet, fmt.Sprintf("/api/v1/rounds/%s", started.RoundRef), nil, &result)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(0, result.RoundNum)
	s.Equal(100, result.StartAmount)
	s.False(result.Closed)
	s.Empty(result.Moves)
}

func (s *APISuite) TestGetRoundNotFound() {
	var result map[string]any
	resp := s.do(http.MethodGet, "/api/v1/rounds/nonexistent", nil, &result)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Equal("ROUND_NOT_FOUND", s.errorCode(result))
}

func (s *APISuite) TestMakeMove() {
	started, _ := s.startSession()

	var result response.MakeMoveResponse
	resp := s.do(http.MethodPost, fmt.Sprintf("/api/v1/rounds/%s/moves", started.RoundRef),
		map[string]int{"resource_amount": 5}, &result)
	s.Equal(http.StatusCreated, resp.StatusCode)
	s.NotEmpty(result.MoveRef)
}

func (s *APISuite) TestMakeMoveInvalidAmount() {
	started, _ := s.startSession()

	var result map[string]any
	resp := s.do(http.MethodPost, fmt.Sprintf("/api/v1/rounds/%s/moves", started.RoundRef),
		map[string]int{"resource_amount": 101}, &result)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("INVALID_RESOURCE_AMOUNT", s.errorCode(result))
}

func (s *APISuite) TestMakeMoveTwice() {
	started, _ := s.startSession()

	resp := s.do(http.MethodPost, fmt.Sprintf("/api/v1/rounds/%s/moves", started.RoundRef),
		map[string]int{"resource_amount": 5}, nil)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var result map[string]any
	resp = s.do(http.MethodPost, fmt.Sprintf("/api/v1/rounds/%s/moves", started.RoundRef),
		map[string]int{"resource_amount": 5}, &result)
	s.Equal(http.StatusConflict, resp.StatusCode)
	s.Equal("ALREADY_MOVED", s.errorCode(result))
}

func (s *APISuite) TestCloseRoundWaitsThenCloses() {
	started, bob := s.startSession()

	resp := s.do(http.MethodPost, fmt.Sprintf("/api/v1/rounds/%s/moves", started.RoundRef),
		map[string]int{"resource_amount": 5}, nil)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var waiting response.CloseRoundResponse
	resp = s.do(http.MethodPost, fmt.Sprintf("/api/v1/rounds/%s/close", started.RoundRef), nil, &waiting)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("WAIT", waiting.NextAction)

	_, err := bob.RoundService.MakeNewMove(context.Background(), model.Ref(started.RoundRef), 10)
	s.Require().NoError(err)

	var closed response.CloseRoundResponse
	resp = s.do(http.MethodPost, fmt.Sprintf("/api/v1/rounds/%s/close", started.RoundRef), nil, &closed)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("START_NEXT_ROUND", closed.NextAction)
	s.Equal(85, closed.RemainingResourceAmount)
	s.NotEmpty(closed.CurrentRoundEntryReference)
	s.Empty(closed.GameResultReference)
}

func (s *APISuite) TestInvalidJSONBody() {
	req, err := http.NewRequest(http.MethodPost, s.server.URL+"/api/v1/games", bytes.NewReader([]byte("{not json")))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer func() { _ = resp.Body.Close() }()

	var result map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&result))
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("INVALID_REQUEST", s.errorCode(result))
}
