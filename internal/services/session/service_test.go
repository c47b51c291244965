package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/commonsgame/commons-go/internal/dependencies/mocks"
	"github.com/commonsgame/commons-go/internal/model"
	"github.com/commonsgame/commons-go/internal/recordstore/memory"
	"github.com/commonsgame/commons-go/internal/services/directory"
	"github.com/commonsgame/commons-go/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	store    *memory.Store
	clock    *mocks.MockClock
	identity *mocks.MockIdentity
	dir      *directory.Service
	service  *Service
	ctx      context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.identity = mocks.NewMockIdentity("alice")
	logger := testutil.NopLogger()
	s.dir = directory.New(s.store, s.identity, s.clock, logger)
	s.service = New(s.store, s.dir, s.identity, s.clock, model.DefaultGameParams(), logger)
	s.ctx = context.Background()
}

// joinAs registers another player under the code via a peer service
// sharing the same store
func (s *ServiceSuite) joinAs(id model.PlayerID, code, nickname string) {
	peer := directory.New(s.store, mocks.NewMockIdentity(id), s.clock, testutil.NopLogger())
	_, err := peer.JoinGameWithCode(s.ctx, code, nickname)
	s.Require().NoError(err)
}

func (s *ServiceSuite) setupGame() {
	_, err := s.dir.CreateGameCodeAnchor(s.ctx, "ABCDE")
	s.Require().NoError(err)
	_, err = s.dir.JoinGameWithCode(s.ctx, "ABCDE", "Alice")
	s.Require().NoError(err)
	s.joinAs("bob", "ABCDE", "Bob")
}

// StartGameSessionWithCode tests

func (s *ServiceSuite) TestStartSessionSucceeds() {
	s.setupGame()

	started, err := s.service.StartGameSessionWithCode(s.ctx, "ABCDE")
	s.Require().NoError(err)
	s.NotEmpty(started.SessionRef)
	s.NotEmpty(started.RoundRef)
}

func (s *ServiceSuite) TestStartSessionCapturesRoster() {
	s.setupGame()

	started, err := s.service.StartGameSessionWithCode(s.ctx, "ABCDE")
	s.Require().NoError(err)

	gs, err := s.service.GetSession(s.ctx, started.SessionRef)
	s.Require().NoError(err)
	s.Equal(model.PlayerID("alice"), gs.Owner)
	s.Equal("ABCDE", gs.Code)
	s.Equal([]model.PlayerID{"alice", "bob"}, gs.Players)
	s.Equal(model.DefaultGameParams(), gs.Params)
}

func (s *ServiceSuite) TestStartSessionRosterIsSnapshot() {
	s.setupGame()

	started, err := s.service.StartGameSessionWithCode(s.ctx, "ABCDE")
	s.Require().NoError(err)

	// A later registration does not alter an existing session's roster
	s.joinAs("carol", "ABCDE", "Carol")

	gs, err := s.service.GetSession(s.ctx, started.SessionRef)
	s.Require().NoError(err)
	s.Len(gs.Players, 2)
}

func (s *ServiceSuite) TestStartSessionUnknownCode() {
	_, err := s.service.StartGameSessionWithCode(s.ctx, "NOSUCH")
	s.ErrorIs(err, model.ErrGameCodeNotFound)
}

func (s *ServiceSuite) TestStartSessionNoPlayers() {
	_, err := s.dir.CreateGameCodeAnchor(s.ctx, "ABCDE")
	s.Require().NoError(err)

	_, err = s.service.StartGameSessionWithCode(s.ctx, "ABCDE")
	s.ErrorIs(err, model.ErrNoPlayers)
}

func (s *ServiceSuite) TestStartSessionRequiresMembership() {
	_, err := s.dir.CreateGameCodeAnchor(s.ctx, "ABCDE")
	s.Require().NoError(err)
	s.joinAs("bob", "ABCDE", "Bob")

	// alice never joined the code
	_, err = s.service.StartGameSessionWithCode(s.ctx, "ABCDE")
	s.ErrorIs(err, model.ErrNotInRoster)
}

func (s *ServiceSuite) TestStartSessionCreatesRoundZero() {
	s.setupGame()

	started, err := s.service.StartGameSessionWithCode(s.ctx, "ABCDE")
	s.Require().NoError(err)

	rec, err := s.store.Fetch(s.ctx, started.RoundRef)
	s.Require().NoError(err)
	s.Equal(model.KindRound, rec.Kind)

	var r model.Round
	s.Require().NoError(rec.Decode(&r))
	s.Equal(started.SessionRef, r.SessionRef)
	s.Equal(0, r.RoundNum)
	s.Equal(model.Ref(""), r.PrevRoundRef)
	s.Equal(model.ResourceAmount(100), r.StartAmount)
	s.Equal(model.ResourceAmount(0), r.ResourcesTaken)
}

func (s *ServiceSuite) TestConcurrentStartsYieldSeparateSessions() {
	s.setupGame()

	started1, err := s.service.StartGameSessionWithCode(s.ctx, "ABCDE")
	s.Require().NoError(err)

	bobService := New(
		s.store,
		directory.New(s.store, mocks.NewMockIdentity("bob"), s.clock, testutil.NopLogger()),
		mocks.NewMockIdentity("bob"),
		s.clock,
		model.DefaultGameParams(),
		testutil.NopLogger(),
	)
	started2, err := bobService.StartGameSessionWithCode(s.ctx, "ABCDE")
	s.Require().NoError(err)

	// No locking authority: each start produces its own session
	s.NotEqual(started1.SessionRef, started2.SessionRef)
}

// GetMyOwnedSessions tests

func (s *ServiceSuite) TestGetMyOwnedSessions() {
	s.setupGame()

	started, err := s.service.StartGameSessionWithCode(s.ctx, "ABCDE")
	s.Require().NoError(err)

	owned, err := s.service.GetMyOwnedSessions(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(owned, 1)
	s.Equal(started.SessionRef, owned[0].Ref)
	s.Equal("ABCDE", owned[0].Session.Code)
}

func (s *ServiceSuite) TestGetMyOwnedSessionsExcludesOthers() {
	s.setupGame()

	bobIdentity := mocks.NewMockIdentity("bob")
	bobService := New(
		s.store,
		directory.New(s.store, bobIdentity, s.clock, testutil.NopLogger()),
		bobIdentity,
		s.clock,
		model.DefaultGameParams(),
		testutil.NopLogger(),
	)
	_, err := bobService.StartGameSessionWithCode(s.ctx, "ABCDE")
	s.Require().NoError(err)

	// Sessions alice merely plays in are not hers
	owned, err := s.service.GetMyOwnedSessions(s.ctx)
	s.Require().NoError(err)
	s.Empty(owned)
}

// GetSession tests

func (s *ServiceSuite) TestGetSessionNotFound() {
	_, err := s.service.GetSession(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *ServiceSuite) TestGetSessionWrongKind() {
	s.setupGame()

	started, err := s.service.StartGameSessionWithCode(s.ctx, "ABCDE")
	s.Require().NoError(err)

	// A round reference is not a session
	_, err = s.service.GetSession(s.ctx, started.RoundRef)
	s.ErrorIs(err, model.ErrSessionNotFound)
}
