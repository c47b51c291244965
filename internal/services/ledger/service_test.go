package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/commonsgame/commons-go/internal/model"
	"github.com/commonsgame/commons-go/internal/recordstore"
	"github.com/commonsgame/commons-go/internal/recordstore/memory"
	"github.com/commonsgame/commons-go/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	store   *memory.Store
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = memory.New()
	s.service = New(s.store, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) appendMove(roundRef model.Ref, player model.PlayerID, amount model.ResourceAmount) model.Ref {
	rec, err := recordstore.NewRecord(
		model.KindMove,
		player,
		time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		model.Move{RoundRef: roundRef, PlayerID: player, ResourceAmount: amount},
	)
	s.Require().NoError(err)

	ref, err := s.store.Append(s.ctx, rec, recordstore.TagMoves(roundRef))
	s.Require().NoError(err)
	return ref
}

func (s *ServiceSuite) TestMovesForRound() {
	s.appendMove("round-1", "alice", 5)
	s.appendMove("round-1", "bob", 10)

	moves, err := s.service.MovesForRound(s.ctx, "round-1")
	s.Require().NoError(err)
	s.Require().Len(moves, 2)
	s.Equal(model.PlayerID("alice"), moves[0].PlayerID)
	s.Equal(model.ResourceAmount(5), moves[0].ResourceAmount)
	s.Equal(model.PlayerID("bob"), moves[1].PlayerID)
}

func (s *ServiceSuite) TestMovesForRoundEmpty() {
	moves, err := s.service.MovesForRound(s.ctx, "round-1")
	s.Require().NoError(err)
	s.Empty(moves)
}

func (s *ServiceSuite) TestMovesScopedToRound() {
	s.appendMove("round-1", "alice", 5)
	s.appendMove("round-2", "alice", 7)

	moves, err := s.service.MovesForRound(s.ctx, "round-1")
	s.Require().NoError(err)
	s.Require().Len(moves, 1)
	s.Equal(model.ResourceAmount(5), moves[0].ResourceAmount)
}

func (s *ServiceSuite) TestDuplicateMovesFirstWins() {
	// Two moves by the same player can only appear when write-time
	// validation raced on different peers; the first in causal order wins
	s.appendMove("round-1", "alice", 5)
	s.appendMove("round-1", "alice", 9)
	s.appendMove("round-1", "bob", 10)

	moves, err := s.service.MovesForRound(s.ctx, "round-1")
	s.Require().NoError(err)
	s.Require().Len(moves, 2)
	s.Equal(model.PlayerID("alice"), moves[0].PlayerID)
	s.Equal(model.ResourceAmount(5), moves[0].ResourceAmount)
}

func (s *ServiceSuite) TestHasPlayerMoved() {
	s.appendMove("round-1", "alice", 5)

	moved, err := s.service.HasPlayerMoved(s.ctx, "round-1", "alice")
	s.Require().NoError(err)
	s.True(moved)

	moved, err = s.service.HasPlayerMoved(s.ctx, "round-1", "bob")
	s.Require().NoError(err)
	s.False(moved)
}
