package ledger

import (
	"context"
	"log/slog"

	"github.com/commonsgame/commons-go/internal/model"
	"github.com/commonsgame/commons-go/internal/recordstore"
)

// Service is the read side of the move ledger: the per-round set of
// visible move records
type Service struct {
	store  recordstore.Store
	logger *slog.Logger
}

// New creates a new ledger Service
func New(store recordstore.Store, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// MovesForRound returns the moves currently visible under a round.
// At most one move per player: if duplicates raced past write-time
// validation on different peers, the first one in causal order wins.
func (s *Service) MovesForRound(ctx context.Context, roundRef model.Ref) ([]model.Move, error) {
	recs, err := s.store.ListTag(ctx, recordstore.TagMoves(roundRef))
	if err != nil {
		return nil, err
	}

	seen := make(map[model.PlayerID]bool)
	var moves []model.Move
	for _, rec := range recs {
		var mv model.Move
		if err := rec.Decode(&mv); err != nil {
			return nil, err
		}
		if seen[mv.PlayerID] {
			continue
		}
		seen[mv.PlayerID] = true
		mv.Seq = rec.Seq
		moves = append(moves, mv)
	}

	return moves, nil
}

// HasPlayerMoved reports whether a move by the given player is visible
// under the round
func (s *Service) HasPlayerMoved(ctx context.Context, roundRef model.Ref, playerID model.PlayerID) (bool, error) {
	moves, err := s.MovesForRound(ctx, roundRef)
	if err != nil {
		return false, err
	}
	for _, mv := range moves {
		if mv.PlayerID == playerID {
			return true, nil
		}
	}
	return false, nil
}
