package round

import (
	"context"
	"errors"
	"log/slog"

	"github.com/commonsgame/commons-go/internal/dependencies/clock"
	"github.com/commonsgame/commons-go/internal/dependencies/identity"
	"github.com/commonsgame/commons-go/internal/model"
	"github.com/commonsgame/commons-go/internal/recordstore"
	"github.com/commonsgame/commons-go/internal/services/ledger"
	"github.com/commonsgame/commons-go/internal/services/session"
)

// Service is the round state machine: it records moves and decides,
// from the locally visible subset of the global state, whether a round
// can close and what comes next.
//
// Every decision is a pure function of the visible records, safe to
// evaluate on partial data (it answers WAIT rather than guess) and safe
// to re-evaluate any number of times.
type Service struct {
	store    recordstore.Store
	ledger   *ledger.Service
	sessions *session.Service
	identity identity.Provider
	clock    clock.Clock
	logger   *slog.Logger
}

// New creates a new round Service
func New(
	store recordstore.Store,
	ledger *ledger.Service,
	sessions *session.Service,
	identity identity.Provider,
	clock clock.Clock,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:    store,
		ledger:   ledger,
		sessions: sessions,
		identity: identity,
		clock:    clock,
		logger:   logger,
	}
}

// GetRound fetches a round by reference
func (s *Service) GetRound(ctx context.Context, ref model.Ref) (*model.Round, error) {
	rec, err := s.store.Fetch(ctx, ref)
	if err != nil {
		if errors.Is(err, model.ErrRecordNotFound) {
			return nil, model.ErrRoundNotFound
		}
		return nil, err
	}
	if rec.Kind != model.KindRound {
		return nil, model.ErrRoundNotFound
	}
	var r model.Round
	if err := rec.Decode(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

// GetRoundStatus returns a read-only view of a round: its data, the
// currently visible moves, and whether a successor exists
func (s *Service) GetRoundStatus(ctx context.Context, roundRef model.Ref) (*model.RoundStatus, error) {
	r, err := s.GetRound(ctx, roundRef)
	if err != nil {
		return nil, err
	}

	moves, err := s.ledger.MovesForRound(ctx, roundRef)
	if err != nil {
		return nil, err
	}

	successors, err := s.store.ListTag(ctx, recordstore.TagSuccessors(roundRef))
	if err != nil {
		return nil, err
	}

	return &model.RoundStatus{
		Ref:    roundRef,
		Round:  *r,
		Moves:  moves,
		Closed: len(successors) > 0,
	}, nil
}

// MakeNewMove appends a move by the calling peer to the given round.
// No cross-player coordination happens here: concurrent moves from
// different players are independent, order-commutative appends.
func (s *Service) MakeNewMove(ctx context.Context, roundRef model.Ref, amount model.ResourceAmount) (model.Ref, error) {
	r, err := s.GetRound(ctx, roundRef)
	if err != nil {
		return "", err
	}

	closed, err := s.hasSuccessor(ctx, roundRef)
	if err != nil {
		return "", err
	}
	if closed {
		return "", model.ErrRoundClosed
	}

	if amount < 0 || amount > r.StartAmount {
		return "", model.ErrInvalidResourceAmount
	}

	gameSession, err := s.sessions.GetSession(ctx, r.SessionRef)
	if err != nil {
		return "", err
	}

	me, err := s.identity.Current(ctx)
	if err != nil {
		return "", err
	}
	if !gameSession.HasPlayer(me) {
		return "", model.ErrNotInRoster
	}

	moved, err := s.ledger.HasPlayerMoved(ctx, roundRef, me)
	if err != nil {
		return "", err
	}
	if moved {
		return "", model.ErrAlreadyMoved
	}

	move := model.Move{
		RoundRef:       roundRef,
		PlayerID:       me,
		ResourceAmount: amount,
	}
	rec, err := recordstore.NewRecord(model.KindMove, me, s.clock.Now(), move)
	if err != nil {
		return "", err
	}
	ref, err := s.store.Append(ctx, rec, recordstore.TagMoves(roundRef))
	if err != nil {
		return "", err
	}

	s.logger.Info("move made",
		slog.String("round_ref", string(roundRef)),
		slog.String("player_id", string(me)),
		slog.Int("amount", int(amount)),
	)

	return ref, nil
}

// TryToCloseRound evaluates the round for closure. Any roster member
// may call it at any time; it is idempotent, and callers are expected
// to retry while it reports WAIT, since move propagation is
// asynchronous.
//
// If a successor is already visible the call adopts it instead of
// creating another; when concurrent closures have produced more than
// one candidate the lowest reference wins, so all peers converge on the
// same chain once propagation completes.
func (s *Service) TryToCloseRound(ctx context.Context, roundRef model.Ref) (*model.ClosureOutcome, error) {
	r, err := s.GetRound(ctx, roundRef)
	if err != nil {
		return nil, err
	}

	if outcome, err := s.adoptSuccessor(ctx, roundRef); outcome != nil || err != nil {
		return outcome, err
	}

	gameSession, err := s.sessions.GetSession(ctx, r.SessionRef)
	if err != nil {
		return nil, err
	}

	me, err := s.identity.Current(ctx)
	if err != nil {
		return nil, err
	}
	if !gameSession.HasPlayer(me) {
		return nil, model.ErrNotInRoster
	}

	moves, err := s.ledger.MovesForRound(ctx, roundRef)
	if err != nil {
		return nil, err
	}

	taken := model.ResourceAmount(0)
	moved := make(map[model.PlayerID]bool, len(moves))
	for _, mv := range moves {
		moved[mv.PlayerID] = true
		taken += mv.ResourceAmount
	}

	params := gameSession.Params
	raw := r.StartAmount - taken
	remaining := raw
	if remaining < params.DepletionFloor {
		remaining = params.DepletionFloor
	}

	// Closure never proceeds on partial data: if any roster member's
	// move is not visible yet, the only safe answer is WAIT. Moves are
	// immutable and at most one per player, so once propagation
	// completes every peer reaches the same decision.
	for _, p := range gameSession.Players {
		if !moved[p] {
			return &model.ClosureOutcome{
				NextAction:              model.NextActionWait,
				RemainingResourceAmount: remaining,
			}, nil
		}
	}

	stats := make(model.PlayerStats, len(moves))
	for _, mv := range moves {
		stats[mv.PlayerID] = mv.ResourceAmount
	}

	// The floor fires on the round that drives the pool through it;
	// landing exactly on the floor still starts another round
	depleted := raw < params.DepletionFloor
	roundsExhausted := r.RoundNum+1 >= params.MaxRounds

	if (params.DepletionPolicy.EndsOnFloor() && depleted) ||
		(params.DepletionPolicy.EndsOnRounds() && roundsExhausted) {
		return s.endGame(ctx, roundRef, r, gameSession, me, remaining, depleted, stats)
	}

	return s.startNextRound(ctx, roundRef, r, params, me, remaining, taken, stats)
}

func (s *Service) startNextRound(
	ctx context.Context,
	roundRef model.Ref,
	r *model.Round,
	params model.GameParams,
	me model.PlayerID,
	remaining model.ResourceAmount,
	taken model.ResourceAmount,
	stats model.PlayerStats,
) (*model.ClosureOutcome, error) {
	nextStart := remaining
	if params.RegenerationFactor != 1.0 {
		nextStart = model.ResourceAmount(float64(remaining) * params.RegenerationFactor)
	}

	next := model.Round{
		SessionRef:     r.SessionRef,
		RoundNum:       r.RoundNum + 1,
		PrevRoundRef:   roundRef,
		StartAmount:    nextStart,
		ResourcesTaken: taken,
		ResourcesGrown: nextStart - remaining,
		PlayerStats:    stats,
	}
	rec, err := recordstore.NewRecord(model.KindRound, me, s.clock.Now(), next)
	if err != nil {
		return nil, err
	}
	ref, err := s.store.Append(ctx, rec,
		recordstore.TagSuccessors(roundRef),
		recordstore.TagRounds(r.SessionRef),
	)
	if err != nil {
		return nil, err
	}

	s.logger.Info("round closed, next round started",
		slog.String("round_ref", string(roundRef)),
		slog.String("next_round_ref", string(ref)),
		slog.Int("round_num", next.RoundNum),
		slog.Int("remaining", int(remaining)),
	)

	return &model.ClosureOutcome{
		NextAction:              model.NextActionStartNextRound,
		NextRoundRef:            ref,
		RemainingResourceAmount: remaining,
	}, nil
}

func (s *Service) endGame(
	ctx context.Context,
	roundRef model.Ref,
	r *model.Round,
	gameSession *model.GameSession,
	me model.PlayerID,
	remaining model.ResourceAmount,
	depleted bool,
	stats model.PlayerStats,
) (*model.ClosureOutcome, error) {
	outcome := model.OutcomeCompleted
	if depleted {
		outcome = model.OutcomeDepleted
	}

	scores, err := s.finalScores(ctx, r, stats)
	if err != nil {
		return nil, err
	}

	result := model.GameResult{
		SessionRef:        r.SessionRef,
		LastRoundRef:      roundRef,
		Outcome:           outcome,
		RemainingResource: remaining,
		FinalScores:       scores,
	}
	rec, err := recordstore.NewRecord(model.KindGameResult, me, s.clock.Now(), result)
	if err != nil {
		return nil, err
	}
	ref, err := s.store.Append(ctx, rec,
		recordstore.TagSuccessors(roundRef),
		recordstore.TagResults(r.SessionRef),
	)
	if err != nil {
		return nil, err
	}

	s.logger.Info("game ended",
		slog.String("round_ref", string(roundRef)),
		slog.String("result_ref", string(ref)),
		slog.String("outcome", string(outcome)),
		slog.Int("remaining", int(remaining)),
	)

	return &model.ClosureOutcome{
		NextAction:              model.NextActionShowGameResults,
		ResultRef:               ref,
		RemainingResourceAmount: remaining,
	}, nil
}

// finalScores totals each player's consumption over the whole round
// chain: the closing round's moves plus the stats carried by every
// earlier round.
func (s *Service) finalScores(ctx context.Context, last *model.Round, lastStats model.PlayerStats) (model.PlayerStats, error) {
	scores := make(model.PlayerStats, len(lastStats))
	for p, amount := range lastStats {
		scores[p] += amount
	}

	r := last
	for r.PrevRoundRef != "" {
		for p, amount := range r.PlayerStats {
			scores[p] += amount
		}
		prev, err := s.GetRound(ctx, r.PrevRoundRef)
		if err != nil {
			return nil, err
		}
		r = prev
	}

	return scores, nil
}

func (s *Service) hasSuccessor(ctx context.Context, roundRef model.Ref) (bool, error) {
	successors, err := s.store.ListTag(ctx, recordstore.TagSuccessors(roundRef))
	if err != nil {
		return false, err
	}
	return len(successors) > 0, nil
}

// adoptSuccessor returns the closure outcome for an already-closed
// round, or nil if no successor is visible. With several concurrent
// successor candidates the lowest reference is chosen, deterministically
// on every peer.
func (s *Service) adoptSuccessor(ctx context.Context, roundRef model.Ref) (*model.ClosureOutcome, error) {
	successors, err := s.store.ListTag(ctx, recordstore.TagSuccessors(roundRef))
	if err != nil {
		return nil, err
	}
	if len(successors) == 0 {
		return nil, nil
	}

	chosen := successors[0]
	chosenRef := chosen.Ref()
	for _, rec := range successors[1:] {
		if ref := rec.Ref(); ref < chosenRef {
			chosen = rec
			chosenRef = ref
		}
	}

	switch chosen.Kind {
	case model.KindRound:
		var next model.Round
		if err := chosen.Decode(&next); err != nil {
			return nil, err
		}
		return &model.ClosureOutcome{
			NextAction:              model.NextActionStartNextRound,
			NextRoundRef:            chosenRef,
			RemainingResourceAmount: next.StartAmount - next.ResourcesGrown,
		}, nil
	case model.KindGameResult:
		var result model.GameResult
		if err := chosen.Decode(&result); err != nil {
			return nil, err
		}
		return &model.ClosureOutcome{
			NextAction:              model.NextActionShowGameResults,
			ResultRef:               chosenRef,
			RemainingResourceAmount: result.RemainingResource,
		}, nil
	default:
		return nil, model.ErrRoundClosed
	}
}
