package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/commonsgame/commons-go/internal/dependencies/clock"
	"github.com/commonsgame/commons-go/internal/dependencies/identity"
	"github.com/commonsgame/commons-go/internal/model"
	"github.com/commonsgame/commons-go/internal/recordstore"
	"github.com/commonsgame/commons-go/internal/services/directory"
)

// Service owns game sessions: starting a session for a code and
// querying the sessions the calling peer owns
type Service struct {
	store     recordstore.Store
	directory *directory.Service
	identity  identity.Provider
	clock     clock.Clock
	params    model.GameParams
	logger    *slog.Logger
}

// New creates a new session Service. params are the game constants every
// session started by this peer is played under.
func New(
	store recordstore.Store,
	directory *directory.Service,
	identity identity.Provider,
	clock clock.Clock,
	params model.GameParams,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:     store,
		directory: directory,
		identity:  identity,
		clock:     clock,
		params:    params,
		logger:    logger,
	}
}

// StartGameSessionWithCode creates a session whose roster is the current
// snapshot of registrations for the code, plus its round zero.
//
// Any player who has joined the code may start a session, and several
// players may do so independently: there is no locking authority, so
// each invocation deliberately yields its own session.
func (s *Service) StartGameSessionWithCode(ctx context.Context, code string) (*model.StartedSession, error) {
	players, err := s.directory.GetPlayersForGameCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if len(players) == 0 {
		return nil, model.ErrNoPlayers
	}

	me, err := s.identity.Current(ctx)
	if err != nil {
		return nil, err
	}

	roster := make([]model.PlayerID, len(players))
	inRoster := false
	for i, p := range players {
		roster[i] = p.PlayerID
		if p.PlayerID == me {
			inRoster = true
		}
	}
	if !inRoster {
		return nil, model.ErrNotInRoster
	}

	anchorRef, err := s.directory.ResolveGameCodeAnchor(ctx, code)
	if err != nil {
		return nil, err
	}

	normalized, err := model.NormalizeGameCode(code)
	if err != nil {
		return nil, err
	}

	gameSession := model.GameSession{
		Owner:     me,
		Code:      normalized,
		AnchorRef: anchorRef,
		Players:   roster,
		Params:    s.params,
	}
	sessionRec, err := recordstore.NewRecord(model.KindGameSession, me, s.clock.Now(), gameSession)
	if err != nil {
		return nil, err
	}
	sessionRef, err := s.store.Append(ctx, sessionRec, recordstore.TagSessions(anchorRef))
	if err != nil {
		return nil, err
	}

	// Round zero collects the first moves; its start amount is the
	// configured pool size
	roundZero := model.Round{
		SessionRef:  sessionRef,
		RoundNum:    0,
		StartAmount: s.params.StartAmount,
	}
	roundRec, err := recordstore.NewRecord(model.KindRound, me, s.clock.Now(), roundZero)
	if err != nil {
		return nil, err
	}
	roundRef, err := s.store.Append(ctx, roundRec, recordstore.TagRounds(sessionRef))
	if err != nil {
		return nil, err
	}

	s.logger.Info("game session started",
		slog.String("code", normalized),
		slog.String("session_ref", string(sessionRef)),
		slog.String("round_ref", string(roundRef)),
		slog.Int("player_count", len(roster)),
	)

	return &model.StartedSession{
		SessionRef: sessionRef,
		RoundRef:   roundRef,
	}, nil
}

// GetMyOwnedSessions returns the sessions the calling peer started, from
// its own index of appended records. Sessions the peer merely plays in
// are never included.
func (s *Service) GetMyOwnedSessions(ctx context.Context) ([]model.OwnedSession, error) {
	me, err := s.identity.Current(ctx)
	if err != nil {
		return nil, err
	}

	recs, err := s.store.ListByAuthor(ctx, me, model.KindGameSession)
	if err != nil {
		return nil, err
	}

	var sessions []model.OwnedSession
	for _, rec := range recs {
		var gs model.GameSession
		if err := rec.Decode(&gs); err != nil {
			return nil, err
		}
		if gs.Owner != me {
			continue
		}
		sessions = append(sessions, model.OwnedSession{
			Ref:     rec.Ref(),
			Session: gs,
		})
	}

	return sessions, nil
}

// GetSession fetches a session by reference
func (s *Service) GetSession(ctx context.Context, ref model.Ref) (*model.GameSession, error) {
	rec, err := s.store.Fetch(ctx, ref)
	if err != nil {
		if errors.Is(err, model.ErrRecordNotFound) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}
	if rec.Kind != model.KindGameSession {
		return nil, model.ErrSessionNotFound
	}
	var gs model.GameSession
	if err := rec.Decode(&gs); err != nil {
		return nil, err
	}
	return &gs, nil
}
