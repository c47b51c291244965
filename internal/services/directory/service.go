package directory

import (
	"context"
	"errors"
	"log/slog"

	"github.com/commonsgame/commons-go/internal/dependencies/clock"
	"github.com/commonsgame/commons-go/internal/dependencies/identity"
	"github.com/commonsgame/commons-go/internal/model"
	"github.com/commonsgame/commons-go/internal/recordstore"
)

// Service maps human-entered game codes to discoverable anchors and the
// players registered against them
type Service struct {
	store    recordstore.Store
	identity identity.Provider
	clock    clock.Clock
	logger   *slog.Logger
}

// New creates a new directory Service
func New(store recordstore.Store, identity identity.Provider, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		identity: identity,
		clock:    clock,
		logger:   logger,
	}
}

// CreateGameCodeAnchor creates the anchor for a game code.
// Anchors are authorless and content-addressed, so creating the same
// code twice resolves to the same reference on every peer.
func (s *Service) CreateGameCodeAnchor(ctx context.Context, code string) (model.Ref, error) {
	normalized, err := model.NormalizeGameCode(code)
	if err != nil {
		return "", err
	}

	rec, err := anchorRecord(normalized, s.clock)
	if err != nil {
		return "", err
	}

	ref, err := s.store.Append(ctx, rec, recordstore.TagGameCodes())
	if err != nil {
		return "", err
	}

	s.logger.Info("game code anchor created",
		slog.String("code", normalized),
		slog.String("ref", string(ref)),
	)

	return ref, nil
}

// ResolveGameCodeAnchor returns the anchor reference for a code, or
// model.ErrGameCodeNotFound if no anchor is visible for it yet.
// The reference is derived from the code alone, without writing: peers
// that only know the code can still find the anchor.
func (s *Service) ResolveGameCodeAnchor(ctx context.Context, code string) (model.Ref, error) {
	normalized, err := model.NormalizeGameCode(code)
	if err != nil {
		return "", err
	}

	rec, err := anchorRecord(normalized, s.clock)
	if err != nil {
		return "", err
	}
	ref := rec.Ref()

	if _, err := s.store.Fetch(ctx, ref); err != nil {
		if errors.Is(err, model.ErrRecordNotFound) {
			return "", model.ErrGameCodeNotFound
		}
		return "", err
	}

	return ref, nil
}

// JoinGameWithCode registers the calling peer under the code's anchor
// with the given nickname. Registration is idempotent: joining a code
// twice resolves to the already-visible registration.
func (s *Service) JoinGameWithCode(ctx context.Context, code string, nickname string) (model.Ref, error) {
	normalized, err := model.NormalizeGameCode(code)
	if err != nil {
		return "", err
	}
	if nickname == "" {
		return "", model.ErrInvalidNickname
	}

	anchorRef, err := s.ResolveGameCodeAnchor(ctx, normalized)
	if err != nil {
		return "", err
	}

	me, err := s.identity.Current(ctx)
	if err != nil {
		return "", err
	}

	// Duplicate registration resolves to the existing record
	existing, err := s.store.ListTag(ctx, recordstore.TagPlayers(anchorRef))
	if err != nil {
		return "", err
	}
	for _, rec := range existing {
		var reg model.PlayerRegistration
		if err := rec.Decode(&reg); err != nil {
			return "", err
		}
		if reg.PlayerID == me {
			return rec.Ref(), nil
		}
	}

	registration := model.PlayerRegistration{
		Code:     normalized,
		PlayerID: me,
		Nickname: nickname,
	}
	rec, err := recordstore.NewRecord(model.KindPlayerRegistration, me, s.clock.Now(), registration)
	if err != nil {
		return "", err
	}

	ref, err := s.store.Append(ctx, rec, recordstore.TagPlayers(anchorRef))
	if err != nil {
		return "", err
	}

	s.logger.Info("player joined game",
		slog.String("code", normalized),
		slog.String("player_id", string(me)),
		slog.String("nickname", nickname),
	)

	return ref, nil
}

// GetPlayersForGameCode returns the registrations discoverable under the
// code's anchor at query time. The result is a best-effort snapshot:
// late-propagating registrations appear on later queries, and results
// only ever grow between calls.
func (s *Service) GetPlayersForGameCode(ctx context.Context, code string) ([]model.PlayerRegistration, error) {
	anchorRef, err := s.ResolveGameCodeAnchor(ctx, code)
	if err != nil {
		return nil, err
	}

	recs, err := s.store.ListTag(ctx, recordstore.TagPlayers(anchorRef))
	if err != nil {
		return nil, err
	}

	// First registration per player wins; the store returns records in
	// causal order
	seen := make(map[model.PlayerID]bool)
	var players []model.PlayerRegistration
	for _, rec := range recs {
		var reg model.PlayerRegistration
		if err := rec.Decode(&reg); err != nil {
			return nil, err
		}
		if seen[reg.PlayerID] {
			continue
		}
		seen[reg.PlayerID] = true
		reg.Seq = rec.Seq
		players = append(players, reg)
	}

	return players, nil
}

func anchorRecord(normalizedCode string, clk clock.Clock) (*recordstore.Record, error) {
	return recordstore.NewRecord(
		model.KindGameCodeAnchor,
		"", // authorless: every peer produces the identical record
		clk.Now(),
		model.GameCodeAnchor{Code: normalizedCode},
	)
}
