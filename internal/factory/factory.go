package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/commonsgame/commons-go/internal/dependencies/clock"
	"github.com/commonsgame/commons-go/internal/dependencies/identity"
	"github.com/commonsgame/commons-go/internal/dependencies/random"
	"github.com/commonsgame/commons-go/internal/model"
	"github.com/commonsgame/commons-go/internal/recordstore"
	"github.com/commonsgame/commons-go/internal/recordstore/memory"
	redisstore "github.com/commonsgame/commons-go/internal/recordstore/redis"
	"github.com/commonsgame/commons-go/internal/services/directory"
	"github.com/commonsgame/commons-go/internal/services/ledger"
	"github.com/commonsgame/commons-go/internal/services/round"
	"github.com/commonsgame/commons-go/internal/services/session"
)

// Store type constants
const (
	StoreTypeMemory = "memory"
	StoreTypeRedis  = "redis"
)

// App contains all wired application components for one peer
type App struct {
	// Record store
	Store recordstore.Store

	// External dependencies
	Clock    clock.Clock
	Random   random.Random
	Identity identity.Provider

	// Services
	DirectoryService *directory.Service
	LedgerService    *ledger.Service
	SessionService   *session.Service
	RoundService     *round.Service
}

// Config holds configuration for the application factory
type Config struct {
	// PlayerID is the peer's identity
	PlayerID model.PlayerID
	// Params are the game constants sessions are started with
	// If zero value, defaults to model.DefaultGameParams()
	Params model.GameParams
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StoreType selects the record store backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StoreType string
	// RedisConfig holds Redis connection settings (required if StoreType is "redis")
	RedisConfig *redisstore.Config
}

// New creates a new peer application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	if cfg.PlayerID == "" {
		return nil, errors.New("PlayerID is required")
	}

	var store recordstore.Store
	storeType := cfg.StoreType
	if storeType == "" {
		storeType = StoreTypeMemory
	}

	switch storeType {
	case StoreTypeMemory:
		store = memory.New()
	case StoreTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StoreType is redis")
		}
		redisStore, err := redisstore.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StoreType: must be 'memory' or 'redis'")
	}

	params := cfg.Params
	if params.StartAmount == 0 && params.MaxRounds == 0 {
		params = model.DefaultGameParams()
	}

	clk := clock.New()
	rnd := random.New()
	ident := identity.New(cfg.PlayerID)

	return newWithDependencies(store, clk, rnd, ident, params, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store recordstore.Store,
	clk clock.Clock,
	rnd random.Random,
	ident identity.Provider,
	params model.GameParams,
	logger *slog.Logger,
) *App {
	directoryService := directory.New(store, ident, clk, logger)
	ledgerService := ledger.New(store, logger)
	sessionService := session.New(store, directoryService, ident, clk, params, logger)
	roundService := round.New(store, ledgerService, sessionService, ident, clk, logger)

	return &App{
		Store:            store,
		Clock:            clk,
		Random:           rnd,
		Identity:         ident,
		DirectoryService: directoryService,
		LedgerService:    ledgerService,
		SessionService:   sessionService,
		RoundService:     roundService,
	}
}
