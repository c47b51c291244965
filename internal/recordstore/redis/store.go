package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/commonsgame/commons-go/internal/model"
	"github.com/commonsgame/commons-go/internal/recordstore"
)

// Store is a Redis-backed implementation of the record store, for peers
// sharing a replicated Redis deployment. Records are keyed by content
// address and never overwritten; tag and author fan-outs are sorted sets
// scored by the global append sequence.
type Store struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis store instance
func New(cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Store{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis store with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Store {
	return &Store{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// Ensure Store implements the interface
var _ recordstore.Store = (*Store)(nil)

func (s *Store) Append(ctx context.Context, rec *recordstore.Record, tags ...recordstore.Tag) (model.Ref, error) {
	ref := rec.Ref()

	exists, err := s.client.Exists(ctx, recordKey(ref)).Result()
	if err != nil {
		return "", err
	}
	if exists > 0 {
		// Same content already stored: idempotent no-op
		return ref, nil
	}

	seq, err := s.client.Incr(ctx, seqKey()).Result()
	if err != nil {
		return "", err
	}

	stored := *rec
	stored.Seq = uint64(seq)
	data, err := json.Marshal(&stored)
	if err != nil {
		return "", err
	}

	// Pipeline for atomic record + index writes.
	// SetNX keeps a concurrent append of the same content from
	// clobbering the record written first.
	pipe := s.client.Pipeline()
	pipe.SetNX(ctx, recordKey(ref), data, 0)
	for _, tag := range tags {
		pipe.ZAdd(ctx, tagKey(tag), redis.Z{Score: float64(seq), Member: string(ref)})
	}
	if rec.Author != "" {
		pipe.ZAdd(ctx, authorKey(rec.Author, rec.Kind), redis.Z{Score: float64(seq), Member: string(ref)})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return "", err
	}

	return ref, nil
}

func (s *Store) Fetch(ctx context.Context, ref model.Ref) (*recordstore.Record, error) {
	data, err := s.client.Get(ctx, recordKey(ref)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRecordNotFound
		}
		return nil, err
	}

	var rec recordstore.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) ListTag(ctx context.Context, tag recordstore.Tag) ([]*recordstore.Record, error) {
	refs, err := s.client.ZRange(ctx, tagKey(tag), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	return s.fetchAll(ctx, refs)
}

func (s *Store) ListByAuthor(ctx context.Context, author model.PlayerID, kind model.Kind) ([]*recordstore.Record, error) {
	refs, err := s.client.ZRange(ctx, authorKey(author, kind), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	return s.fetchAll(ctx, refs)
}

func (s *Store) fetchAll(ctx context.Context, refs []string) ([]*recordstore.Record, error) {
	var result []*recordstore.Record
	for _, ref := range refs {
		rec, err := s.Fetch(ctx, model.Ref(ref))
		if err != nil {
			if errors.Is(err, model.ErrRecordNotFound) {
				// Index entry propagated ahead of its record; skip it,
				// the next listing will include it
				continue
			}
			return nil, err
		}
		result = append(result, rec)
	}
	return result, nil
}
