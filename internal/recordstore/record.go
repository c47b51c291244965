package recordstore

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/commonsgame/commons-go/internal/model"
)

// Record is the immutable envelope every entity is stored in.
// Kind, Author and Payload determine the content address; CreatedAt and
// Seq are envelope metadata and do not affect it. Seq is assigned by the
// store at append time and gives the logical/causal order of records.
type Record struct {
	Kind      model.Kind      `json:"kind"`
	Author    model.PlayerID  `json:"author,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	Seq       uint64          `json:"seq"`
	Payload   json.RawMessage `json:"payload"`
}

// NewRecord builds a record for the given entity.
// Author is empty for authorless records such as anchors.
func NewRecord(kind model.Kind, author model.PlayerID, createdAt time.Time, entity any) (*Record, error) {
	payload, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", kind, err)
	}
	return &Record{
		Kind:      kind,
		Author:    author,
		CreatedAt: createdAt,
		Payload:   payload,
	}, nil
}

// Ref computes the record's content address: BLAKE2b-256 over the kind,
// author and payload. Deterministic across peers, so the same content
// always resolves to the same address.
func (r *Record) Ref() model.Ref {
	h, _ := blake2b.New256(nil)
	_, _ = h.Write([]byte(r.Kind))
	_, _ = h.Write([]byte{'\n'})
	_, _ = h.Write([]byte(r.Author))
	_, _ = h.Write([]byte{'\n'})
	_, _ = h.Write(r.Payload)
	return model.Ref(hex.EncodeToString(h.Sum(nil)))
}

// Decode unmarshals the record payload into the given entity
func (r *Record) Decode(entity any) error {
	if err := json.Unmarshal(r.Payload, entity); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", r.Kind, err)
	}
	return nil
}
