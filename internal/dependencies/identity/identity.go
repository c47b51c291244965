package identity

import (
	"context"

	"github.com/commonsgame/commons-go/internal/model"
)

// Provider supplies the identity of the peer executing the current
// operation. Every record a peer appends is attributed to this identity.
type Provider interface {
	Current(ctx context.Context) (model.PlayerID, error)
}

// Local is a Provider backed by a fixed identity, stable for the
// lifetime of the peer process.
// Note: the identity is tied to the peer install, so reinstalling the
// peer effectively creates a new player.
type Local struct {
	id model.PlayerID
}

// New creates a Local provider for the given identity
func New(id model.PlayerID) *Local {
	return &Local{id: id}
}

// Current returns the peer's identity
func (l *Local) Current(ctx context.Context) (model.PlayerID, error) {
	return l.id, nil
}
