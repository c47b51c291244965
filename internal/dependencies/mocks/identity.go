package mocks

import (
	"context"

	"github.com/commonsgame/commons-go/internal/dependencies/identity"
	"github.com/commonsgame/commons-go/internal/model"
)

// MockIdentity is a mock identity provider for testing.
// Set ID directly to act as a different peer mid-test.
type MockIdentity struct {
	ID model.PlayerID
}

// Ensure MockIdentity implements Provider
var _ identity.Provider = (*MockIdentity)(nil)

// NewMockIdentity creates a MockIdentity with the given identity
func NewMockIdentity(id model.PlayerID) *MockIdentity {
	return &MockIdentity{ID: id}
}

// Current returns the mocked identity
func (m *MockIdentity) Current(ctx context.Context) (model.PlayerID, error) {
	return m.ID, nil
}
