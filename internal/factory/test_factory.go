package factory

import (
	"time"

	"github.com/commonsgame/commons-go/internal/dependencies/mocks"
	"github.com/commonsgame/commons-go/internal/model"
	"github.com/commonsgame/commons-go/internal/recordstore"
	"github.com/commonsgame/commons-go/internal/recordstore/memory"
	"github.com/commonsgame/commons-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock    *mocks.MockClock
	MockRandom   *mocks.MockRandom
	MockIdentity *mocks.MockIdentity

	// MemoryStore is the shared store, for propagation control
	MemoryStore *memory.Store
}

// NewTestApp creates a peer App for testing with mocked dependencies and
// its own in-memory store
func NewTestApp(id model.PlayerID, params model.GameParams) *TestApp {
	return NewTestAppWithStore(memory.New(), id, params)
}

// NewTestAppWithStore creates a peer App on an existing store. Building
// several apps over one store stands in for several peers sharing the
// replicated substrate.
func NewTestAppWithStore(store recordstore.Store, id model.PlayerID, params model.GameParams) *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockIdentity := mocks.NewMockIdentity(id)

	app := newWithDependencies(store, mockClock, mockRandom, mockIdentity, params, testutil.NopLogger())

	memStore, _ := store.(*memory.Store)

	return &TestApp{
		App:          app,
		MockClock:    mockClock,
		MockRandom:   mockRandom,
		MockIdentity: mockIdentity,
		MemoryStore:  memStore,
	}
}
