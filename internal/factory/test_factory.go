package factory

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/gameportal/internal/dependencies/mocks"
	"github.com/mcoot/gameportal/internal/portal"
	"github.com/mcoot/gameportal/internal/storage/memory"
	"github.com/mcoot/gameportal/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock   *mocks.MockClock
	MockRandom  *mocks.MockRandom
	MemoryStore *memory.Storage
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Password hashing uses the minimum bcrypt cost.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	cfg := portal.DefaultConfig()
	cfg.Auth.BcryptCost = bcrypt.MinCost

	app := newWithDependencies(store, mockClock, mockRandom, cfg, testutil.NopLogger())

	return &TestApp{
		App:         app,
		MockClock:   mockClock,
		MockRandom:  mockRandom,
		MemoryStore: store,
	}
}
