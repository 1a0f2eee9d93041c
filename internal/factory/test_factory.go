package factory

import (
	"time"

	"github.com/jkothapalli/netpong/internal/dependencies/mocks"
	"github.com/jkothapalli/netpong/internal/game"
	"github.com/jkothapalli/netpong/internal/secure"
	"github.com/jkothapalli/netpong/internal/storage/memory"
	"github.com/jkothapalli/netpong/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	return NewTestAppWithTuning(game.DefaultTuning())
}

// NewTestAppWithTuning creates a test App with custom court parameters,
// letting tests shorten matches by lowering the win score
func NewTestAppWithTuning(tuning game.Tuning) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	var key [secure.KeySize]byte
	copy(key[:], "test-key-test-key-test-key-0123!")

	app := newWithDependencies(
		store,
		mockClock,
		mockRandom,
		mocks.NewPlainHasher(),
		key,
		tuning,
		0,
		testutil.NopLogger(),
	)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
