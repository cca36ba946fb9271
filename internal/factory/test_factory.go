package factory

import (
	"time"

	"github.com/MiracleBell/java-go-game/internal/dependencies/mocks"
	"github.com/MiracleBell/java-go-game/internal/services/auth"
	"github.com/MiracleBell/java-go-game/internal/storage/memory"
	"github.com/MiracleBell/java-go-game/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	app := newWithDependencies(store, mockClock, auth.DefaultConfig(), 9, testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
