package testutil

import (
	"time"

	"github.com/light-bringer/perfume-catalog/internal/pkg/clock"
)

// Epoch is the default start time of test clocks.
var Epoch = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

// NewMockClock creates a mock clock at Epoch that can be controlled in tests.
func NewMockClock() *clock.MockClock {
	return clock.NewMockClock(Epoch)
}
