package fluency

import "time"

// Scheduler runs fn every interval until the returned stop func is called.
//
// Implementations must invoke fn on the same logical thread that calls the
// Test's operations, and must never invoke fn after stop has been called.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (stop func())
}

