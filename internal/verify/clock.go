package verify

import "time"

// Clock abstracts wall-clock measurement so the improvement loop's
// termination can be tested deterministically with a fake clock instead of
// real elapsed time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the real wall clock.
func SystemClock() Clock { return systemClock{} }
