package clock

import "time"

// Clock supplies the current instant for all temporal comparisons. Services
// receive it as a dependency so tests can pin "now" and interval boundaries
// stay deterministic.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// System returns a Clock backed by the wall clock in UTC.
func System() Clock {
	return systemClock{}
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}

// Fixed returns a Clock frozen at t. Intended for tests.
func Fixed(t time.Time) Clock {
	return fixedClock{t: t}
}
