package audit

import "time"

// Clock abstracts wall-clock time so lockout and transition timing can be
// tested deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock returns a Clock backed by time.Now
func SystemClock() Clock {
	return systemClock{}
}
