package clock

import "time"

// Clock abstracts the time source so click timestamps are reproducible in tests.
type Clock interface {
	Now() time.Time
}

// Real uses the standard library time functions.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

// Fixed always returns the same instant.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time { return f.At }
