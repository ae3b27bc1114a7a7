// Package clock supplies the timestamps written on payment method records.
package clock

import (
	"context"
	"time"
)

// Clock reports the current instant in UTC, so timestamps stored through
// different database drivers compare equal.
type Clock interface {
	Now(ctx context.Context) time.Time
}

// System reads the wall clock.
type System struct{}

func (System) Now(context.Context) time.Time {
	return time.Now().UTC()
}

// Fixed always reports the same instant.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now(context.Context) time.Time {
	return f.At.UTC()
}
