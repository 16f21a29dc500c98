package core

import "time"

// TimeKind selects which clock a timer advances with
type TimeKind uint8

const (
	// TimeScaled is game time: affected by pause and time scaling
	TimeScaled TimeKind = iota
	// TimeReal is wall time: unaffected by pause
	TimeReal
)

// Time carries the per-tick deltas injected into every evaluation.
// The engine never reads real clocks; hosts construct Time once per tick,
// which keeps evaluation deterministic and replayable.
type Time struct {
	// Delta is the scaled (game) time advance for this tick
	Delta time.Duration
	// RealDelta is the unscaled wall-time advance for this tick
	RealDelta time.Duration
}

// NewTime creates a Time with equal scaled and real deltas
func NewTime(delta time.Duration) Time {
	return Time{Delta: delta, RealDelta: delta}
}

// DeltaSecs returns the scaled delta in seconds
func (t Time) DeltaSecs() float64 {
	return t.Delta.Seconds()
}

// DeltaKind returns the delta for the given time kind
func (t Time) DeltaKind(kind TimeKind) time.Duration {
	if kind == TimeReal {
		return t.RealDelta
	}
	return t.Delta
}

// DeltaKindSecs returns the delta for the given time kind in seconds
func (t Time) DeltaKindSecs(kind TimeKind) float64 {
	return t.DeltaKind(kind).Seconds()
}
