package core

import (
	"testing"
	"time"
)

func TestNewTimeEqualDeltas(t *testing.T) {
	tm := NewTime(50 * time.Millisecond)
	if tm.Delta != tm.RealDelta {
		t.Errorf("expected equal deltas, got %v and %v", tm.Delta, tm.RealDelta)
	}
	if tm.DeltaSecs() != 0.05 {
		t.Errorf("expected 0.05s, got %v", tm.DeltaSecs())
	}
}

func TestDeltaKindSelectsClock(t *testing.T) {
	tm := Time{Delta: 10 * time.Millisecond, RealDelta: 20 * time.Millisecond}
	if got := tm.DeltaKind(TimeScaled); got != 10*time.Millisecond {
		t.Errorf("scaled delta = %v", got)
	}
	if got := tm.DeltaKind(TimeReal); got != 20*time.Millisecond {
		t.Errorf("real delta = %v", got)
	}
	if got := tm.DeltaKindSecs(TimeReal); got != 0.02 {
		t.Errorf("real delta secs = %v", got)
	}
}
