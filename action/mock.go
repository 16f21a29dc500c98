package action

import "time"

// SpanKind discriminates how long a mock stays enabled
type SpanKind uint8

const (
	// SpanUpdates keeps the mock active for a fixed number of evaluations
	SpanUpdates SpanKind = iota
	// SpanDuration keeps the mock active for a game-time duration
	SpanDuration
	// SpanManual keeps the mock active until Enabled is cleared by hand
	SpanManual
)

// MockSpan bounds the lifetime of a Mock
type MockSpan struct {
	Kind     SpanKind
	Updates  uint32
	Duration time.Duration
}

// Updates creates a span of a fixed number of evaluations
func Updates(n uint32) MockSpan {
	return MockSpan{Kind: SpanUpdates, Updates: n}
}

// For creates a span of a game-time duration
func For(d time.Duration) MockSpan {
	return MockSpan{Kind: SpanDuration, Duration: d}
}

// Manual creates a span that never expires on its own
func Manual() MockSpan {
	return MockSpan{Kind: SpanManual}
}

// Mock overrides an action's state and value for a bounded span.
// While enabled, binding evaluation is skipped entirely and the action
// reports the mocked state and value; lifecycle events still fire as usual
// during the apply phase. Expiry clears Enabled but keeps the record so it
// can be re-armed.
type Mock struct {
	State   State
	Value   Value
	Span    MockSpan
	Enabled bool
}

// NewMock creates an enabled mock with the given state, value and span
func NewMock(state State, value Value, span MockSpan) *Mock {
	return &Mock{State: state, Value: value, Span: span, Enabled: true}
}

// MockOnce creates an enabled mock lasting a single evaluation
func MockOnce(state State, value Value) *Mock {
	return NewMock(state, value, Updates(1))
}

// Advance consumes one evaluation worth of the span and reports whether the
// span expired on this call
func (m *Mock) Advance(delta time.Duration) bool {
	switch m.Span.Kind {
	case SpanUpdates:
		if m.Span.Updates > 0 {
			m.Span.Updates--
		}
		return m.Span.Updates == 0
	case SpanDuration:
		m.Span.Duration -= delta
		if m.Span.Duration <= 0 {
			m.Span.Duration = 0
			return true
		}
		return false
	default:
		return false
	}
}
