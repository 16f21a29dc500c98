// Package modifier implements value transforms applied before condition
// evaluation. Modifiers are pure with respect to their inputs but may keep
// internal memory (smoothing state, previous values); invalid internal
// state self-corrects rather than erroring.
package modifier

import (
	"math"

	"github.com/lixenwraith/inputflow/action"
	"github.com/lixenwraith/inputflow/core"
)

// Modifier transforms a value on its way to the conditions.
type Modifier interface {
	Transform(actions action.Query, t core.Time, v action.Value) action.Value
}

// DeadZoneKind selects how the dead zone is measured.
type DeadZoneKind uint8

const (
	// DeadZoneRadial measures the whole vector's magnitude.
	DeadZoneRadial DeadZoneKind = iota
	// DeadZoneAxial measures each axis independently.
	DeadZoneAxial
)

// DeadZone discards input below Lower and rescales the rest so the output
// still spans the full 0..1 range at Upper.
type DeadZone struct {
	Kind  DeadZoneKind
	Lower float64
	Upper float64
}

func NewDeadZone() *DeadZone {
	return &DeadZone{Lower: 0.2, Upper: 1.0}
}

func (m *DeadZone) Transform(_ action.Query, _ core.Time, v action.Value) action.Value {
	lower, upper := m.Lower, m.Upper
	if upper <= lower {
		upper = lower + 1e-9
	}
	if m.Kind == DeadZoneAxial {
		return v.Map(func(a float64) float64 {
			return deadZoneAxis(a, lower, upper)
		})
	}
	mag := v.Magnitude()
	if mag <= lower {
		return action.Zero(v.Dim())
	}
	scale := math.Min((mag-lower)/(upper-lower), 1) / mag
	return v.With(v.X*scale, v.Y*scale, v.Z*scale)
}

func deadZoneAxis(a, lower, upper float64) float64 {
	abs := math.Abs(a)
	if abs <= lower {
		return 0
	}
	scaled := math.Min((abs-lower)/(upper-lower), 1)
	return math.Copysign(scaled, a)
}

// Scale multiplies each axis by a per-axis factor.
type Scale struct {
	X, Y, Z float64
}

// NewScale scales all axes uniformly.
func NewScale(factor float64) *Scale {
	return &Scale{X: factor, Y: factor, Z: factor}
}

func (m *Scale) Transform(_ action.Query, _ core.Time, v action.Value) action.Value {
	return v.With(v.X*m.X, v.Y*m.Y, v.Z*m.Z)
}

// Negate flips the sign of the selected axes.
type Negate struct {
	X, Y, Z bool
}

// NewNegate negates every axis.
func NewNegate() *Negate {
	return &Negate{X: true, Y: true, Z: true}
}

func (m *Negate) Transform(_ action.Query, _ core.Time, v action.Value) action.Value {
	x, y, z := v.X, v.Y, v.Z
	if m.X {
		x = -x
	}
	if m.Y {
		y = -y
	}
	if m.Z {
		z = -z
	}
	return v.With(x, y, z)
}

// Clamp bounds each axis to [Min, Max].
type Clamp struct {
	Min, Max float64
}

func NewClamp(min, max float64) *Clamp {
	return &Clamp{Min: min, Max: max}
}

func (m *Clamp) Transform(_ action.Query, _ core.Time, v action.Value) action.Value {
	lo, hi := m.Min, m.Max
	if hi < lo {
		lo, hi = hi, lo
	}
	return v.Map(func(a float64) float64 {
		return math.Min(math.Max(a, lo), hi)
	})
}

// Swizzle reorders value axes.
type Swizzle uint8

const (
	SwizzleYXZ Swizzle = iota
	SwizzleZYX
	SwizzleXZY
	SwizzleYZX
	SwizzleZXY
)

// SwizzleAxis remaps axes, e.g. routing a 1D key reading into Y for 2D
// movement actions.
type SwizzleAxis struct {
	Order Swizzle
}

func NewSwizzleAxis(order Swizzle) *SwizzleAxis {
	return &SwizzleAxis{Order: order}
}

func (m *SwizzleAxis) Transform(_ action.Query, _ core.Time, v action.Value) action.Value {
	x, y, z := v.X, v.Y, v.Z
	switch m.Order {
	case SwizzleYXZ:
		return v.With(y, x, z)
	case SwizzleZYX:
		return v.With(z, y, x)
	case SwizzleXZY:
		return v.With(x, z, y)
	case SwizzleYZX:
		return v.With(y, z, x)
	case SwizzleZXY:
		return v.With(z, x, y)
	}
	return v
}

// SmoothNudge eases the output toward the incoming value with an
// exponential decay, frame-rate independent.
type SmoothNudge struct {
	// DecaySpeed is the exponential decay rate per second. Higher snaps
	// faster; non-positive values pass the input through.
	DecaySpeed float64

	current action.Value
	primed  bool
}

func NewSmoothNudge() *SmoothNudge {
	return &SmoothNudge{DecaySpeed: 8}
}

func (m *SmoothNudge) Transform(_ action.Query, t core.Time, v action.Value) action.Value {
	if m.DecaySpeed <= 0 {
		return v
	}
	if !m.primed {
		m.primed = true
		m.current = v
		return v
	}
	alpha := 1 - math.Exp(-m.DecaySpeed*t.DeltaSecs())
	cur := m.current
	m.current = v.With(
		cur.X+(v.X-cur.X)*alpha,
		cur.Y+(v.Y-cur.Y)*alpha,
		cur.Z+(v.Z-cur.Z)*alpha,
	)
	return m.current
}

// DeltaScale multiplies the value by the tick delta in seconds, turning a
// per-tick reading into a per-second rate for integration.
type DeltaScale struct {
	TimeKind core.TimeKind
}

func NewDeltaScale() *DeltaScale { return &DeltaScale{} }

func (m *DeltaScale) Transform(_ action.Query, t core.Time, v action.Value) action.Value {
	d := t.DeltaKindSecs(m.TimeKind)
	return v.With(v.X*d, v.Y*d, v.Z*d)
}

// AccumulateBy adds the current value of another action.
type AccumulateBy struct {
	Action core.Entity
}

func NewAccumulateBy(e core.Entity) *AccumulateBy {
	return &AccumulateBy{Action: e}
}

func (m *AccumulateBy) Transform(q action.Query, _ core.Time, v action.Value) action.Value {
	if q == nil {
		return v
	}
	d, ok := q.Get(m.Action)
	if !ok {
		return v
	}
	return v.Add(d.Value)
}

// ExponentialCurve raises each axis to Exponent, preserving sign. Useful
// for fine control near the stick center.
type ExponentialCurve struct {
	Exponent float64
}

func NewExponentialCurve(exponent float64) *ExponentialCurve {
	return &ExponentialCurve{Exponent: exponent}
}

func (m *ExponentialCurve) Transform(_ action.Query, _ core.Time, v action.Value) action.Value {
	exp := m.Exponent
	if exp <= 0 {
		exp = 1
	}
	return v.Map(func(a float64) float64 {
		return math.Copysign(math.Pow(math.Abs(a), exp), a)
	})
}

// LinearStep quantizes each axis to multiples of Step, preserving sign.
type LinearStep struct {
	Step float64
}

func NewLinearStep(step float64) *LinearStep {
	return &LinearStep{Step: step}
}

func (m *LinearStep) Transform(_ action.Query, _ core.Time, v action.Value) action.Value {
	if m.Step <= 0 {
		return v
	}
	return v.Map(func(a float64) float64 {
		return math.Trunc(a/m.Step) * m.Step
	})
}
