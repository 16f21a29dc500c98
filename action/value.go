package action

import "math"

// Dim is the dimensionality of an action value
type Dim uint8

const (
	DimBool Dim = iota
	DimAxis1D
	DimAxis2D
	DimAxis3D
)

func (d Dim) String() string {
	switch d {
	case DimBool:
		return "Bool"
	case DimAxis1D:
		return "Axis1D"
	case DimAxis2D:
		return "Axis2D"
	case DimAxis3D:
		return "Axis3D"
	default:
		return "Unknown"
	}
}

// Value is a tagged numeric input value of 0 to 3 dimensions.
// Bool values store 0 or 1 in X. Unused axes are always zero,
// which keeps Convert and the accumulation operators total.
type Value struct {
	dim     Dim
	X, Y, Z float64
}

// Bool creates a boolean value
func Bool(v bool) Value {
	x := 0.0
	if v {
		x = 1.0
	}
	return Value{dim: DimBool, X: x}
}

// Axis1D creates a one-dimensional value
func Axis1D(x float64) Value {
	return Value{dim: DimAxis1D, X: x}
}

// Axis2D creates a two-dimensional value
func Axis2D(x, y float64) Value {
	return Value{dim: DimAxis2D, X: x, Y: y}
}

// Axis3D creates a three-dimensional value
func Axis3D(x, y, z float64) Value {
	return Value{dim: DimAxis3D, X: x, Y: y, Z: z}
}

// Zero creates a zero value of the given dimension
func Zero(dim Dim) Value {
	return Value{dim: dim}
}

// Dim returns the value's dimension tag
func (v Value) Dim() Dim {
	return v.dim
}

// AsBool reports whether the value is non-zero on any axis
func (v Value) AsBool() bool {
	return v.X != 0 || v.Y != 0 || v.Z != 0
}

// AsAxis1D returns the X axis
func (v Value) AsAxis1D() float64 {
	return v.X
}

// Magnitude returns the Euclidean length across all stored axes
func (v Value) Magnitude() float64 {
	switch v.dim {
	case DimBool, DimAxis1D:
		return math.Abs(v.X)
	case DimAxis2D:
		return math.Hypot(v.X, v.Y)
	default:
		return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
	}
}

// IsActuated reports whether the value's magnitude exceeds the threshold.
// A zero threshold actuates on any non-zero value.
func (v Value) IsActuated(threshold float64) bool {
	if threshold <= 0 {
		return v.AsBool()
	}
	return v.Magnitude() >= threshold
}

// Convert projects the value into the target dimension.
// Missing axes are zero-filled, extra axes dropped. Defined for all pairs.
func (v Value) Convert(dim Dim) Value {
	if v.dim == dim {
		return v
	}
	switch dim {
	case DimBool:
		return Bool(v.AsBool())
	case DimAxis1D:
		return Axis1D(v.X)
	case DimAxis2D:
		if v.dim == DimBool || v.dim == DimAxis1D {
			return Axis2D(v.X, 0)
		}
		return Axis2D(v.X, v.Y)
	default:
		return Axis3D(v.X, v.Y, v.Z)
	}
}

// With returns a copy with replaced axes, keeping the receiver's dimension
func (v Value) With(x, y, z float64) Value {
	v.X, v.Y, v.Z = x, y, z
	return v
}

// Map applies fn to each axis, keeping the receiver's dimension
func (v Value) Map(fn func(float64) float64) Value {
	v.X = fn(v.X)
	v.Y = fn(v.Y)
	v.Z = fn(v.Z)
	return v
}

// Add returns the componentwise sum, keeping the receiver's dimension
func (v Value) Add(other Value) Value {
	out := v
	out.X += other.X
	out.Y += other.Y
	out.Z += other.Z
	return out
}

// MaxAbs returns the per-axis value with the greater absolute magnitude,
// keeping the receiver's dimension
func (v Value) MaxAbs(other Value) Value {
	out := v
	if math.Abs(other.X) > math.Abs(out.X) {
		out.X = other.X
	}
	if math.Abs(other.Y) > math.Abs(out.Y) {
		out.Y = other.Y
	}
	if math.Abs(other.Z) > math.Abs(out.Z) {
		out.Z = other.Z
	}
	return out
}
