package planar

import (
	"math"

	"agv-route-service/internal/measure"
)

// Neg returns the componentwise negation.
func (d Displacement) Neg() Displacement {
	return fromRawMeters(-d.metersX, -d.metersY)
}

// Add returns the componentwise sum of two displacements.
func (d Displacement) Add(other Displacement) Displacement {
	return fromRawMeters(d.metersX+other.metersX, d.metersY+other.metersY)
}

// Sub returns the componentwise difference of two displacements.
func (d Displacement) Sub(other Displacement) Displacement {
	return fromRawMeters(d.metersX-other.metersX, d.metersY-other.metersY)
}

// Scale multiplies both components by a dimensionless factor.
// Scalar multiplication commutes: d.Scale(k) is k·d as well as d·k.
func (d Displacement) Scale(k float64) Displacement {
	return fromRawMeters(d.metersX*k, d.metersY*k)
}

// Mul returns the componentwise product of two displacements.
// The result scales one displacement by the other treated as a ratio pair;
// the caller owns the physical meaning.
func (d Displacement) Mul(other Displacement) Displacement {
	return fromRawMeters(d.metersX*other.metersX, d.metersY*other.metersY)
}

// Div returns the componentwise quotient of two displacements.
// Division by a zero component follows IEEE-754: the result carries
// Inf or NaN rather than an error.
func (d Displacement) Div(other Displacement) Displacement {
	return fromRawMeters(d.metersX/other.metersX, d.metersY/other.metersY)
}

// DivScale divides both components by a dimensionless divisor.
// A zero divisor follows IEEE-754 semantics, same as Div.
func (d Displacement) DivScale(k float64) Displacement {
	return fromRawMeters(d.metersX/k, d.metersY/k)
}

// Magnitude returns the Euclidean norm of the displacement as a scalar length.
func (d Displacement) Magnitude() measure.Length {
	return measure.FromMeters(math.Hypot(d.metersX, d.metersY))
}

// DistanceTo returns the Euclidean distance to another displacement,
// equivalent to d.Sub(other).Magnitude().
func (d Displacement) DistanceTo(other Displacement) measure.Length {
	return d.Sub(other).Magnitude()
}

// Distance returns the Euclidean distance between two displacements.
// It is symmetric: Distance(a, b) == Distance(b, a).
func Distance(a, b Displacement) measure.Length {
	return a.DistanceTo(b)
}
