// Package planar implements a strongly-typed 2D displacement quantity.
//
// A Displacement stores exactly one canonical representation, an (x, y)
// pair in meters, and derives every other unit view from it. Keeping a
// single pivot unit makes arithmetic, equality and the text format exact:
// no unit flag travels with the value, so meters can never be confused
// with centimeters or millimeters at a call site.
package planar

import "agv-route-service/internal/measure"

// Conversion factors from meters to the derived unit views.
const (
	centimetersPerMeter = 100
	millimetersPerMeter = 1000
)

// A 2-dimensional displacement stored canonically as a meter pair.
// Displacement is an immutable value type: operations return new values,
// instances are safe to copy and share across goroutines.
type Displacement struct {
	metersX float64
	metersY float64
}

// fromRawMeters is the canonical constructor. Every factory and operator
// funnels through it; nothing but meters is ever stored.
func fromRawMeters(x, y float64) Displacement {
	return Displacement{metersX: x, metersY: y}
}

// Zero returns the additive identity (0, 0).
func Zero() Displacement {
	return fromRawMeters(0, 0)
}

func FromMeters(x, y float64) Displacement {
	return fromRawMeters(x, y)
}

func FromCentimeters(x, y float64) Displacement {
	return fromRawMeters(x/centimetersPerMeter, y/centimetersPerMeter)
}

func FromMillimeters(x, y float64) Displacement {
	return fromRawMeters(x/millimetersPerMeter, y/millimetersPerMeter)
}

// FromLengths builds a displacement from two scalar length components.
func FromLengths(x, y measure.Length) Displacement {
	return fromRawMeters(x.Meters(), y.Meters())
}

// Meters returns the stored canonical pair.
func (d Displacement) Meters() (x, y float64) {
	return d.metersX, d.metersY
}

// Centimeters returns the pair scaled to centimeters. Derived on demand,
// never stored.
func (d Displacement) Centimeters() (x, y float64) {
	return d.metersX * centimetersPerMeter, d.metersY * centimetersPerMeter
}

// Millimeters returns the pair scaled to millimeters. Derived on demand,
// never stored.
func (d Displacement) Millimeters() (x, y float64) {
	return d.metersX * millimetersPerMeter, d.metersY * millimetersPerMeter
}

// X returns the horizontal component as a scalar length.
func (d Displacement) X() measure.Length {
	return measure.FromMeters(d.metersX)
}

// Y returns the vertical component as a scalar length.
func (d Displacement) Y() measure.Length {
	return measure.FromMeters(d.metersY)
}
