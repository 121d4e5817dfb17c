package measure

import "strconv"

// Conversion factors between meters and the supported derived units.
const (
	centimetersPerMeter = 100
	millimetersPerMeter = 1000
)

// A one-dimensional length stored canonically in meters.
// Length is an immutable value type: every operation returns a new value,
// and two lengths compare equal iff their meter values are IEEE-754 equal.
type Length struct {
	meters float64
}

func FromMeters(v float64) Length {
	return Length{meters: v}
}

func FromCentimeters(v float64) Length {
	return Length{meters: v / centimetersPerMeter}
}

func FromMillimeters(v float64) Length {
	return Length{meters: v / millimetersPerMeter}
}

// Meters returns the canonical stored value.
func (l Length) Meters() float64 { return l.meters }

func (l Length) Centimeters() float64 { return l.meters * centimetersPerMeter }

func (l Length) Millimeters() float64 { return l.meters * millimetersPerMeter }

func (l Length) Add(other Length) Length { return Length{meters: l.meters + other.meters} }

func (l Length) Sub(other Length) Length { return Length{meters: l.meters - other.meters} }

// Scale multiplies the length by a dimensionless factor.
func (l Length) Scale(k float64) Length { return Length{meters: l.meters * k} }

func (l Length) Neg() Length { return Length{meters: -l.meters} }

// Cmp returns -1, 0 or +1 ordering two lengths by their meter values.
func (l Length) Cmp(other Length) int {
	if l.meters < other.meters {
		return -1
	}
	if l.meters > other.meters {
		return 1
	}
	return 0
}

// String renders the meter value with the shortest decimal form that parses
// back to the same float64. Period decimal separator, no grouping.
func (l Length) String() string {
	return strconv.FormatFloat(l.meters, 'g', -1, 64)
}
