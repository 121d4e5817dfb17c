package planar

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ErrFormat reports displacement text that does not split into exactly
// two comma-separated parts.
var ErrFormat = errors.New("malformed displacement text")

// Equal reports whether both stored meter pairs are IEEE-754 equal.
//
// Equality is representation-exact: no epsilon tolerance is applied, so a
// displacement built from centimeters is not guaranteed equal to one built
// from the "same" meters when the conversion rounded differently. NaN
// components compare unequal to everything, including themselves.
func (d Displacement) Equal(other Displacement) bool {
	return d.metersX == other.metersX && d.metersY == other.metersY
}

// EqualByMeters is the canonical (and only) equality strategy: exact
// comparison of canonical meter pairs. Tolerance-based equality is
// deliberately not offered.
func EqualByMeters(a, b Displacement) bool {
	return a.Equal(b)
}

// Hash returns a hash derived solely from the stored meter pair,
// consistent with Equal: equal displacements hash equally.
func (d Displacement) Hash() uint64 {
	// Negative zero is IEEE-equal to zero, so it must hash identically.
	x, y := d.metersX, d.metersY
	if x == 0 {
		x = 0
	}
	if y == 0 {
		y = 0
	}

	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], math.Float64bits(x))
	binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(y))
	return xxhash.Sum64(buf[:])
}

// String formats the displacement as "<x>,<y>" in meters: shortest decimal
// form that parses back to the same float64, period decimal separator, no
// grouping, no unit suffix. The rendering is locale-independent.
func (d Displacement) String() string {
	return strconv.FormatFloat(d.metersX, 'g', -1, 64) +
		"," +
		strconv.FormatFloat(d.metersY, 'g', -1, 64)
}

// Parse reads the "<x>,<y>" meter format produced by String.
//
// Text that does not split into exactly two comma-separated parts fails
// with an error wrapping ErrFormat. A part that is not a valid number is
// coerced to 0 rather than rejected; stored position text relies on this
// leniency, so it is pinned by tests instead of tightened.
//
// For every finite displacement d, Parse(d.String()) equals d exactly.
func Parse(text string) (Displacement, error) {
	parts := strings.Split(text, ",")
	if len(parts) != 2 {
		return Displacement{}, fmt.Errorf("parse displacement %q: want 2 comma-separated parts, got %d: %w",
			text, len(parts), ErrFormat)
	}

	x := parseLenient(parts[0])
	y := parseLenient(parts[1])
	return fromRawMeters(x, y), nil
}

func parseLenient(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
