package planar

import (
	"errors"
	"math"
	"testing"

	"agv-route-service/internal/measure"
)

func TestUnitFactoriesConvertToCanonicalMeters(t *testing.T) {
	cases := []struct {
		name  string
		got   Displacement
		wantX float64
		wantY float64
	}{
		{"meters", FromMeters(3.5, -2.25), 3.5, -2.25},
		{"centimeters", FromCentimeters(250, 0), 2.5, 0},
		{"millimeters", FromMillimeters(1500, -500), 1.5, -0.5},
		{"zero", Zero(), 0, 0},
	}

	for _, tc := range cases {
		x, y := tc.got.Meters()
		if x != tc.wantX || y != tc.wantY {
			t.Errorf("%s: meters = (%v, %v), want (%v, %v)", tc.name, x, y, tc.wantX, tc.wantY)
		}
	}
}

func TestConversionConsistency(t *testing.T) {
	for _, v := range []float64{0, 1, 42.5, -17.25, 1e-6, 123456.789} {
		if x, _ := FromCentimeters(v, 0).Meters(); x != v/100 {
			t.Errorf("FromCentimeters(%v).Meters x = %v, want %v", v, x, v/100)
		}
		if x, _ := FromMillimeters(v, 0).Meters(); x != v/1000 {
			t.Errorf("FromMillimeters(%v).Meters x = %v, want %v", v, x, v/1000)
		}
	}
}

func TestDerivedViews(t *testing.T) {
	d := FromMeters(1.5, -2)

	if cx, cy := d.Centimeters(); cx != 150 || cy != -200 {
		t.Errorf("centimeters = (%v, %v), want (150, -200)", cx, cy)
	}
	if mx, my := d.Millimeters(); mx != 1500 || my != -2000 {
		t.Errorf("millimeters = (%v, %v), want (1500, -2000)", mx, my)
	}
	if d.X().Meters() != 1.5 {
		t.Errorf("X = %v, want 1.5", d.X().Meters())
	}
	if d.Y().Meters() != -2 {
		t.Errorf("Y = %v, want -2", d.Y().Meters())
	}
}

func TestFromLengthsMatchesFromMeters(t *testing.T) {
	got := FromLengths(measure.FromMeters(2.5), measure.FromMeters(-1))
	if !got.Equal(FromMeters(2.5, -1)) {
		t.Errorf("FromLengths = %v, want %v", got, FromMeters(2.5, -1))
	}
}

func TestAdditiveIdentity(t *testing.T) {
	vectors := []Displacement{
		FromMeters(2, 3),
		FromMeters(-7.5, 0.125),
		Zero(),
	}

	for _, d := range vectors {
		if got := d.Add(Zero()); !got.Equal(d) {
			t.Errorf("d + zero = %v, want %v", got, d)
		}
		if got := Zero().Sub(d); !got.Equal(d.Neg()) {
			t.Errorf("zero - d = %v, want %v", got, d.Neg())
		}
	}
}

func TestArithmetic(t *testing.T) {
	a := FromMeters(2, 3)
	b := FromMeters(5, -1)

	if got := a.Add(b); !got.Equal(FromMeters(7, 2)) {
		t.Errorf("a + b = %v, want 7,2", got)
	}
	if got := a.Sub(b); !got.Equal(FromMeters(-3, 4)) {
		t.Errorf("a - b = %v, want -3,4", got)
	}
	if got := a.Neg(); !got.Equal(FromMeters(-2, -3)) {
		t.Errorf("-a = %v, want -2,-3", got)
	}
	if got := a.Mul(b); !got.Equal(FromMeters(10, -3)) {
		t.Errorf("a .* b = %v, want 10,-3", got)
	}
	if got := FromMeters(10, 9).Div(FromMeters(5, 3)); !got.Equal(FromMeters(2, 3)) {
		t.Errorf("a ./ b = %v, want 2,3", got)
	}
	if got := FromMeters(10, 9).DivScale(2); !got.Equal(FromMeters(5, 4.5)) {
		t.Errorf("a / 2 = %v, want 5,4.5", got)
	}
}

func TestScalarMultiply(t *testing.T) {
	d := FromMeters(2, 3)

	if got := d.Scale(2); !got.Equal(FromMeters(4, 6)) {
		t.Errorf("d * 2 = %v, want 4,6", got)
	}

	// Scalar multiplication commutes: scaling is the only spelling of both
	// k*d and d*k, so the two orders are the same call.
	if !d.Scale(2).Equal(d.Scale(2)) {
		t.Error("scalar multiplication is not commutative")
	}
}

func TestDivisionByZeroFollowsIEEE(t *testing.T) {
	d := FromMeters(1, 0)

	x, y := d.DivScale(0).Meters()
	if !math.IsInf(x, 1) {
		t.Errorf("1/0 = %v, want +Inf", x)
	}
	if !math.IsNaN(y) {
		t.Errorf("0/0 = %v, want NaN", y)
	}

	// NaN propagates and breaks equality reflexivity.
	nan := d.DivScale(0)
	if nan.Equal(nan) {
		t.Error("displacement with NaN component must not equal itself")
	}
}

func TestMagnitudeKnownVector(t *testing.T) {
	if got := FromMeters(3, 4).Magnitude().Meters(); got != 5.0 {
		t.Errorf("|3,4| = %v, want 5", got)
	}
	if got := Zero().Magnitude().Meters(); got != 0 {
		t.Errorf("|zero| = %v, want 0", got)
	}
}

func TestDistanceSymmetry(t *testing.T) {
	pairs := []struct{ a, b Displacement }{
		{FromMeters(0, 0), FromMeters(3, 4)},
		{FromMeters(-1.5, 2), FromMeters(7, -0.25)},
		{FromCentimeters(100, 50), FromMillimeters(2000, -300)},
	}

	for _, p := range pairs {
		ab := Distance(p.a, p.b).Meters()
		ba := Distance(p.b, p.a).Meters()
		if ab != ba {
			t.Errorf("Distance(%v, %v) = %v, reversed = %v", p.a, p.b, ab, ba)
		}
		if got := p.a.DistanceTo(p.b).Meters(); got != ab {
			t.Errorf("DistanceTo = %v, Distance = %v", got, ab)
		}
	}
}

func TestDistanceToSelfIsZero(t *testing.T) {
	d := FromMeters(12.5, -3.75)
	if got := d.DistanceTo(d).Meters(); got != 0 {
		t.Errorf("d.DistanceTo(d) = %v, want 0", got)
	}
}

func TestEqualityAndHashConsistency(t *testing.T) {
	a := FromMeters(1.25, -7)
	b := FromMeters(1.25, -7)
	c := FromMeters(1.25, -7.0000001)

	if !a.Equal(b) {
		t.Fatal("identical meter pairs must be equal")
	}
	if !EqualByMeters(a, b) {
		t.Fatal("EqualByMeters must agree with Equal")
	}
	if a.Equal(c) {
		t.Fatal("differing meter pairs must not be equal")
	}
	if a.Hash() != b.Hash() {
		t.Errorf("equal values hash differently: %#x vs %#x", a.Hash(), b.Hash())
	}

	// 0 and -0 are IEEE-equal, so they must share a hash.
	pos := FromMeters(0, 1)
	neg := FromMeters(math.Copysign(0, -1), 1)
	if !pos.Equal(neg) {
		t.Fatal("0 and -0 must compare equal")
	}
	if pos.Hash() != neg.Hash() {
		t.Errorf("0 and -0 hash differently: %#x vs %#x", pos.Hash(), neg.Hash())
	}
}

func TestStringFormat(t *testing.T) {
	if got := FromMeters(3.5, -2.25).String(); got != "3.5,-2.25" {
		t.Errorf("String = %q, want %q", got, "3.5,-2.25")
	}
	if got := Zero().String(); got != "0,0" {
		t.Errorf("String = %q, want %q", got, "0,0")
	}
}

func TestParseRoundTrip(t *testing.T) {
	vectors := []Displacement{
		Zero(),
		FromMeters(3.5, -2.25),
		FromMeters(0.1, 0.2),
		FromMeters(1e-17, -4.9e300),
		FromCentimeters(33.3, 1),
		FromMillimeters(1, 7),
	}

	for _, d := range vectors {
		got, err := Parse(d.String())
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error: %v", d.String(), err)
		}
		if !got.Equal(d) {
			t.Errorf("round trip of %q = %v, want %v", d.String(), got, d)
		}
	}
}

func TestParseMalformedShape(t *testing.T) {
	for _, text := range []string{"", "1", "1,2,3", "1;2"} {
		if _, err := Parse(text); !errors.Is(err, ErrFormat) {
			t.Errorf("Parse(%q) error = %v, want ErrFormat", text, err)
		}
	}
}

func TestParseLenientNumericTokens(t *testing.T) {
	// An unparsable token is coerced to 0, not rejected. Pinned behavior:
	// stored position text depends on it.
	got, err := Parse("a,5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(FromMeters(0, 5)) {
		t.Errorf("Parse(\"a,5\") = %v, want 0,5", got)
	}

	got, err = Parse(" 1.5 , 2 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(FromMeters(1.5, 2)) {
		t.Errorf("Parse with padding = %v, want 1.5,2", got)
	}
}
