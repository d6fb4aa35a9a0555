package fixedpoint_test

import (
	"testing"

	"github.com/forgottenhistory/archon-engine/fixedpoint"
)

func TestAddWraps(t *testing.T) {
	tt := map[string]struct {
		A, B fixedpoint.Fixed
	}{
		"small values": {fixedpoint.FromInt(2), fixedpoint.FromInt(3)},
		"negative":     {fixedpoint.FromInt(-7), fixedpoint.FromInt(2)},
		"overflow":     {fixedpoint.FromRaw(1<<63 - 1), fixedpoint.FromInt(1)},
	}
	for name, tc := range tt {
		t.Run(name, func(t *testing.T) {
			got := tc.A.Add(tc.B).Raw()
			want := tc.A.Raw() + tc.B.Raw()
			if got != want {
				t.Fatalf("Add: got raw %d, want %d", got, want)
			}
		})
	}
}

func TestDivDeterministic(t *testing.T) {
	ten := fixedpoint.FromInt(10)
	three := fixedpoint.FromInt(3)
	a := ten.Div(three)
	b := ten.Div(three)
	if a.Raw() != b.Raw() {
		t.Fatalf("division is not deterministic: %d != %d", a.Raw(), b.Raw())
	}

	back := a.Mul(three).Sub(ten)
	if back.Abs().Raw() >= 1<<4 {
		t.Fatalf("round-trip error too large: raw=%d", back.Raw())
	}
}

func TestSqrt(t *testing.T) {
	for _, n := range []int32{0, 1, 2, 4, 9, 16, 100, 12345} {
		v := fixedpoint.FromInt(n)
		root := v.Sqrt()
		squared := root.Mul(root)
		diff := squared.Sub(v).Abs()
		// allow a small rounding budget relative to the magnitude of n
		budget := fixedpoint.FromInt(1)
		if diff.GreaterThan(budget) {
			t.Errorf("sqrt(%d): squared back to %v, expected close to %v (diff %v)", n, squared, v, diff)
		}
	}
}

func TestClampFloorCeilRound(t *testing.T) {
	half := fixedpoint.FromFloat64(0.5)
	if got := half.Floor(); !got.Equal(fixedpoint.Zero) {
		t.Errorf("Floor(0.5) = %v, want 0", got)
	}
	if got := half.Ceil(); !got.Equal(fixedpoint.One) {
		t.Errorf("Ceil(0.5) = %v, want 1", got)
	}
	if got := half.Round(); !got.Equal(fixedpoint.One) {
		t.Errorf("Round(0.5) = %v, want 1", got)
	}

	clamped := fixedpoint.Clamp(fixedpoint.FromInt(10), fixedpoint.FromInt(0), fixedpoint.FromInt(5))
	if !clamped.Equal(fixedpoint.FromInt(5)) {
		t.Errorf("Clamp(10,0,5) = %v, want 5", clamped)
	}
}

func TestPow(t *testing.T) {
	two := fixedpoint.FromInt(2)
	got := two.Pow(10)
	want := fixedpoint.FromInt(1024)
	if !got.Equal(want) {
		t.Errorf("2^10 = %v, want %v", got, want)
	}
}

func TestBigEndianRoundTrip(t *testing.T) {
	v := fixedpoint.FromFloat64(-123.456)
	buf := make([]byte, 8)
	v.PutBigEndian(buf, 0)
	got := fixedpoint.ReadBigEndian(buf, 0)
	if got.Raw() != v.Raw() {
		t.Fatalf("round trip mismatch: got %d, want %d", got.Raw(), v.Raw())
	}
}
