package geometry

import (
	"math"
	"testing"
)

func TestVector2D_AddSub(t *testing.T) {
	a := Vector2D{X: 1, Y: 2}
	b := Vector2D{X: 3, Y: -4}

	if got := a.Add(b); !got.Eq(Vector2D{X: 4, Y: -2}) {
		t.Errorf("Add: expected (4,-2), got %s", got)
	}
	if got := a.Sub(b); !got.Eq(Vector2D{X: -2, Y: 6}) {
		t.Errorf("Sub: expected (-2,6), got %s", got)
	}
}

func TestVector2D_MulAndLen(t *testing.T) {
	v := Vector2D{X: 3, Y: 4}

	if got := v.Len(); math.Abs(got-5) > Epsilon {
		t.Errorf("Len: expected 5, got %f", got)
	}
	if got := v.LenSqr(); math.Abs(got-25) > Epsilon {
		t.Errorf("LenSqr: expected 25, got %f", got)
	}
	if got := v.Mul(2); !got.Eq(Vector2D{X: 6, Y: 8}) {
		t.Errorf("Mul: expected (6,8), got %s", got)
	}
}

func TestVector2D_Normalize(t *testing.T) {
	v := Vector2D{X: 10, Y: 0}
	if got := v.Normalize(); !got.Eq(Vector2D{X: 1, Y: 0}) {
		t.Errorf("Normalize: expected (1,0), got %s", got)
	}

	// Degenerate input must not produce NaN.
	zero := Vector2D{}
	if got := zero.Normalize(); !got.Eq(Vector2D{}) {
		t.Errorf("Normalize zero: expected (0,0), got %s", got)
	}
}

func TestVector2D_Distances(t *testing.T) {
	a := Vector2D{X: 0, Y: 0}
	b := Vector2D{X: 3, Y: 4}

	if got := a.DistanceTo(b); math.Abs(got-5) > Epsilon {
		t.Errorf("DistanceTo: expected 5, got %f", got)
	}
	if got := a.DistanceSquaredTo(b); math.Abs(got-25) > Epsilon {
		t.Errorf("DistanceSquaredTo: expected 25, got %f", got)
	}
}

func TestVector2D_Angle(t *testing.T) {
	cases := []struct {
		v    Vector2D
		want float64
	}{
		{Vector2D{X: 1, Y: 0}, 0},
		{Vector2D{X: 0, Y: 1}, math.Pi / 2},
		{Vector2D{X: -1, Y: 0}, math.Pi},
	}
	for _, c := range cases {
		if got := c.v.Angle(); math.Abs(got-c.want) > Epsilon {
			t.Errorf("Angle of %s: expected %f, got %f", c.v, c.want, got)
		}
	}
}
