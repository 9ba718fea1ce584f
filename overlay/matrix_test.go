package overlay

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/image/math/f64"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestMulOrder(t *testing.T) {
	m := Mul(Translate(10, 0), Scale(2, 3))
	x, y := Apply(m, 1, 1)
	if x != 12 || y != 3 {
		t.Errorf("scale then translate: got (%v, %v), want (12, 3)", x, y)
	}
	if diff := cmp.Diff(Translate(4, 5), Mul(Identity, Translate(4, 5))); diff != "" {
		t.Errorf("identity is not neutral (-want +got):\n%s", diff)
	}
}

func TestRotate(t *testing.T) {
	x, y := Apply(Rotate(math.Pi/2), 1, 0)
	if diff := cmp.Diff([2]float64{0, 1}, [2]float64{x, y}, approx); diff != "" {
		t.Errorf("quarter turn of (1, 0) (-want +got):\n%s", diff)
	}
}

func TestBounds(t *testing.T) {
	tt := []struct {
		name     string
		m        f64.Aff3
		r        Rect
		min, max f64.Vec2
	}{
		{"identity", Identity, Rect{1, 2, 3, 4}, f64.Vec2{1, 2}, f64.Vec2{4, 6}},
		{"negative size", Identity, Rect{4, 6, -3, -4}, f64.Vec2{1, 2}, f64.Vec2{4, 6}},
		{"flip", Scale(-1, 1), Rect{1, 0, 2, 1}, f64.Vec2{-3, 0}, f64.Vec2{-1, 1}},
		{
			"rotated square",
			Rotate(math.Pi / 4),
			Rect{-1, -1, 2, 2},
			f64.Vec2{-math.Sqrt2, -math.Sqrt2},
			f64.Vec2{math.Sqrt2, math.Sqrt2},
		},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			lo, hi := Bounds(tc.m, tc.r)
			if diff := cmp.Diff([2]f64.Vec2{tc.min, tc.max}, [2]f64.Vec2{lo, hi}, approx); diff != "" {
				t.Errorf("Bounds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
