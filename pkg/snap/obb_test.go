package snap

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func vecAlmostEqual(a, b r3.Vec, tol float64) bool {
	return almostEqual(a.X, b.X, tol) && almostEqual(a.Y, b.Y, tol) && almostEqual(a.Z, b.Z, tol)
}

func TestOBBFacesUnitCube(t *testing.T) {
	box := NewOBB(r3.Vec{}, r3.Vec{}, [3]float64{0.5, 0.5, 0.5})
	faces := box.Faces()

	if len(faces) != 6 {
		t.Fatalf("face count = %d, want 6", len(faces))
	}
	for i, f := range faces {
		if !almostEqual(r3.Norm(f.Normal), 1, 1e-12) {
			t.Errorf("face %d: normal length = %f, want 1", i, r3.Norm(f.Normal))
		}
		// Outward: face center lies along the normal from the box center.
		if r3.Dot(f.Center, f.Normal) <= 0 {
			t.Errorf("face %d: normal points inward", i)
		}
		if !almostEqual(r3.Norm(f.Center), 0.5, 1e-12) {
			t.Errorf("face %d: center distance = %f, want 0.5", i, r3.Norm(f.Center))
		}
		// All corners on the face plane.
		for j, c := range f.Corners {
			if d := r3.Dot(r3.Sub(c, f.Center), f.Normal); !almostEqual(d, 0, 1e-12) {
				t.Errorf("face %d corner %d: off-plane by %g", i, j, d)
			}
		}
		if f.Axis < 0 || f.Axis > 2 {
			t.Errorf("face %d: axis = %d, want 0..2", i, f.Axis)
		}
	}
}

func TestFaceEdgesFormLoop(t *testing.T) {
	box := NewOBB(r3.Vec{X: 1, Y: 2, Z: 3}, r3.Vec{}, [3]float64{10, 20, 30})
	for _, f := range box.Faces() {
		edges := f.Edges()
		for i, e := range edges {
			next := edges[(i+1)%4]
			if !vecAlmostEqual(e.B, next.A, 1e-12) {
				t.Fatalf("edges do not chain: edge %d ends at %v, next starts at %v", i, e.B, next.A)
			}
			if !almostEqual(r3.Dot(e.Dir, f.Normal), 0, 1e-12) {
				t.Errorf("edge %d direction not in face plane", i)
			}
		}
	}
}

func TestOBBAABBRotated(t *testing.T) {
	// Unit-half cube rotated 45 degrees around Z: world extents grow to
	// sqrt(2) on X and Y, stay 1 on Z.
	box := NewOBB(r3.Vec{}, r3.Vec{Z: 45}, [3]float64{1, 1, 1})
	bb := box.AABB()

	want := math.Sqrt2
	if !almostEqual(bb.Max.X, want, 1e-9) || !almostEqual(bb.Max.Y, want, 1e-9) {
		t.Errorf("rotated AABB max = (%f, %f), want (%f, %f)", bb.Max.X, bb.Max.Y, want, want)
	}
	if !almostEqual(bb.Max.Z, 1, 1e-9) {
		t.Errorf("rotated AABB max z = %f, want 1", bb.Max.Z)
	}
}

func TestExtendedGrowsEveryAxis(t *testing.T) {
	box := NewOBB(r3.Vec{}, r3.Vec{}, [3]float64{5, 10, 15})
	ext := box.Extended(ExtendTolerance)
	for i := 0; i < 3; i++ {
		if ext.Half[i] <= box.Half[i] {
			t.Errorf("axis %d: extended half %f not larger than core %f", i, ext.Half[i], box.Half[i])
		}
		if !almostEqual(ext.Half[i], box.Half[i]+ExtendTolerance, 1e-12) {
			t.Errorf("axis %d: extended half = %f, want %f", i, ext.Half[i], box.Half[i]+ExtendTolerance)
		}
	}
}

func TestFaceContains(t *testing.T) {
	box := NewOBB(r3.Vec{}, r3.Vec{}, [3]float64{50, 50, 50})
	var top Face
	for _, f := range box.Faces() {
		if f.Normal.Z > 0.5 {
			top = f
		}
	}

	cases := []struct {
		name string
		p    r3.Vec
		want bool
	}{
		{"center", r3.Vec{Z: 50}, true},
		{"inside", r3.Vec{X: 30, Y: -30, Z: 50}, true},
		{"boundary", r3.Vec{X: 50, Y: 0, Z: 50}, true},
		{"outside x", r3.Vec{X: 51, Y: 0, Z: 50}, false},
		{"far outside", r3.Vec{X: 200, Y: 200, Z: 50}, false},
	}
	for _, tc := range cases {
		if got := top.contains(tc.p); got != tc.want {
			t.Errorf("%s: contains(%v) = %v, want %v", tc.name, tc.p, got, tc.want)
		}
	}
}

func TestAABBShrinkCollapsesThinBox(t *testing.T) {
	a := AABB{Min: r3.Vec{}, Max: r3.Vec{X: 1, Y: 100, Z: 100}}
	s := a.Shrink(2)
	if s.Min.X != s.Max.X {
		t.Errorf("thin axis did not collapse: [%f, %f]", s.Min.X, s.Max.X)
	}
	if !almostEqual(s.Min.X, 0.5, 1e-12) {
		t.Errorf("collapsed at %f, want center 0.5", s.Min.X)
	}
}
