package snap

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chisel-cad/chisel/pkg/scene"
)

func testSettings() scene.SnapSettings {
	st := scene.DefaultSnapSettings()
	st.Distance = 20
	st.CollisionOffset = 1
	return st
}

// findCandidates filters by variant.
func findCandidates(cs []Candidate, v Variant) []Candidate {
	var out []Candidate
	for _, c := range cs {
		if c.Variant == v {
			out = append(out, c)
		}
	}
	return out
}

func TestConnectionClosesGapWithClearance(t *testing.T) {
	// 100mm cube at origin, 100mm cube at x=110: a 10mm gap. The
	// connection must close it to the 1mm clearance, i.e. offset 9.
	mover := BoundsForPart(cube("m", r3.Vec{}, 100), r3.Vec{})
	target := BoundsForPart(cube("t", r3.Vec{X: 110}, 100), r3.Vec{})

	cs := candidatesBetween(mover, target, testSettings(), nil)
	conns := findCandidates(cs, VariantConnection)
	if len(conns) == 0 {
		t.Fatal("no connection candidate for a 10mm gap within 20mm range")
	}

	var onX *Candidate
	for i := range conns {
		if conns[i].SourceFace.Normal.X > 0.5 {
			onX = &conns[i]
		}
	}
	if onX == nil {
		t.Fatal("no connection candidate on the +x face")
	}
	if !almostEqual(onX.Distance, 10, 1e-9) {
		t.Errorf("distance = %f, want 10", onX.Distance)
	}
	if !vecAlmostEqual(onX.Offset, r3.Vec{X: 9}, 1e-9) {
		t.Errorf("offset = %v, want (9, 0, 0)", onX.Offset)
	}
	if onX.UsedExtended {
		t.Error("core-vs-core gap reported as extended")
	}
	if onX.Kind != KindFace {
		t.Errorf("kind = %v, want face", onX.Kind)
	}
	if onX.SourceEdge != nil {
		t.Error("face candidate carries a source edge")
	}
}

func TestCandidateRangeBound(t *testing.T) {
	st := testSettings()
	mover := BoundsForPart(cube("m", r3.Vec{}, 100), r3.Vec{})
	target := BoundsForPart(cube("t", r3.Vec{X: 115, Y: 30, Z: -12}, 100), r3.Vec{})

	for _, c := range candidatesBetween(mover, target, st, nil) {
		if c.Distance < 0 || c.Distance > st.Distance {
			t.Errorf("%v candidate distance %f outside [0, %f]", c.Variant, c.Distance, st.Distance)
		}
		if c.Alignment < 0 || c.Alignment > 1 {
			t.Errorf("%v candidate alignment %f outside [0, 1]", c.Variant, c.Alignment)
		}
	}
}

func TestExtendedCatchesNearMissWithoutShadowingCore(t *testing.T) {
	st := testSettings()

	// Gap of 25mm: out of core range, but the target's extended box
	// (grown by 8mm) brings the pair to 17mm.
	mover := BoundsForPart(cube("m", r3.Vec{}, 100), r3.Vec{})
	far := BoundsForPart(cube("t", r3.Vec{X: 125}, 100), r3.Vec{})
	conns := findCandidates(candidatesBetween(mover, far, st, nil), VariantConnection)

	foundExtended := false
	for _, c := range conns {
		if c.SourceFace.Normal.X > 0.5 {
			if !c.UsedExtended {
				t.Error("25mm gap produced a non-extended connection")
			}
			foundExtended = true
		}
	}
	if !foundExtended {
		t.Fatal("extended box did not catch the 25mm near-miss")
	}

	// Gap of 10mm: the exact core pair matches first and the tolerant
	// pairings must not produce a closer shadow for the same faces.
	near := BoundsForPart(cube("t", r3.Vec{X: 110}, 100), r3.Vec{})
	for _, c := range findCandidates(candidatesBetween(mover, near, st, nil), VariantConnection) {
		if c.SourceFace.Normal.X > 0.5 && c.UsedExtended {
			t.Errorf("extended candidate (distance %f) shadows the exact core match", c.Distance)
		}
	}
}

func TestAlignmentCollisionRejected(t *testing.T) {
	st := testSettings()

	// Overlapping boxes: the zero-offset side-face alignments would
	// leave the cores interpenetrating and must be rejected.
	mover := BoundsForPart(cube("m", r3.Vec{}, 100), r3.Vec{})
	target := BoundsForPart(cube("t", r3.Vec{X: 95}, 100), r3.Vec{})

	var traced []string
	trace := func(reason string, c Candidate) {
		traced = append(traced, reason)
	}

	cs := candidatesBetween(mover, target, st, trace)
	for _, c := range findCandidates(cs, VariantAlignment) {
		if wouldCollide(mover, target, c.Offset, st.CollisionOffset) {
			t.Errorf("returned alignment candidate collides (offset %v)", c.Offset)
		}
	}

	sawCollision := false
	for _, r := range traced {
		if r == "collision" {
			sawCollision = true
		}
	}
	if !sawCollision {
		t.Error("tracer never saw a collision rejection for overlapping boxes")
	}
}

func TestTJointOnPerpendicularFace(t *testing.T) {
	st := testSettings()

	// Small cube hovering 5mm above the big cube's top face: its
	// bottom edges project inside the face boundary.
	mover := BoundsForPart(cube("m", r3.Vec{Z: 60}, 10), r3.Vec{})
	target := BoundsForPart(cube("t", r3.Vec{}, 100), r3.Vec{})

	tjs := findCandidates(candidatesBetween(mover, target, st, nil), VariantTJoint)
	if len(tjs) == 0 {
		t.Fatal("no t-joint candidate for edge 5mm above a face")
	}
	for _, c := range tjs {
		if c.Kind != KindEdgeFace {
			t.Errorf("t-joint kind = %v, want edge-to-face", c.Kind)
		}
		if c.SourceEdge == nil {
			t.Error("t-joint candidate missing source edge")
		}
		if c.UsedExtended {
			t.Error("t-joint generated from an extended box")
		}
	}

	onTop := false
	for _, c := range tjs {
		if c.TargetFace.Normal.Z > 0.5 && almostEqual(c.Distance, 5, 1e-9) {
			onTop = true
			if !vecAlmostEqual(c.Offset, r3.Vec{Z: -5}, 1e-9) {
				t.Errorf("t-joint offset = %v, want (0, 0, -5)", c.Offset)
			}
		}
	}
	if !onTop {
		t.Error("no t-joint against the top face at distance 5")
	}
}

func TestTJointRejectedOutsideFaceBoundary(t *testing.T) {
	st := testSettings()

	// Same 5mm plane distance, but shifted so the edge projection
	// lands beyond the face's corners: no t-joint, zero tolerance.
	mover := BoundsForPart(cube("m", r3.Vec{X: 100, Z: 60}, 10), r3.Vec{})
	target := BoundsForPart(cube("t", r3.Vec{}, 100), r3.Vec{})

	tjs := findCandidates(candidatesBetween(mover, target, st, nil), VariantTJoint)
	if len(tjs) != 0 {
		t.Fatalf("got %d t-joint candidates for an edge outside the face boundary, want 0", len(tjs))
	}
}

func TestFeatureFlagsGateVariants(t *testing.T) {
	mover := BoundsForPart(cube("m", r3.Vec{}, 100), r3.Vec{})
	target := BoundsForPart(cube("t", r3.Vec{X: 110}, 100), r3.Vec{})

	st := testSettings()
	st.FaceSnap = false
	if got := findCandidates(candidatesBetween(mover, target, st, nil), VariantConnection); len(got) != 0 {
		t.Errorf("face snap disabled, still got %d connections", len(got))
	}

	st = testSettings()
	st.EdgeSnap = false
	if got := findCandidates(candidatesBetween(mover, target, st, nil), VariantAlignment); len(got) != 0 {
		t.Errorf("edge snap disabled, still got %d alignments", len(got))
	}

	st = testSettings()
	st.TJointSnap = false
	hover := BoundsForPart(cube("m", r3.Vec{Z: 60}, 10), r3.Vec{})
	if got := findCandidates(candidatesBetween(hover, BoundsForPart(cube("t", r3.Vec{}, 100), r3.Vec{}), st, nil), VariantTJoint); len(got) != 0 {
		t.Errorf("t-joint snap disabled, still got %d t-joints", len(got))
	}
}

func TestNonPositiveDistanceYieldsNothing(t *testing.T) {
	st := testSettings()
	st.Distance = 0
	mover := BoundsForPart(cube("m", r3.Vec{}, 100), r3.Vec{})
	target := BoundsForPart(cube("t", r3.Vec{X: 101}, 100), r3.Vec{})
	if cs := candidatesBetween(mover, target, st, nil); len(cs) != 0 {
		t.Errorf("distance 0 produced %d candidates, want 0", len(cs))
	}
}
