package snap

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chisel-cad/chisel/pkg/scene"
)

// Face-pair classification thresholds on the dot product of the two
// unit normals.
const (
	oppositeThreshold = -0.95 // at or below: connection (opposing faces)
	alignedThreshold  = 0.95  // at or above: alignment (same-facing faces)
	perpThreshold     = 0.1   // |dot| at or below: perpendicular (T-joint)
)

// Kind distinguishes the two geometric shapes a candidate can take.
type Kind int

const (
	KindFace     Kind = iota // face paired with face
	KindEdgeFace             // face boundary edge resting on a face
)

func (k Kind) String() string {
	switch k {
	case KindFace:
		return "face"
	case KindEdgeFace:
		return "edge-to-face"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Variant classifies what a candidate does to the mover.
type Variant int

const (
	VariantConnection Variant = iota // closes a gap between opposing faces
	VariantAlignment                 // flattens two same-facing faces coplanar
	VariantTJoint                    // rests an edge on a perpendicular face
)

func (v Variant) String() string {
	switch v {
	case VariantConnection:
		return "connection"
	case VariantAlignment:
		return "alignment"
	case VariantTJoint:
		return "t-joint"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// Candidate is one proposed adjustment of the moving group. SourceEdge
// is set only for KindEdgeFace; the face variants carry no edge, so an
// alignment candidate with an edge is unrepresentable by construction
// of the generator.
type Candidate struct {
	Kind         Kind
	Variant      Variant
	SourceGroup  string
	TargetGroup  string
	SourceFace   Face
	TargetFace   Face
	SourceEdge   *Edge   // KindEdgeFace only
	Offset       r3.Vec  // translation to apply to the mover
	Distance     float64 // non-negative, <= settings distance
	Alignment    float64 // orientation match quality in [0,1]
	UsedExtended bool    // an extended box contributed a face
}

// Tracer is an optional observability hook. The engine reports
// candidates it rejects (with the reason) so callers can surface
// diagnostics without the core logging anything itself.
type Tracer func(reason string, c Candidate)

// facePairing names one core/extended face-set combination to try.
// Extended-vs-extended is intentionally absent: pairing two tolerant
// silhouettes produces false positives without matching any real
// surface.
type facePairing struct {
	mover, target [6]Face
	extended      bool
}

// pairings returns the face-set combinations in deterministic priority
// order: exact boxes first, then one tolerant side at a time.
func pairings(mover, target *GroupBounds) [3]facePairing {
	return [3]facePairing{
		{mover.CoreFaces(), target.CoreFaces(), false},
		{mover.CoreFaces(), target.ExtendedFaces(), true},
		{mover.ExtendedFaces(), target.CoreFaces(), true},
	}
}

// candidatesBetween enumerates every snap candidate between the moving
// group and one target group that survives the range filter and the
// collision guard. Candidates beyond settings.Distance are never
// constructed. A face pair that already produced a candidate from an
// earlier (higher-priority) pairing is not retried with tolerant
// boxes, so an extended near-miss can never shadow an exact match.
func candidatesBetween(mover, target *GroupBounds, st scene.SnapSettings, trace Tracer) []Candidate {
	if st.Distance <= 0 {
		return nil
	}

	var out []Candidate
	var seen [36]bool // mover face index x target face index

	for _, pairing := range pairings(mover, target) {
		for mi := range pairing.mover {
			for ti := range pairing.target {
				if seen[mi*6+ti] {
					continue
				}
				c, ok := faceCandidate(mover, target, pairing.mover[mi], pairing.target[ti], pairing.extended, st, trace)
				if ok {
					seen[mi*6+ti] = true
					out = append(out, c)
				}
			}
		}
	}

	if st.TJointSnap {
		out = append(out, tJointCandidates(mover, target, st)...)
	}

	return out
}

// faceCandidate classifies one face pair and builds the resulting
// connection or alignment candidate, if any.
func faceCandidate(mover, target *GroupBounds, mf, tf Face, extended bool, st scene.SnapSettings, trace Tracer) (Candidate, bool) {
	d := r3.Dot(mf.Normal, tf.Normal)

	switch {
	case d <= oppositeThreshold && st.FaceSnap:
		return connectionCandidate(mover, target, mf, tf, d, extended, st)

	case d >= alignedThreshold && st.EdgeSnap:
		return alignmentCandidate(mover, target, mf, tf, d, extended, st, trace)
	}

	return Candidate{}, false
}

// connectionCandidate closes the perpendicular gap between two
// opposing faces, leaving the configured collision clearance. The
// faces' lateral projections must overlap; a pair that only lines up
// on the infinite planes is skipped.
func connectionCandidate(mover, target *GroupBounds, mf, tf Face, d float64, extended bool, st scene.SnapSettings) (Candidate, bool) {
	gap := r3.Dot(r3.Sub(tf.Center, mf.Center), mf.Normal)
	dist := math.Abs(gap)
	if dist > st.Distance {
		return Candidate{}, false
	}
	if !facesOverlapLaterally(mf, tf) {
		return Candidate{}, false
	}

	return Candidate{
		Kind:         KindFace,
		Variant:      VariantConnection,
		SourceGroup:  mover.GroupID,
		TargetGroup:  target.GroupID,
		SourceFace:   mf,
		TargetFace:   tf,
		Offset:       r3.Scale(gap-st.CollisionOffset, mf.Normal),
		Distance:     dist,
		Alignment:    clamp01(math.Abs(d)),
		UsedExtended: extended,
	}, true
}

// alignmentCandidate flattens two same-facing faces exactly coplanar
// (flush, zero clearance). Offsets that would push the mover's core
// box into the target's core box are rejected by the collision guard.
func alignmentCandidate(mover, target *GroupBounds, mf, tf Face, d float64, extended bool, st scene.SnapSettings, trace Tracer) (Candidate, bool) {
	gap := r3.Dot(r3.Sub(tf.Center, mf.Center), mf.Normal)
	dist := math.Abs(gap)
	if dist > st.Distance {
		return Candidate{}, false
	}

	c := Candidate{
		Kind:         KindFace,
		Variant:      VariantAlignment,
		SourceGroup:  mover.GroupID,
		TargetGroup:  target.GroupID,
		SourceFace:   mf,
		TargetFace:   tf,
		Offset:       r3.Scale(gap, mf.Normal),
		Distance:     dist,
		Alignment:    clamp01(math.Abs(d)),
		UsedExtended: extended,
	}

	if wouldCollide(mover, target, c.Offset, st.CollisionOffset) {
		if trace != nil {
			trace("collision", c)
		}
		return Candidate{}, false
	}
	return c, true
}

// tJointCandidates tests every boundary edge of the mover's core faces
// against every near-perpendicular core face of the target. Extended
// boxes are excluded here: the perpendicular case is already the
// lowest-confidence variant and a tolerant silhouette would multiply
// its false positives.
func tJointCandidates(mover, target *GroupBounds, st scene.SnapSettings) []Candidate {
	var out []Candidate

	for _, mf := range mover.CoreFaces() {
		var tfs []Face
		for _, tf := range target.CoreFaces() {
			if math.Abs(r3.Dot(mf.Normal, tf.Normal)) <= perpThreshold {
				tfs = append(tfs, tf)
			}
		}
		if len(tfs) == 0 {
			continue
		}

		for _, edge := range mf.Edges() {
			for _, tf := range tfs {
				c, ok := edgeFaceCandidate(mover, target, mf, tf, edge, st)
				if ok {
					out = append(out, c)
				}
			}
		}
	}

	return out
}

// edgeFaceCandidate rests one edge flush on a perpendicular face. The
// edge must run parallel to the face plane and its projection must
// fall within the face's finite boundary, with zero tolerance.
func edgeFaceCandidate(mover, target *GroupBounds, mf, tf Face, edge Edge, st scene.SnapSettings) (Candidate, bool) {
	if math.Abs(r3.Dot(edge.Dir, tf.Normal)) > perpThreshold {
		return Candidate{}, false
	}

	s := r3.Dot(r3.Sub(edge.Midpoint(), tf.Center), tf.Normal)
	dist := math.Abs(s)
	if dist > st.Distance {
		return Candidate{}, false
	}

	projA := r3.Sub(edge.A, r3.Scale(s, tf.Normal))
	projB := r3.Sub(edge.B, r3.Scale(s, tf.Normal))
	if !tf.contains(projA) || !tf.contains(projB) {
		return Candidate{}, false
	}

	e := edge
	return Candidate{
		Kind:        KindEdgeFace,
		Variant:     VariantTJoint,
		SourceGroup: mover.GroupID,
		TargetGroup: target.GroupID,
		SourceFace:  mf,
		TargetFace:  tf,
		SourceEdge:  &e,
		Offset:      r3.Scale(-s, tf.Normal),
		Distance:    dist,
		Alignment:   clamp01(1 - math.Abs(r3.Dot(mf.Normal, tf.Normal))),
	}, true
}

// facesOverlapLaterally projects both faces onto the mover face's
// in-plane directions and checks that the intervals intersect on both.
func facesOverlapLaterally(mf, tf Face) bool {
	u, v, _, _, ok := mf.tangents()
	if !ok {
		return false
	}
	return intervalsOverlap(mf, tf, u) && intervalsOverlap(mf, tf, v)
}

// intervalsOverlap compares the two faces' corner projections on one
// in-plane direction.
func intervalsOverlap(a, b Face, dir r3.Vec) bool {
	aLo, aHi := projectCorners(a, dir)
	bLo, bHi := projectCorners(b, dir)
	return aLo <= bHi && bLo <= aHi
}

func projectCorners(f Face, dir r3.Vec) (lo, hi float64) {
	lo = math.Inf(1)
	hi = math.Inf(-1)
	for _, c := range f.Corners {
		d := r3.Dot(c, dir)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
