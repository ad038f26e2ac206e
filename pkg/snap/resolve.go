package snap

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chisel-cad/chisel/pkg/scene"
)

// axisDominance is the share of an offset's magnitude that must lie on
// the requested drag axis for the single-axis resolver to accept it.
const axisDominance = 0.9

// maxIndicators caps how many ranked candidates the multi-axis
// resolver returns, bounding memory and sort cost in dense scenes.
const maxIndicators = 24

// VisualizationPoint is pure display data for the frontend's snap
// guides: where to draw an indicator, facing which way, how strongly.
type VisualizationPoint struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"` // candidate kind token
	Position r3.Vec  `json:"position"`
	Normal   r3.Vec  `json:"normal"`
	GroupID  string  `json:"groupId"`
	Strength float64 `json:"strength"` // score in [0,1]
	Axis     string  `json:"axis,omitempty"`
}

// AxisResult is the outcome of a single-axis resolution: the scalar
// correction along the drag axis, or not-snapped with zero offset.
type AxisResult struct {
	Snapped   bool
	Offset    float64 // along the requested axis
	Candidate *Candidate
	Points    []VisualizationPoint
}

// ResolveAxis is the per-frame entry point for interactive dragging.
// It keeps only candidates whose offset lies almost entirely on the
// requested axis and returns the best-scoring one across all targets.
//
// A zero offset (the mover is already flush) carries no direction of
// its own, so the target face's normal must align with the axis
// instead; otherwise a flush contact on an unrelated axis would be
// mistaken for a same-axis snap.
func ResolveAxis(mover *GroupBounds, targets []*GroupBounds, axis scene.Axis, st scene.SnapSettings, trace Tracer) AxisResult {
	var best Candidate
	bestScore := 0.0
	found := false

	for _, target := range targets {
		if target == nil || target.GroupID == mover.GroupID {
			continue
		}
		if !areWithinRange(mover, target, st.Distance) {
			continue
		}
		for _, c := range candidatesBetween(mover, target, st, trace) {
			if !offsetOnAxis(c, axis) {
				if trace != nil {
					trace("off-axis", c)
				}
				continue
			}
			score := Score(c, st)
			if score > bestScore {
				best = c
				bestScore = score
				found = true
			}
		}
	}

	if !found {
		return AxisResult{}
	}
	return AxisResult{
		Snapped:   true,
		Offset:    axis.Component(best.Offset),
		Candidate: &best,
		Points:    []VisualizationPoint{pointFor(best, bestScore, axis.String())},
	}
}

// ResolveAll is the non-interactive variant: every candidate above the
// noise floor across all targets and axes, ranked by score descending
// and capped at maxIndicators. Used to render snap-indicator overlays.
func ResolveAll(mover *GroupBounds, targets []*GroupBounds, st scene.SnapSettings, trace Tracer) []Candidate {
	var kept []Candidate

	for _, target := range targets {
		if target == nil || target.GroupID == mover.GroupID {
			continue
		}
		if !areWithinRange(mover, target, st.Distance) {
			continue
		}
		for _, c := range candidatesBetween(mover, target, st, trace) {
			if Score(c, st) >= noiseFloor {
				kept = append(kept, c)
			}
			if len(kept) >= maxIndicators*4 {
				break
			}
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return Score(kept[i], st) > Score(kept[j], st)
	})
	if len(kept) > maxIndicators {
		kept = kept[:maxIndicators]
	}
	return kept
}

// Points converts ranked candidates into display points for the
// indicator overlay.
func Points(ranked []Candidate, st scene.SnapSettings) []VisualizationPoint {
	out := make([]VisualizationPoint, 0, len(ranked))
	for _, c := range ranked {
		out = append(out, pointFor(c, Score(c, st), ""))
	}
	return out
}

// areWithinRange is the cheap bounding-sphere rejection run before any
// face or edge math. It dominates per-frame cost in scenes with many
// groups, so it must stay allocation-free.
func areWithinRange(a, b *GroupBounds, distance float64) bool {
	if distance <= 0 {
		return false
	}
	reach := a.Core.BoundingRadius() + b.Core.BoundingRadius() + distance + ExtendTolerance
	return r3.Norm(r3.Sub(a.Core.Center, b.Core.Center)) <= reach
}

// offsetOnAxis applies the axis-dominance rule described on
// ResolveAxis.
func offsetOnAxis(c Candidate, axis scene.Axis) bool {
	mag := r3.Norm(c.Offset)
	if mag > epsilon {
		return math.Abs(axis.Component(c.Offset)) >= axisDominance*mag
	}
	return math.Abs(axis.Component(c.TargetFace.Normal)) >= axisDominance
}

// pointFor builds the display point for a candidate: the target face
// center, facing the target face's way.
func pointFor(c Candidate, score float64, axis string) VisualizationPoint {
	return VisualizationPoint{
		ID:       fmt.Sprintf("%s-%s-%s-a%d", c.TargetGroup, c.Variant, c.Kind, c.TargetFace.Axis),
		Type:     c.Kind.String(),
		Position: c.TargetFace.Center,
		Normal:   c.TargetFace.Normal,
		GroupID:  c.TargetGroup,
		Strength: score,
		Axis:     axis,
	}
}
