package snap

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chisel-cad/chisel/pkg/scene"
)

// ExtendTolerance is the fixed per-axis growth (mm) of a group's
// extended box over its core box. It is deliberately independent of
// SnapSettings.Distance: the extended silhouette exists to catch
// near-miss matches at a scoring penalty, not to widen the snap range.
const ExtendTolerance = 8.0

// GroupBounds holds the two nested oriented boxes of one snappable
// group: the core box (exact extents) and the extended box (core grown
// by ExtendTolerance), each decomposed into 6 faces. Built fresh per
// resolver call; never mutated afterwards.
type GroupBounds struct {
	GroupID  string
	Core     OBB
	Extended OBB

	coreFaces     [6]Face
	extendedFaces [6]Face
}

// newGroupBounds finishes a GroupBounds by deriving the extended box
// and both face sets.
func newGroupBounds(groupID string, core OBB) *GroupBounds {
	gb := &GroupBounds{
		GroupID:  groupID,
		Core:     core,
		Extended: core.Extended(ExtendTolerance),
	}
	gb.coreFaces = gb.Core.Faces()
	gb.extendedFaces = gb.Extended.Faces()
	return gb
}

// CoreFaces returns the 6 faces of the core box.
func (gb *GroupBounds) CoreFaces() [6]Face { return gb.coreFaces }

// ExtendedFaces returns the 6 faces of the extended box.
func (gb *GroupBounds) ExtendedFaces() [6]Face { return gb.extendedFaces }

// BoundsForPart computes the bounds of a single movable part shifted
// by offset. The core box is exact: the part's own oriented extents.
func BoundsForPart(p *scene.Part, offset r3.Vec) *GroupBounds {
	h := p.HalfSize()
	core := NewOBB(r3.Add(p.Position, offset), p.Rotation, [3]float64{h.X, h.Y, h.Z})
	return newGroupBounds(string(p.ID), core)
}

// BoundsForParts computes the bounds of a rigid group of parts (a
// cabinet) shifted by offset. The box orientation is the members'
// shared rotation when they agree, world axes otherwise; extents are
// the union of every member's corners projected onto those axes.
// O(number of members).
func BoundsForParts(groupID string, parts []*scene.Part, offset r3.Vec) *GroupBounds {
	if len(parts) == 0 {
		return newGroupBounds(groupID, OBB{Axes: axesFor(r3.Vec{})})
	}
	if len(parts) == 1 {
		h := parts[0].HalfSize()
		core := NewOBB(r3.Add(parts[0].Position, offset), parts[0].Rotation, [3]float64{h.X, h.Y, h.Z})
		return newGroupBounds(groupID, core)
	}

	axes := axesFor(groupRotation(parts))

	var lo, hi [3]float64
	for i := range lo {
		lo[i] = math.Inf(1)
		hi[i] = math.Inf(-1)
	}
	for _, p := range parts {
		h := p.HalfSize()
		box := NewOBB(p.Position, p.Rotation, [3]float64{h.X, h.Y, h.Z})
		for _, c := range box.Corners() {
			for i := 0; i < 3; i++ {
				d := r3.Dot(c, axes[i])
				lo[i] = math.Min(lo[i], d)
				hi[i] = math.Max(hi[i], d)
			}
		}
	}

	center := offset
	var half [3]float64
	for i := 0; i < 3; i++ {
		mid := (lo[i] + hi[i]) / 2
		center = r3.Add(center, r3.Scale(mid, axes[i]))
		half[i] = (hi[i] - lo[i]) / 2
	}
	return newGroupBounds(groupID, OBB{Center: center, Axes: axes, Half: half})
}

// groupRotation returns the rotation shared by every member part, or
// zero (world axes) when the members disagree.
func groupRotation(parts []*scene.Part) r3.Vec {
	rot := parts[0].Rotation
	for _, p := range parts[1:] {
		d := r3.Sub(p.Rotation, rot)
		if math.Abs(d.X) > epsilon || math.Abs(d.Y) > epsilon || math.Abs(d.Z) > epsilon {
			return r3.Vec{}
		}
	}
	return rot
}
