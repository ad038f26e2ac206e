// Package arrange adapts the snapping engine to the two movable
// entities of a scene: a single part, or a whole cabinet moved as one
// rigid group. It builds the moving group from the current position
// plus the drag delta, gathers every other group as a target, and
// translates the resolved axis offset back into an absolute position.
package arrange

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chisel-cad/chisel/pkg/scene"
	"github.com/chisel-cad/chisel/pkg/snap"
)

// MoveResult is the outcome of resolving one drag frame.
type MoveResult struct {
	Snapped   bool
	Position  r3.Vec // corrected position (center) for the mover
	Candidate *snap.Candidate
	Points    []snap.VisualizationPoint
}

// MovePart resolves one drag frame of a single part toward newPos
// along the given axis. The part itself and its owning cabinet (if
// any) are excluded from the target set; arranging parts inside their
// own cabinet is the legacy per-part algorithm's job (see UseGroupSnap).
func MovePart(sc *scene.Scene, id scene.PartID, newPos r3.Vec, axis scene.Axis, trace snap.Tracer) (MoveResult, error) {
	p := sc.Part(id)
	if p == nil {
		return MoveResult{}, fmt.Errorf("move part: unknown part %s", id.Short())
	}

	offset := r3.Sub(newPos, p.Position)
	mover := snap.BoundsForPart(p, offset)
	targets := targetGroups(sc, id, p.Cabinet)

	res := snap.ResolveAxis(mover, targets, axis, sc.Settings, trace)

	pos := newPos
	if res.Snapped && sc.Settings.MagneticPull {
		pos = axis.WithComponent(pos, axis.Component(pos)+res.Offset)
	}
	return MoveResult{
		Snapped:   res.Snapped,
		Position:  pos,
		Candidate: res.Candidate,
		Points:    res.Points,
	}, nil
}

// MoveCabinet resolves one drag frame of a whole cabinet shifted by
// offset along the given axis. The cabinet's current center is the
// centroid of its member part positions; the returned position is that
// center plus the offset, further corrected on the snapped axis.
func MoveCabinet(sc *scene.Scene, id scene.CabinetID, offset r3.Vec, axis scene.Axis, trace snap.Tracer) (MoveResult, error) {
	members := sc.CabinetParts(id)
	if len(members) == 0 {
		return MoveResult{}, fmt.Errorf("move cabinet: cabinet %s has no parts", id.Short())
	}

	center := sc.CabinetCenter(id)
	mover := snap.BoundsForParts(string(id), members, offset)
	targets := targetGroups(sc, "", id)

	res := snap.ResolveAxis(mover, targets, axis, sc.Settings, trace)

	pos := r3.Add(center, offset)
	if res.Snapped && sc.Settings.MagneticPull {
		pos = axis.WithComponent(pos, axis.Component(pos)+res.Offset)
	}
	return MoveResult{
		Snapped:   res.Snapped,
		Position:  pos,
		Candidate: res.Candidate,
		Points:    res.Points,
	}, nil
}

// PartIndicators returns ranked snap indicators for a part at rest,
// across all axes. Used for the indicator overlay, not live dragging.
func PartIndicators(sc *scene.Scene, id scene.PartID, trace snap.Tracer) ([]snap.VisualizationPoint, error) {
	p := sc.Part(id)
	if p == nil {
		return nil, fmt.Errorf("indicators: unknown part %s", id.Short())
	}
	mover := snap.BoundsForPart(p, r3.Vec{})
	targets := targetGroups(sc, id, p.Cabinet)
	ranked := snap.ResolveAll(mover, targets, sc.Settings, trace)
	return snap.Points(ranked, sc.Settings), nil
}

// UseGroupSnap decides whether the group/OBB engine should handle a
// drag, or whether the caller must fall back to the legacy per-part
// face algorithm. Internal arrangement, where both the moving part and the
// named target part sit inside the same cabinet, stays with the legacy
// algorithm; everything else (including drags with no specific target
// part) uses the group engine, unless the user disabled it outright.
func UseGroupSnap(moverID, targetID scene.PartID, sc *scene.Scene) bool {
	if !sc.Settings.GroupSnap {
		return false
	}
	if targetID == "" {
		return true
	}
	mover := sc.Part(moverID)
	target := sc.Part(targetID)
	if mover == nil || target == nil {
		return true
	}
	if mover.Cabinet != "" && mover.Cabinet == target.Cabinet {
		return false
	}
	return true
}

// targetGroups gathers bounds for every snappable group in the scene
// except the excluded part and cabinet: one group per other cabinet,
// one per loose part.
func targetGroups(sc *scene.Scene, excludePart scene.PartID, excludeCabinet scene.CabinetID) []*snap.GroupBounds {
	var targets []*snap.GroupBounds

	for cid := range sc.Cabinets {
		if cid == excludeCabinet {
			continue
		}
		members := sc.CabinetParts(cid)
		if len(members) == 0 {
			continue
		}
		targets = append(targets, snap.BoundsForParts(string(cid), members, r3.Vec{}))
	}

	for _, p := range sc.LooseParts() {
		if p.ID == excludePart {
			continue
		}
		targets = append(targets, snap.BoundsForPart(p, r3.Vec{}))
	}

	return targets
}
