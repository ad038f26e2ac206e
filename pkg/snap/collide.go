package snap

import "gonum.org/v1/gonum/spatial/r3"

// wouldCollide reports whether translating the mover's core box by
// offset would overlap the target's core box. The mover's bounds are
// shrunk inward by collisionOffset first, so that touching (flush
// contact within the clearance) does not count as collision. Both
// groups are reduced to world-aligned bounds; the check is a cheap
// conservative filter, not an exact OBB intersection.
func wouldCollide(mover, target *GroupBounds, offset r3.Vec, collisionOffset float64) bool {
	moved := mover.Core.AABB().Translate(offset).Shrink(collisionOffset)
	return moved.Intersects(target.Core.AABB())
}
