// Package snap implements the group snapping engine for Chisel.
//
// While the user drags a part or a whole cabinet, the frontend calls
// the resolvers in this package on every pointer move. The engine
// builds oriented bounding boxes for the moving group and every
// candidate target group, enumerates plausible face-to-face and
// edge-to-face snaps, rejects candidates that would collide, scores
// the survivors, and returns the adjustment that best aligns the mover
// with its neighbours.
//
// Every entry point is a pure function of its arguments: no state is
// retained between calls, nothing is mutated, and degenerate inputs
// degrade to a "not snapped" result rather than an error.
package snap
