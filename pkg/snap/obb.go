package snap

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// epsilon guards divisions and degenerate-direction checks. Anything
// below it is treated as already aligned rather than propagated as an
// infinity or NaN.
const epsilon = 1e-9

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// axesFor returns the three world-space unit axes of a box rotated by
// Euler angles in degrees, applied X then Y then Z.
func axesFor(rot r3.Vec) [3]r3.Vec {
	axes := [3]r3.Vec{{X: 1}, {Y: 1}, {Z: 1}}
	if rot.X == 0 && rot.Y == 0 && rot.Z == 0 {
		return axes
	}
	rx := r3.NewRotation(degToRad(rot.X), r3.Vec{X: 1})
	ry := r3.NewRotation(degToRad(rot.Y), r3.Vec{Y: 1})
	rz := r3.NewRotation(degToRad(rot.Z), r3.Vec{Z: 1})
	for i, a := range axes {
		axes[i] = rz.Rotate(ry.Rotate(rx.Rotate(a)))
	}
	return axes
}

// OBB is an oriented bounding box: a center, three world-space unit
// axes, and half extents along each axis.
type OBB struct {
	Center r3.Vec
	Axes   [3]r3.Vec
	Half   [3]float64
}

// NewOBB builds an OBB from a center, Euler rotation (degrees) and
// half extents.
func NewOBB(center, rot r3.Vec, half [3]float64) OBB {
	return OBB{Center: center, Axes: axesFor(rot), Half: half}
}

// Extended returns a copy of the box grown by tol on every axis.
func (b OBB) Extended(tol float64) OBB {
	b.Half = [3]float64{b.Half[0] + tol, b.Half[1] + tol, b.Half[2] + tol}
	return b
}

// Corners returns the 8 corner points of the box.
func (b OBB) Corners() [8]r3.Vec {
	var out [8]r3.Vec
	i := 0
	for _, sx := range []float64{-1, 1} {
		for _, sy := range []float64{-1, 1} {
			for _, sz := range []float64{-1, 1} {
				p := b.Center
				p = r3.Add(p, r3.Scale(sx*b.Half[0], b.Axes[0]))
				p = r3.Add(p, r3.Scale(sy*b.Half[1], b.Axes[1]))
				p = r3.Add(p, r3.Scale(sz*b.Half[2], b.Axes[2]))
				out[i] = p
				i++
			}
		}
	}
	return out
}

// AABB returns the world-axis-aligned bounds enclosing the box.
func (b OBB) AABB() AABB {
	ext := r3.Vec{}
	for i := 0; i < 3; i++ {
		a := b.Axes[i]
		ext.X += math.Abs(a.X) * b.Half[i]
		ext.Y += math.Abs(a.Y) * b.Half[i]
		ext.Z += math.Abs(a.Z) * b.Half[i]
	}
	return AABB{Min: r3.Sub(b.Center, ext), Max: r3.Add(b.Center, ext)}
}

// BoundingRadius returns the radius of the sphere enclosing the box,
// used for cheap range pre-rejection.
func (b OBB) BoundingRadius() float64 {
	return math.Sqrt(b.Half[0]*b.Half[0] + b.Half[1]*b.Half[1] + b.Half[2]*b.Half[2])
}

// Face is one of the 6 oriented faces of an OBB. Corners are ordered
// counter-clockwise when viewed from outside, so consecutive corners
// form the face's boundary edges. Axis records which local box axis
// the face is perpendicular to.
type Face struct {
	Center  r3.Vec
	Normal  r3.Vec
	Corners [4]r3.Vec
	Axis    int
}

// Faces decomposes the box into its 6 oriented faces. Faces are
// emitted in axis order, negative side first.
func (b OBB) Faces() [6]Face {
	var out [6]Face
	n := 0
	for axis := 0; axis < 3; axis++ {
		u := (axis + 1) % 3
		v := (axis + 2) % 3
		for _, sign := range []float64{-1, 1} {
			normal := r3.Scale(sign, b.Axes[axis])
			center := r3.Add(b.Center, r3.Scale(sign*b.Half[axis], b.Axes[axis]))
			du := r3.Scale(b.Half[u], b.Axes[u])
			dv := r3.Scale(b.Half[v], b.Axes[v])
			out[n] = Face{
				Center: center,
				Normal: normal,
				Corners: [4]r3.Vec{
					r3.Add(center, r3.Add(du, dv)),
					r3.Sub(r3.Add(center, du), dv),
					r3.Sub(center, r3.Add(du, dv)),
					r3.Add(r3.Sub(center, du), dv),
				},
				Axis: axis,
			}
			n++
		}
	}
	return out
}

// Edge is one boundary edge of a face: two endpoints and the unit
// direction from A to B.
type Edge struct {
	A, B r3.Vec
	Dir  r3.Vec
}

// Edges derives the 4 boundary edges of the face from its corners.
func (f Face) Edges() [4]Edge {
	var out [4]Edge
	for i := 0; i < 4; i++ {
		a := f.Corners[i]
		b := f.Corners[(i+1)%4]
		d := r3.Sub(b, a)
		if n := r3.Norm(d); n > epsilon {
			d = r3.Scale(1/n, d)
		}
		out[i] = Edge{A: a, B: b, Dir: d}
	}
	return out
}

// Midpoint returns the edge's midpoint.
func (e Edge) Midpoint() r3.Vec {
	return r3.Scale(0.5, r3.Add(e.A, e.B))
}

// tangents returns the face's two in-plane unit directions and half
// sizes, derived from the ordered corners. ok is false for degenerate
// (zero-area) faces.
func (f Face) tangents() (u, v r3.Vec, hu, hv float64, ok bool) {
	du := r3.Sub(f.Corners[1], f.Corners[0])
	dv := r3.Sub(f.Corners[3], f.Corners[0])
	lu := r3.Norm(du)
	lv := r3.Norm(dv)
	if lu < epsilon || lv < epsilon {
		return u, v, 0, 0, false
	}
	return r3.Scale(1/lu, du), r3.Scale(1/lv, dv), lu / 2, lv / 2, true
}

// contains reports whether p, projected onto the face plane, falls
// inside the face's finite boundary. Zero tolerance: a point on the
// infinite plane but outside the corner rectangle is not contained.
func (f Face) contains(p r3.Vec) bool {
	u, v, hu, hv, ok := f.tangents()
	if !ok {
		return false
	}
	rel := r3.Sub(p, f.Center)
	return math.Abs(r3.Dot(rel, u)) <= hu && math.Abs(r3.Dot(rel, v)) <= hv
}

// AABB is a world-axis-aligned box used only for the cheap collision
// and range rejection checks.
type AABB struct {
	Min, Max r3.Vec
}

// Translate returns the box shifted by d.
func (a AABB) Translate(d r3.Vec) AABB {
	return AABB{Min: r3.Add(a.Min, d), Max: r3.Add(a.Max, d)}
}

// Shrink returns the box contracted inward by m on every side. A box
// smaller than 2m collapses to its center point.
func (a AABB) Shrink(m float64) AABB {
	out := AABB{
		Min: r3.Add(a.Min, r3.Vec{X: m, Y: m, Z: m}),
		Max: r3.Sub(a.Max, r3.Vec{X: m, Y: m, Z: m}),
	}
	if out.Min.X > out.Max.X {
		c := (a.Min.X + a.Max.X) / 2
		out.Min.X, out.Max.X = c, c
	}
	if out.Min.Y > out.Max.Y {
		c := (a.Min.Y + a.Max.Y) / 2
		out.Min.Y, out.Max.Y = c, c
	}
	if out.Min.Z > out.Max.Z {
		c := (a.Min.Z + a.Max.Z) / 2
		out.Min.Z, out.Max.Z = c, c
	}
	return out
}

// Intersects reports overlap on all three axes simultaneously.
func (a AABB) Intersects(b AABB) bool {
	return a.Min.X < b.Max.X && a.Max.X > b.Min.X &&
		a.Min.Y < b.Max.Y && a.Max.Y > b.Min.Y &&
		a.Min.Z < b.Max.Z && a.Max.Z > b.Min.Z
}
