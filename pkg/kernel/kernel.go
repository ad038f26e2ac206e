// Package kernel defines the geometry kernel interface used to turn
// scene parts into render meshes. The sdfx subpackage is the only
// backend today; the interface keeps the rest of the system ignorant
// of how solids are represented.
package kernel

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the geometry kernel interface. All dimensions are in
// millimeters. Solids are centered at the origin when created and
// placed by Rotate then Translate, matching how parts store their
// position (center point) and rotation (Euler degrees).
type Kernel interface {
	// Primitives
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64, segments int) Solid

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
