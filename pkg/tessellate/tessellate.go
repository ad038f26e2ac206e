// Package tessellate turns a scene into triangle meshes using a
// geometry kernel. One mesh is produced per part, positioned in world
// space so the frontend can render them without further transforms.
package tessellate

import (
	"fmt"
	"sort"

	"github.com/chisel-cad/chisel/pkg/kernel"
	"github.com/chisel-cad/chisel/pkg/scene"
)

// Tessellate produces one mesh per part in the scene, ordered by part
// ID for deterministic output. The tessellator is read-only and never
// mutates the scene.
func Tessellate(sc *scene.Scene, k kernel.Kernel) ([]*kernel.Mesh, error) {
	if sc == nil {
		return nil, nil
	}

	ids := make([]scene.PartID, 0, len(sc.Parts))
	for id := range sc.Parts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	meshes := make([]*kernel.Mesh, 0, len(ids))
	for _, id := range ids {
		mesh, err := PartMesh(sc.Parts[id], k)
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, mesh)
	}

	return meshes, nil
}

// PartMesh tessellates a single part: a box of the part's dimensions,
// rotated and then translated to the part's center position.
func PartMesh(p *scene.Part, k kernel.Kernel) (*kernel.Mesh, error) {
	solid := placedSolid(p, k)

	mesh, err := k.ToMesh(solid)
	if err != nil {
		return nil, fmt.Errorf("tessellate: ToMesh failed for part %s: %w", p.ID.Short(), err)
	}

	mesh.PartID = string(p.ID)
	mesh.CabinetID = string(p.Cabinet)
	if p.Name != "" {
		mesh.PartName = p.Name
	} else {
		mesh.PartName = p.ID.Short()
	}

	return mesh, nil
}

// CabinetMesh produces a single merged mesh for a cabinet by unioning
// the solids of its member parts. Used for exploded-view exports where
// per-part picking is not needed. Returns nil for an unknown or empty
// cabinet.
func CabinetMesh(sc *scene.Scene, id scene.CabinetID, k kernel.Kernel) (*kernel.Mesh, error) {
	parts := sc.CabinetParts(id)
	if len(parts) == 0 {
		return nil, nil
	}

	solid := placedSolid(parts[0], k)
	for _, p := range parts[1:] {
		solid = k.Union(solid, placedSolid(p, k))
	}

	mesh, err := k.ToMesh(solid)
	if err != nil {
		return nil, fmt.Errorf("tessellate: ToMesh failed for cabinet %s: %w", id.Short(), err)
	}

	mesh.CabinetID = string(id)
	cab := sc.Cabinets[id]
	if cab != nil && cab.Name != "" {
		mesh.PartName = cab.Name
	} else {
		mesh.PartName = id.Short()
	}

	return mesh, nil
}

// placedSolid builds the world-space solid for a part. Rotation is
// applied before translation; the box is origin-centered so the
// translation lands its center on the part position.
func placedSolid(p *scene.Part, k kernel.Kernel) kernel.Solid {
	solid := k.Box(p.Size.X, p.Size.Y, p.Size.Z)

	if p.Rotation.X != 0 || p.Rotation.Y != 0 || p.Rotation.Z != 0 {
		solid = k.Rotate(solid, p.Rotation.X, p.Rotation.Y, p.Rotation.Z)
	}
	if p.Position.X != 0 || p.Position.Y != 0 || p.Position.Z != 0 {
		solid = k.Translate(solid, p.Position.X, p.Position.Y, p.Position.Z)
	}

	return solid
}
