package scene

import "gonum.org/v1/gonum/spatial/r3"

// Scene is the complete state of a design: every part, every cabinet,
// and the snapping preferences. The DSL engine produces a fresh Scene
// per evaluation; interactive edits go through the app layer, which
// serializes them so that each resolver call sees a consistent snapshot.
type Scene struct {
	Parts    map[PartID]*Part       `json:"parts"`
	Cabinets map[CabinetID]*Cabinet `json:"cabinets"`
	Settings SnapSettings           `json:"settings"`
	Version  uint64                 `json:"version"`
}

// New creates an empty Scene with default snap settings.
func New() *Scene {
	return &Scene{
		Parts:    make(map[PartID]*Part),
		Cabinets: make(map[CabinetID]*Cabinet),
		Settings: DefaultSnapSettings(),
	}
}

// AddPart adds a part to the scene. If the part names a cabinet, the
// part is appended to that cabinet's member list, creating the cabinet
// record if it does not exist yet.
func (s *Scene) AddPart(p *Part) {
	s.Parts[p.ID] = p
	if p.Cabinet == "" {
		return
	}
	cab, ok := s.Cabinets[p.Cabinet]
	if !ok {
		cab = &Cabinet{ID: p.Cabinet}
		s.Cabinets[p.Cabinet] = cab
	}
	cab.Parts = append(cab.Parts, p.ID)
}

// AddCabinet registers an empty cabinet. Parts join it via AddPart.
func (s *Scene) AddCabinet(c *Cabinet) {
	s.Cabinets[c.ID] = c
}

// Part returns the part with the given ID, or nil.
func (s *Scene) Part(id PartID) *Part {
	return s.Parts[id]
}

// CabinetParts returns the member parts of a cabinet. Dangling member
// IDs are skipped; structural validation reports them separately.
func (s *Scene) CabinetParts(id CabinetID) []*Part {
	cab, ok := s.Cabinets[id]
	if !ok {
		return nil
	}
	parts := make([]*Part, 0, len(cab.Parts))
	for _, pid := range cab.Parts {
		if p, ok := s.Parts[pid]; ok {
			parts = append(parts, p)
		}
	}
	return parts
}

// LooseParts returns all parts that belong to no cabinet.
func (s *Scene) LooseParts() []*Part {
	var parts []*Part
	for _, p := range s.Parts {
		if p.Cabinet == "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// CabinetCenter returns the centroid of a cabinet's member part
// positions. A cabinet with no resolvable members has center zero.
func (s *Scene) CabinetCenter(id CabinetID) r3.Vec {
	parts := s.CabinetParts(id)
	if len(parts) == 0 {
		return r3.Vec{}
	}
	var sum r3.Vec
	for _, p := range parts {
		sum = r3.Add(sum, p.Position)
	}
	return r3.Scale(1/float64(len(parts)), sum)
}

// PartCount returns the number of parts in the scene.
func (s *Scene) PartCount() int {
	return len(s.Parts)
}
