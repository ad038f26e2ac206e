package scene

import (
	"fmt"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"
)

// PartID identifies a single movable part.
type PartID string

// CabinetID identifies a cabinet (a rigid group of parts).
type CabinetID string

// NewPartID mints a fresh random part ID.
func NewPartID() PartID {
	return PartID(uuid.NewString())
}

// NewCabinetID mints a fresh random cabinet ID.
func NewCabinetID() CabinetID {
	return CabinetID(uuid.NewString())
}

// Short returns an abbreviated form of the ID for log and error messages.
func (id PartID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}

// Short returns an abbreviated form of the ID for log and error messages.
func (id CabinetID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}

// Axis names one of the three world axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// ParseAxis converts an "x"/"y"/"z" token (as sent by the transform
// controls in the frontend) into an Axis.
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return AxisX, nil
	case "y", "Y":
		return AxisY, nil
	case "z", "Z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("invalid axis %q, expected x, y, or z", s)
}

// Component returns the component of v on this axis.
func (a Axis) Component(v r3.Vec) float64 {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	default:
		return v.Z
	}
}

// Vec returns the unit vector of this axis.
func (a Axis) Vec() r3.Vec {
	switch a {
	case AxisX:
		return r3.Vec{X: 1}
	case AxisY:
		return r3.Vec{Y: 1}
	default:
		return r3.Vec{Z: 1}
	}
}

// WithComponent returns v with this axis' component replaced by c.
func (a Axis) WithComponent(v r3.Vec, c float64) r3.Vec {
	switch a {
	case AxisX:
		v.X = c
	case AxisY:
		v.Y = c
	default:
		v.Z = c
	}
	return v
}

// Part is a single movable piece of furniture geometry: one board,
// panel, shelf or filler. Position is the center of the part in world
// coordinates (mm), Rotation is Euler angles in degrees applied X then
// Y then Z, Size is the full extent along each local axis.
type Part struct {
	ID       PartID    `json:"id"`
	Name     string    `json:"name,omitempty"`
	Position r3.Vec    `json:"position"`
	Rotation r3.Vec    `json:"rotation"`
	Size     r3.Vec    `json:"size"`
	Cabinet  CabinetID `json:"cabinet,omitempty"` // empty for loose parts
	Material string    `json:"material,omitempty"`
}

// HalfSize returns the part's half extents.
func (p *Part) HalfSize() r3.Vec {
	return r3.Scale(0.5, p.Size)
}

// Cabinet is a rigid group of parts that moves as one unit.
type Cabinet struct {
	ID    CabinetID `json:"id"`
	Name  string    `json:"name,omitempty"`
	Parts []PartID  `json:"parts"`
}
