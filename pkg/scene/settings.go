package scene

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Default snap preference values, in mm where applicable.
const (
	DefaultSnapDistance    = 20.0
	DefaultCollisionOffset = 1.0
)

// Falloff selects how a candidate's distance maps to its score.
type Falloff int

const (
	FalloffLinear    Falloff = iota // score decays linearly with distance
	FalloffQuadratic                // score decays with the square
)

func (f Falloff) String() string {
	switch f {
	case FalloffLinear:
		return "linear"
	case FalloffQuadratic:
		return "quadratic"
	default:
		return fmt.Sprintf("Falloff(%d)", int(f))
	}
}

// ParseFalloff converts a "linear"/"quadratic" token into a Falloff.
func ParseFalloff(s string) (Falloff, error) {
	switch s {
	case "linear":
		return FalloffLinear, nil
	case "quadratic":
		return FalloffQuadratic, nil
	}
	return 0, fmt.Errorf("invalid falloff %q, expected linear or quadratic", s)
}

// MarshalYAML encodes the falloff as its token form.
func (f Falloff) MarshalYAML() (interface{}, error) {
	return f.String(), nil
}

// UnmarshalYAML decodes the token form produced by MarshalYAML.
func (f *Falloff) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseFalloff(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// MarshalJSON encodes the falloff as its token form for the frontend.
func (f Falloff) MarshalJSON() ([]byte, error) {
	return []byte(`"` + f.String() + `"`), nil
}

// UnmarshalJSON decodes the token form produced by MarshalJSON.
func (f *Falloff) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid falloff %s", data)
	}
	parsed, err := ParseFalloff(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// SnapSettings holds the user-configurable snapping preferences.
//
// Distance is the maximum range at which a snap candidate may form.
// CollisionOffset is the clearance kept between two faces that connect,
// so that flush parts touch without interpenetrating.
type SnapSettings struct {
	Distance        float64 `json:"distance" yaml:"distance"`
	ShowGuides      bool    `json:"showGuides" yaml:"show_guides"`
	MagneticPull    bool    `json:"magneticPull" yaml:"magnetic_pull"`
	Falloff         Falloff `json:"falloff" yaml:"falloff"`
	FaceSnap        bool    `json:"faceSnap" yaml:"face_snap"`     // face-to-face connections
	EdgeSnap        bool    `json:"edgeSnap" yaml:"edge_snap"`     // coplanar edge alignment
	TJointSnap      bool    `json:"tJointSnap" yaml:"tjoint_snap"` // perpendicular edge-to-face
	GroupSnap       bool    `json:"groupSnap" yaml:"group_snap"`   // whole-group OBB engine on/off
	CollisionOffset float64 `json:"collisionOffset" yaml:"collision_offset"`
}

// DefaultSnapSettings returns the settings used for a fresh scene.
func DefaultSnapSettings() SnapSettings {
	return SnapSettings{
		Distance:        DefaultSnapDistance,
		ShowGuides:      true,
		MagneticPull:    true,
		Falloff:         FalloffLinear,
		FaceSnap:        true,
		EdgeSnap:        true,
		TJointSnap:      true,
		GroupSnap:       true,
		CollisionOffset: DefaultCollisionOffset,
	}
}
