package snap

import "github.com/chisel-cad/chisel/pkg/scene"

// Scoring weights. Connections outrank alignments outrank T-joints so
// that a flush face dock always wins over an edge dock when both are
// in range; extended-box matches pay a fixed penalty for their lower
// confidence.
const (
	connectionFactor = 1.0
	alignmentFactor  = 0.95
	tJointFactor     = 0.7
	extendedPenalty  = 0.8

	// noiseFloor is the minimum score a candidate must reach to be
	// retained by the multi-candidate path.
	noiseFloor = 0.1
)

// Score rates a candidate in [0,1] from its distance (normalized by
// the configured range and shaped by the falloff curve), its recorded
// orientation quality, extended-box usage, and variant.
func Score(c Candidate, st scene.SnapSettings) float64 {
	if st.Distance <= epsilon {
		return 0
	}

	norm := clamp01(c.Distance / st.Distance)
	distScore := 1 - norm
	if st.Falloff == scene.FalloffQuadratic {
		distScore *= distScore
	}

	score := distScore * c.Alignment
	if c.UsedExtended {
		score *= extendedPenalty
	}

	switch c.Variant {
	case VariantConnection:
		score *= connectionFactor
	case VariantAlignment:
		score *= alignmentFactor
	case VariantTJoint:
		score *= tJointFactor
	}

	return score
}
