package scene

import "fmt"

// ---------------------------------------------------------------------------
// Tier 2: geometric validation (errors + warnings).
// ---------------------------------------------------------------------------

// validateGeometry runs all Tier 2 geometric checks.
// Returns errors (blocking) and warnings (advisory) separately.
func validateGeometry(s *Scene) ([]ValidationError, []ValidationError) {
	var errs []ValidationError
	var warns []ValidationError

	errs = append(errs, validatePartDimensions(s)...)
	warns = append(warns, validateSettingsRanges(s)...)
	warns = append(warns, validateEmptyCabinets(s)...)

	return errs, warns
}

// validatePartDimensions checks that every part has positive extents.
func validatePartDimensions(s *Scene) []ValidationError {
	var errs []ValidationError

	for pid, p := range s.Parts {
		if p.Size.X <= 0 {
			errs = append(errs, ValidationError{
				Part:     pid,
				Message:  fmt.Sprintf("size x is %.4f, must be positive", p.Size.X),
				Severity: SeverityError,
			})
		}
		if p.Size.Y <= 0 {
			errs = append(errs, ValidationError{
				Part:     pid,
				Message:  fmt.Sprintf("size y is %.4f, must be positive", p.Size.Y),
				Severity: SeverityError,
			})
		}
		if p.Size.Z <= 0 {
			errs = append(errs, ValidationError{
				Part:     pid,
				Message:  fmt.Sprintf("size z is %.4f, must be positive", p.Size.Z),
				Severity: SeverityError,
			})
		}
	}

	return errs
}

// validateSettingsRanges flags settings values that silently disable
// snapping. A non-positive distance is legal (the range filter simply
// rejects every candidate) but almost always a configuration mistake.
func validateSettingsRanges(s *Scene) []ValidationError {
	var warns []ValidationError

	if s.Settings.Distance <= 0 {
		warns = append(warns, ValidationError{
			Message:  fmt.Sprintf("snap distance is %.4f, snapping is effectively disabled", s.Settings.Distance),
			Severity: SeverityWarning,
		})
	}
	if s.Settings.CollisionOffset < 0 {
		warns = append(warns, ValidationError{
			Message:  fmt.Sprintf("collision offset is %.4f, connected faces will interpenetrate", s.Settings.CollisionOffset),
			Severity: SeverityWarning,
		})
	}

	return warns
}

// validateEmptyCabinets flags cabinets with no resolvable members.
func validateEmptyCabinets(s *Scene) []ValidationError {
	var warns []ValidationError

	for cid := range s.Cabinets {
		if len(s.CabinetParts(cid)) == 0 {
			warns = append(warns, ValidationError{
				Cabinet:  cid,
				Message:  "cabinet has no member parts",
				Severity: SeverityWarning,
			})
		}
	}

	return warns
}
