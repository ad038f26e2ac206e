package scene

import "fmt"

// ValidationSeverity indicates whether a validation finding blocks the
// scene from being used or is merely advisory.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks use of the scene
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	Part     PartID             // offending part (empty if scene-level)
	Cabinet  CabinetID          // offending cabinet (empty if part-level)
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	switch {
	case e.Part != "":
		return fmt.Sprintf("[%s] part %s: %s", e.Severity, e.Part.Short(), e.Message)
	case e.Cabinet != "":
		return fmt.Sprintf("[%s] cabinet %s: %s", e.Severity, e.Cabinet.Short(), e.Message)
	default:
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
}

// ValidationResult bundles errors (blocking) and warnings (advisory)
// from all validation tiers.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// OK reports whether the scene has no blocking errors.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Validate runs all validation tiers on the scene: Tier 1 checks
// structural consistency (membership references), Tier 2 checks
// geometry (dimensions, settings ranges). Read-only.
func Validate(s *Scene) ValidationResult {
	var res ValidationResult
	res.Errors = append(res.Errors, validateMembership(s)...)
	geomErrs, geomWarns := validateGeometry(s)
	res.Errors = append(res.Errors, geomErrs...)
	res.Warnings = append(res.Warnings, geomWarns...)
	return res
}

// validateMembership checks that cabinet member lists and part
// back-references agree, and that no member ID dangles.
func validateMembership(s *Scene) []ValidationError {
	var errs []ValidationError

	for cid, cab := range s.Cabinets {
		seen := make(map[PartID]bool, len(cab.Parts))
		for _, pid := range cab.Parts {
			if seen[pid] {
				errs = append(errs, ValidationError{
					Cabinet:  cid,
					Message:  fmt.Sprintf("part %s listed twice", pid.Short()),
					Severity: SeverityError,
				})
				continue
			}
			seen[pid] = true

			p, ok := s.Parts[pid]
			if !ok {
				errs = append(errs, ValidationError{
					Cabinet:  cid,
					Message:  fmt.Sprintf("member part %s does not exist", pid.Short()),
					Severity: SeverityError,
				})
				continue
			}
			if p.Cabinet != cid {
				errs = append(errs, ValidationError{
					Part:     pid,
					Message:  fmt.Sprintf("listed under cabinet %s but references %q", cid.Short(), p.Cabinet),
					Severity: SeverityError,
				})
			}
		}
	}

	for pid, p := range s.Parts {
		if p.Cabinet == "" {
			continue
		}
		if _, ok := s.Cabinets[p.Cabinet]; !ok {
			errs = append(errs, ValidationError{
				Part:     pid,
				Message:  fmt.Sprintf("references unknown cabinet %q", p.Cabinet),
				Severity: SeverityError,
			})
		}
	}

	return errs
}
