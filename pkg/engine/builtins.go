package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chisel-cad/chisel/pkg/scene"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// kwPrefix marks keyword arguments after preprocessing.
const kwPrefix = "__kw_"

// preprocessSource rewrites Chisel DSL source into plain zygomys:
//
//  1. :keyword tokens become "__kw_keyword" string literals, so
//     keywords need no global symbol registration.
//  2. kebab-case identifiers become underscore form (snap-settings ->
//     snap_settings); zygomys reads a bare hyphen as subtraction.
//  3. ; line comments become // comments.
//
// String literal boundaries are respected throughout.
func preprocessSource(source string) string {
	var out strings.Builder
	out.Grow(len(source) + len(source)/4)

	b := []byte(source)
	i := 0
	for i < len(b) {
		switch {
		case b[i] == '"' || b[i] == '`':
			i = copyString(&out, b, i)

		case b[i] == ';':
			out.WriteString("//")
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				out.WriteByte(b[i])
				i++
			}

		case b[i] == ':' && i+1 < len(b) && b[i+1] == '=':
			out.WriteString(":=")
			i += 2

		case b[i] == ':' && i+1 < len(b) && isLetter(b[i+1]):
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			out.WriteByte('"')
			out.WriteString(kwPrefix)
			out.Write(b[i+1 : j])
			out.WriteByte('"')
			i = j

		case b[i] == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isLetter(b[i+1]):
			out.WriteByte('_')
			i++

		default:
			out.WriteByte(b[i])
			i++
		}
	}
	return out.String()
}

// copyString copies a quoted literal starting at i verbatim, returning
// the index just past the closing quote.
func copyString(out *strings.Builder, b []byte, i int) int {
	quote := b[i]
	out.WriteByte(b[i])
	i++
	for i < len(b) && b[i] != quote {
		if quote == '"' && b[i] == '\\' && i+1 < len(b) {
			out.WriteByte(b[i])
			out.WriteByte(b[i+1])
			i += 2
			continue
		}
		out.WriteByte(b[i])
		i++
	}
	if i < len(b) {
		out.WriteByte(b[i])
		i++
	}
	return i
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types
// ---------------------------------------------------------------------------

// sexpVec3 wraps an r3.Vec so (vec3 x y z) can flow between builtins.
type sexpVec3 struct {
	vec r3.Vec
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %.1f %.1f %.1f)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpPartRef wraps a part ID so (cabinet ...) can collect its members.
type sexpPartRef struct {
	id   scene.PartID
	name string
}

func (p *sexpPartRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(partref %q)", p.name)
}
func (p *sexpPartRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Argument helpers
// ---------------------------------------------------------------------------

// kwArgs is a parsed mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates keyword arguments (marked by the preprocessor)
// from positional ones.
func parseArgs(args []zygo.Sexp) kwArgs {
	out := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := keywordName(args[i])
		if ok && i+1 < len(args) {
			out.kw[name] = args[i+1]
			i += 2
			continue
		}
		if ok {
			out.kw[name] = zygo.SexpNull
			i++
			continue
		}
		out.positional = append(out.positional, args[i])
		i++
	}
	return out
}

// keywordName unwraps a preprocessed keyword string.
func keywordName(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return strings.TrimPrefix(str.S, kwPrefix), nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected bool, got %T (%s)", s, s.SexpString(nil))
}

func toVec3(s zygo.Sexp) (r3.Vec, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return r3.Vec{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the Chisel DSL builtins into a zygomys
// environment. The builtins populate the provided Scene during
// evaluation. Source must have gone through preprocessSource first.
func registerBuiltins(env *zygo.Zlisp, sc *scene.Scene) {

	// -----------------------------------------------------------------------
	// (vec3 x y z)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3: want 3 components, got %d", len(args))
		}
		var v r3.Vec
		for i, dst := range []*float64{&v.X, &v.Y, &v.Z} {
			f, err := toFloat64(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: component %d: %w", i, err)
			}
			*dst = f
		}
		return &sexpVec3{vec: v}, nil
	})

	// -----------------------------------------------------------------------
	// (part "left-side" :size (vec3 19 560 720) :at (vec3 9.5 280 360)
	//       :rotate (vec3 0 0 90) :material "white-oak")
	// -----------------------------------------------------------------------
	env.AddFunction("part", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("part: want a name, got %d positional args", len(pa.positional))
		}
		partName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("part: name: %w", err)
		}

		p := &scene.Part{ID: scene.PartID(partName), Name: partName}
		if _, exists := sc.Parts[p.ID]; exists {
			return zygo.SexpNull, fmt.Errorf("part: %q already defined", partName)
		}

		if v, ok := pa.kw["size"]; ok {
			if p.Size, err = toVec3(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("part %q: size: %w", partName, err)
			}
		}
		if v, ok := pa.kw["at"]; ok {
			if p.Position, err = toVec3(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("part %q: at: %w", partName, err)
			}
		}
		if v, ok := pa.kw["rotate"]; ok {
			if p.Rotation, err = toVec3(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("part %q: rotate: %w", partName, err)
			}
		}
		if v, ok := pa.kw["material"]; ok {
			if p.Material, err = toString(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("part %q: material: %w", partName, err)
			}
		}

		sc.AddPart(p)
		return &sexpPartRef{id: p.ID, name: partName}, nil
	})

	// -----------------------------------------------------------------------
	// (cabinet "base" (part ...) (part ...))
	// -----------------------------------------------------------------------
	env.AddFunction("cabinet", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("cabinet: want a name")
		}
		cabName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cabinet: name: %w", err)
		}

		cid := scene.CabinetID(cabName)
		if _, exists := sc.Cabinets[cid]; exists {
			return zygo.SexpNull, fmt.Errorf("cabinet: %q already defined", cabName)
		}
		cab := &scene.Cabinet{ID: cid, Name: cabName}

		for _, arg := range pa.positional[1:] {
			ref, ok := arg.(*sexpPartRef)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("cabinet %q: member is %T, want a part", cabName, arg)
			}
			p := sc.Part(ref.id)
			if p == nil {
				return zygo.SexpNull, fmt.Errorf("cabinet %q: member %q vanished", cabName, ref.name)
			}
			p.Cabinet = cid
			cab.Parts = append(cab.Parts, p.ID)
		}

		sc.AddCabinet(cab)
		return &zygo.SexpStr{S: cabName}, nil
	})

	// -----------------------------------------------------------------------
	// (snap-settings :distance 25 :falloff :quadratic :magnetic-pull true)
	// -----------------------------------------------------------------------
	env.AddFunction("snap_settings", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		st := &sc.Settings

		if v, ok := pa.kw["distance"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("snap-settings: distance: %w", err)
			}
			st.Distance = f
		}
		if v, ok := pa.kw["collision-offset"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("snap-settings: collision-offset: %w", err)
			}
			st.CollisionOffset = f
		}
		if v, ok := pa.kw["falloff"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("snap-settings: falloff: %w", err)
			}
			if st.Falloff, err = scene.ParseFalloff(s); err != nil {
				return zygo.SexpNull, fmt.Errorf("snap-settings: %w", err)
			}
		}

		for kw, dst := range map[string]*bool{
			"show-guides":   &st.ShowGuides,
			"magnetic-pull": &st.MagneticPull,
			"face-snap":     &st.FaceSnap,
			"edge-snap":     &st.EdgeSnap,
			"tjoint-snap":   &st.TJointSnap,
			"group-snap":    &st.GroupSnap,
		} {
			if v, ok := pa.kw[kw]; ok {
				b, err := toBool(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("snap-settings: %s: %w", kw, err)
				}
				*dst = b
			}
		}

		return zygo.SexpNull, nil
	})
}
