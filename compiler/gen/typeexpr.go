package gen

import "strings"

// Expr is a resolved field type expression. The resolver builds a small
// structured value instead of a formatted string so renderers stay free
// to pick their own syntax and tests never compare strings.
//
// The resolver produces four shapes:
//
//   - nil: the field is omitted entirely
//   - Any: an open type with no retained alternatives
//   - Optional{OneOrMany{T}}: a single candidate, possibly absent
//   - OneOrMany{Union{...}}, optionally wrapped: multiple candidates
type Expr interface {
	expr()
	String() string
}

// Primitive is a vocabulary data type mapped to a target-language type.
type Primitive struct {
	Name  string // vocabulary name, e.g. "Text"
	Alias string // mapped type, e.g. "string"
}

// Ref references another resolved model by its vocabulary name. Refs
// are registered before they are chased, which is what keeps mutually
// recursive classes finite.
type Ref struct {
	Name string
}

// Any is the universal fallback type. It appears alone when nothing
// else survived pruning, or as the last union alternative when some
// declared alternative was filtered out.
type Any struct{}

// List is a homogeneous list of Elem.
type List struct {
	Elem Expr
}

// Union is a set of alternatives ordered by descending specificity.
// Open reports that the union ends with the Any sentinel.
type Union struct {
	Alts []Expr
}

// OneOrMany admits either a single Elem value or a list of them.
type OneOrMany struct {
	Elem Expr
}

// Optional marks an expression whose value may be absent.
type Optional struct {
	Elem Expr
}

func (Primitive) expr() {}
func (Ref) expr()       {}
func (Any) expr()       {}
func (List) expr()      {}
func (Union) expr()     {}
func (OneOrMany) expr() {}
func (Optional) expr()  {}

// String renders a diagnostic form of the expression. It is not the
// generated source representation; renderers build their own.
func (p Primitive) String() string { return p.Alias }

func (r Ref) String() string { return r.Name }

func (Any) String() string { return "Any" }

func (l List) String() string { return "List[" + l.Elem.String() + "]" }

func (u Union) String() string {
	parts := make([]string, 0, len(u.Alts))
	for _, alt := range u.Alts {
		parts = append(parts, alt.String())
	}
	return "Union[" + strings.Join(parts, ", ") + "]"
}

func (m OneOrMany) String() string { return "OneOrMany[" + m.Elem.String() + "]" }

func (o Optional) String() string { return "Optional[" + o.Elem.String() + "]" }

// Open reports whether the union's last alternative is the Any
// sentinel, meaning a declared alternative was excluded by pruning.
func (u Union) Open() bool {
	if len(u.Alts) == 0 {
		return false
	}
	_, ok := u.Alts[len(u.Alts)-1].(Any)
	return ok
}

// newExpr builds a field expression from its candidate alternatives.
// candidates must already be ordered by descending specificity; open
// reports that at least one declared alternative was filtered out, in
// which case the Any sentinel is appended.
//
// A nil result means the field carries no information and is omitted.
func newExpr(candidates []Expr, open bool) Expr {
	if open {
		candidates = append(candidates, Any{})
	}
	switch len(candidates) {
	case 0:
		return nil
	case 1:
		if _, isAny := candidates[0].(Any); isAny {
			return Any{}
		}
		return Optional{Elem: OneOrMany{Elem: candidates[0]}}
	default:
		inner := OneOrMany{Elem: Union{Alts: candidates}}
		// An open union already subsumes the absent case.
		if open {
			return inner
		}
		return Optional{Elem: inner}
	}
}

// alternatives unwraps an expression down to its candidate list in
// specificity order. A nil or Any expression has no alternatives.
func alternatives(e Expr) []Expr {
	switch t := e.(type) {
	case Optional:
		return alternatives(t.Elem)
	case OneOrMany:
		return alternatives(t.Elem)
	case Union:
		return t.Alts
	case Primitive, Ref:
		return []Expr{t}
	default:
		return nil
	}
}
