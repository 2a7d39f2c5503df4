package gen

import (
	"sort"

	"github.com/syssam/vocgen/compiler/load"
)

// Field is a resolved model field.
type Field struct {
	// Name is the field name, escaped when it collides with a
	// reserved word.
	Name string
	// Alias holds the original property name as declared in the
	// vocabulary.
	Alias string
	// Type is the resolved type expression.
	Type Expr
	// Comment is the property description, normalized to plain text.
	Comment string
}

// Model is a resolved class: its name, description and the ordered
// field set after parent merge. Once registered, a model is never
// mutated again.
type Model struct {
	// Name is the type name, escaped when it begins with a digit.
	Name string
	// Marker holds the original vocabulary class name.
	Marker string
	// Comment is the class description.
	Comment string
	// Fields in declaration order after parent merge.
	Fields []*Field
}

// Enum is a resolved class that has individuals. Members are
// lightweight fields carrying only a name.
type Enum struct {
	Name    string
	Comment string
	Members []*Field
}

// fieldSet is an insertion-ordered field map. Overlaying an existing
// name replaces the value but keeps the original position.
type fieldSet struct {
	order []string
	items map[string]*Field
}

func newFieldSet() *fieldSet {
	return &fieldSet{items: make(map[string]*Field)}
}

func (s *fieldSet) set(name string, f *Field) {
	if _, ok := s.items[name]; !ok {
		s.order = append(s.order, name)
	}
	s.items[name] = f
}

// overlay merges other on top of s: same-named fields are replaced,
// new fields are appended.
func (s *fieldSet) overlay(other *fieldSet) {
	if other == nil {
		return
	}
	for _, name := range other.order {
		s.set(name, other.items[name])
	}
}

func (s *fieldSet) fields() []*Field {
	fields := make([]*Field, 0, len(s.order))
	for _, name := range s.order {
		fields = append(fields, s.items[name])
	}
	return fields
}

// entry is a type cache slot: a primitive type alias or a resolved
// model.
type entry struct {
	alias string
	model *Model
}

// Registry resolves vocabulary classes into models and enums. It owns
// the type cache, the enum map and the missing-type set for the
// lifetime of one generation run; a type name is resolved at most once.
type Registry struct {
	voc         *load.Vocabulary
	cache       map[string]entry
	fieldCache  map[string]*fieldSet
	enums       map[string]*Enum
	missing     map[string]struct{}
	pruneTo     map[string]struct{} // nil follows every reference
	typeMap     map[string]string
	specificity map[string]int
}

// NewRegistry creates a registry over the given vocabulary. The type
// cache is pre-seeded with the configured primitive map, so primitives
// count as already resolved.
func NewRegistry(voc *load.Vocabulary, cfg *Config) *Registry {
	if cfg == nil {
		cfg = &Config{}
	}
	r := &Registry{
		voc:         voc,
		cache:       make(map[string]entry),
		fieldCache:  make(map[string]*fieldSet),
		enums:       make(map[string]*Enum),
		missing:     make(map[string]struct{}),
		typeMap:     cfg.typeMap(),
		specificity: cfg.specificityMap(),
	}
	for name, alias := range r.typeMap {
		r.cache[name] = entry{alias: alias}
	}
	if !cfg.Greedy && cfg.PruneTo != nil {
		r.pruneTo = make(map[string]struct{}, len(cfg.PruneTo))
		for _, name := range cfg.PruneTo {
			r.pruneTo[name] = struct{}{}
		}
	}
	return r
}

// Resolve resolves the named root types and everything they depend on.
// A root that does not exist in the vocabulary is fatal; dependency
// failures degrade into the missing-type set.
func (r *Registry) Resolve(names ...string) error {
	for _, name := range names {
		if r.done(name) {
			continue
		}
		if !r.voc.Has(name) {
			return &UnknownTypeError{Name: name}
		}
		r.resolve(name)
	}
	return nil
}

// Models returns all resolved models sorted by name, excluding enum
// containers and enum members.
func (r *Registry) Models() []*Model {
	members := make(map[string]struct{})
	for _, e := range r.enums {
		for _, m := range e.Members {
			members[m.Alias] = struct{}{}
		}
	}
	models := make([]*Model, 0, len(r.cache))
	for name, e := range r.cache {
		if e.model == nil {
			continue
		}
		if _, ok := r.enums[name]; ok {
			continue
		}
		if _, ok := members[name]; ok {
			continue
		}
		models = append(models, e.model)
	}
	sort.Slice(models, func(i, j int) bool { return models[i].Name < models[j].Name })
	return models
}

// Enums returns all resolved enums sorted by name.
func (r *Registry) Enums() []*Enum {
	enums := make([]*Enum, 0, len(r.enums))
	for _, e := range r.enums {
		enums = append(enums, e)
	}
	sort.Slice(enums, func(i, j int) bool { return enums[i].Name < enums[j].Name })
	return enums
}

// MissingTypes returns the sorted names referenced by some field or
// subclass relation but absent from the vocabulary. Diagnostic only.
func (r *Registry) MissingTypes() []string {
	names := make([]string, 0, len(r.missing))
	for name := range r.missing {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// done reports whether the name is already cache-resident or known
// missing. This is the short-circuit that makes cyclic class graphs
// terminate: a name is registered before anything that may reference
// it back is visited.
func (r *Registry) done(name string) bool {
	if _, ok := r.cache[name]; ok {
		return true
	}
	_, miss := r.missing[name]
	return miss
}

// resolve loads one class and its dependencies from the vocabulary.
// Unknown names are recorded as missing; no error escapes a dependency
// resolution.
func (r *Registry) resolve(name string) {
	if r.done(name) {
		return
	}
	node, ok := r.voc.Class(name)
	if !ok {
		r.missing[name] = struct{}{}
		return
	}

	// Forward references are collected here and chased only after the
	// model is registered, which breaks mutual recursion.
	forward := make(map[string]struct{})
	own := newFieldSet()
	for _, prop := range r.voc.Properties() {
		if !prop.DomainIncludes.Contains(node.ID) {
			continue
		}
		f, refs := r.resolveField(prop)
		for ref := range refs {
			forward[ref] = struct{}{}
		}
		if f == nil {
			continue
		}
		own.set(f.Alias, f)
	}
	r.fieldCache[name] = own

	parents := node.SubClassOf.LocalNames()
	sort.Strings(parents)
	for _, parent := range parents {
		if !r.voc.Has(parent) {
			r.missing[parent] = struct{}{}
			continue
		}
		r.resolve(parent)
	}
	// Overlay parent fields on top of the type's own fields. A parent
	// field with the same name replaces the subclass declaration.
	for _, parent := range parents {
		if _, miss := r.missing[parent]; miss {
			continue
		}
		own.overlay(r.fieldCache[parent])
	}

	r.cache[name] = entry{model: &Model{
		Name:    modelName(name),
		Marker:  name,
		Comment: string(node.Comment),
		Fields:  own.fields(),
	}}

	for _, ref := range sortedSet(forward) {
		r.resolve(ref)
	}

	r.resolveMembers(name, node)
}

// resolveField computes the type expression for one property declared
// on the type being resolved. It returns the resolved field, or nil
// when the field is omitted, plus the forward references it queued.
func (r *Registry) resolveField(prop *load.Node) (*Field, map[string]struct{}) {
	declared := prop.RangeIncludes.LocalNames()
	sort.Strings(declared)

	// Pruning is a pass/fail filter: a declared range survives when
	// generation is unrestricted, when it is already resolved (or a
	// primitive), or when it is inside the allow-list.
	retained := make([]string, 0, len(declared))
	for _, typeName := range declared {
		if r.pruneTo == nil {
			retained = append(retained, typeName)
			continue
		}
		if _, ok := r.cache[typeName]; ok {
			retained = append(retained, typeName)
			continue
		}
		if _, ok := r.pruneTo[typeName]; ok {
			retained = append(retained, typeName)
		}
	}

	refs := make(map[string]struct{})
	for _, typeName := range retained {
		if !r.voc.Has(typeName) {
			r.missing[typeName] = struct{}{}
		} else if _, ok := r.cache[typeName]; !ok {
			refs[typeName] = struct{}{}
		}
	}

	// Most specific candidate first; ties keep the alphabetical order
	// of the declared ranges.
	ordered := append([]string(nil), retained...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return r.specificity[ordered[i]] > r.specificity[ordered[j]]
	})
	candidates := make([]Expr, 0, len(ordered))
	for _, typeName := range ordered {
		if _, miss := r.missing[typeName]; miss {
			continue
		}
		if alias, ok := r.typeMap[typeName]; ok {
			candidates = append(candidates, Primitive{Name: typeName, Alias: alias})
		} else {
			candidates = append(candidates, Ref{Name: typeName})
		}
	}

	expr := newExpr(candidates, len(retained) != len(declared))
	if expr == nil {
		return nil, refs
	}
	key := prop.LocalName()
	return &Field{
		Name:    fieldName(key),
		Alias:   key,
		Type:    expr,
		Comment: string(prop.Comment),
	}, refs
}

// resolveMembers scans the vocabulary for individuals whose type set
// contains the class, turning the class into an enum. Members are
// resolved recursively since individuals can appear as range types
// elsewhere.
func (r *Registry) resolveMembers(name string, node *load.Node) {
	for _, candidate := range r.voc.Nodes() {
		if !candidate.HasType(node.ID) {
			continue
		}
		member := candidate.LocalName()
		e, ok := r.enums[name]
		if !ok {
			e = &Enum{Name: modelName(name), Comment: string(node.Comment)}
			r.enums[name] = e
		}
		e.Members = append(e.Members, &Field{Name: exportedName(member), Alias: member})
		r.resolve(member)
	}
}

func sortedSet(set map[string]struct{}) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
