// Package load reads a JSON-LD vocabulary graph and indexes its nodes
// by id. It is a pure lookup layer: resolution logic lives in
// compiler/gen.
package load

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Prefix is the vocabulary id prefix used for class and property
// lookups by local name.
const Prefix = "schema:"

// ErrVocabulary indicates the vocabulary file could not be loaded.
var ErrVocabulary = errors.New("vocgen: invalid vocabulary")

// VocabularyError reports a vocabulary that could not be read or parsed.
type VocabularyError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *VocabularyError) Error() string {
	return fmt.Sprintf("vocgen: load vocabulary %q: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying error.
func (e *VocabularyError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for VocabularyError.
func (e *VocabularyError) Is(target error) bool {
	return target == ErrVocabulary
}

// Vocabulary is an id-indexed vocabulary graph. It is constructed once
// per generation run and passed by reference to the type resolver.
// The @graph declaration order is preserved so every downstream
// iteration is deterministic.
type Vocabulary struct {
	nodes []*Node
	index map[string]*Node
}

// Open reads and indexes the vocabulary at the given path.
func Open(path string) (*Vocabulary, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, &VocabularyError{Path: path, Cause: err}
	}
	v, err := Parse(buf)
	if err != nil {
		return nil, &VocabularyError{Path: path, Cause: err}
	}
	return v, nil
}

// Parse indexes a vocabulary from its raw JSON-LD document.
func Parse(buf []byte) (*Vocabulary, error) {
	var doc struct {
		Graph []*Node `json:"@graph"`
	}
	if err := json.Unmarshal(buf, &doc); err != nil {
		return nil, fmt.Errorf("parse graph: %w", err)
	}
	v := &Vocabulary{
		nodes: doc.Graph,
		index: make(map[string]*Node, len(doc.Graph)),
	}
	for _, n := range doc.Graph {
		v.index[n.ID] = n
	}
	return v, nil
}

// Len returns the number of nodes in the graph.
func (v *Vocabulary) Len() int {
	return len(v.nodes)
}

// Nodes returns all graph nodes in declaration order.
func (v *Vocabulary) Nodes() []*Node {
	return v.nodes
}

// Node returns the node with the given id.
func (v *Vocabulary) Node(id string) (*Node, bool) {
	n, ok := v.index[id]
	return n, ok
}

// Class returns the node for the given local name, trying the
// prefixed id first and falling back to the bare name for
// prefix-less vocabularies.
func (v *Vocabulary) Class(name string) (*Node, bool) {
	if n, ok := v.index[Prefix+name]; ok {
		return n, true
	}
	n, ok := v.index[name]
	return n, ok
}

// Has reports whether a node with the given local name exists.
func (v *Vocabulary) Has(name string) bool {
	_, ok := v.Class(name)
	return ok
}

// Properties returns all property nodes in declaration order.
func (v *Vocabulary) Properties() []*Node {
	props := make([]*Node, 0, len(v.nodes))
	for _, n := range v.nodes {
		if n.IsProperty() {
			props = append(props, n)
		}
	}
	return props
}

// ClassNames returns the local names of every non-property node in
// declaration order. This is the input set for the "all" wildcard.
func (v *Vocabulary) ClassNames() []string {
	names := make([]string, 0, len(v.nodes))
	for _, n := range v.nodes {
		if n.IsProperty() {
			continue
		}
		names = append(names, n.LocalName())
	}
	return names
}
