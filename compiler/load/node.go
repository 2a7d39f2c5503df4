package load

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Node kinds as they appear in a vocabulary @type field.
const (
	TypeProperty = "rdf:Property"
	TypeClass    = "rdfs:Class"
)

// Node is a single vocabulary graph node: a class, a property, or an
// individual. Relation sets and literals are normalized at decode time,
// so the rest of the pipeline never sees the raw JSON-LD shapes.
type Node struct {
	ID             string `json:"@id"`
	Types          Values `json:"@type"`
	Comment        Text   `json:"rdfs:comment"`
	SubClassOf     Refs   `json:"rdfs:subClassOf"`
	DomainIncludes Refs   `json:"schema:domainIncludes"`
	RangeIncludes  Refs   `json:"schema:rangeIncludes"`
}

// LocalName returns the node id without its vocabulary prefix.
func (n *Node) LocalName() string {
	return LocalName(n.ID)
}

// IsProperty reports whether the node declares a property.
func (n *Node) IsProperty() bool {
	return n.Types.Contains(TypeProperty)
}

// HasType reports whether the node declares the given id in its @type
// set. Used to find the individuals of an enumeration class.
func (n *Node) HasType(id string) bool {
	return n.Types.Contains(id)
}

// LocalName strips the prefix from a vocabulary id, e.g.
// "schema:CreativeWork" becomes "CreativeWork".
func LocalName(id string) string {
	id = strings.TrimSpace(id)
	if i := strings.LastIndex(id, ":"); i >= 0 {
		return id[i+1:]
	}
	return id
}

// Text is an rdfs literal that appears either as a plain JSON string or
// wrapped as {"@value": "..."}. Both forms decode to the same value.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	if len(bytes.TrimSpace(data)) > 0 && bytes.TrimSpace(data)[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var wrapped struct {
		Value string `json:"@value"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	*t = Text(wrapped.Value)
	return nil
}

// Refs is a set of node references. In the vocabulary it appears as a
// single {"@id": ...} object or a list of them; both decode to a flat
// list of ids in declaration order.
type Refs []string

// UnmarshalJSON implements json.Unmarshaler.
func (r *Refs) UnmarshalJSON(data []byte) error {
	type ref struct {
		ID string `json:"@id"`
	}
	if len(bytes.TrimSpace(data)) > 0 && bytes.TrimSpace(data)[0] == '[' {
		var list []ref
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		ids := make(Refs, 0, len(list))
		for _, item := range list {
			ids = append(ids, item.ID)
		}
		*r = ids
		return nil
	}
	var one ref
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*r = Refs{one.ID}
	return nil
}

// Contains reports whether the reference set contains the given id.
func (r Refs) Contains(id string) bool {
	for _, have := range r {
		if have == id {
			return true
		}
	}
	return false
}

// LocalNames returns the referenced ids without their prefixes.
func (r Refs) LocalNames() []string {
	names := make([]string, 0, len(r))
	for _, id := range r {
		names = append(names, LocalName(id))
	}
	return names
}

// Values is a set of plain string values that appears as a single JSON
// string or a list of strings.
type Values []string

// UnmarshalJSON implements json.Unmarshaler.
func (v *Values) UnmarshalJSON(data []byte) error {
	if len(bytes.TrimSpace(data)) > 0 && bytes.TrimSpace(data)[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*v = list
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*v = Values{one}
	return nil
}

// Contains reports whether the value set contains the given value.
func (v Values) Contains(value string) bool {
	for _, have := range v {
		if have == value {
			return true
		}
	}
	return false
}
