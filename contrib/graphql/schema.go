// Package graphql emits a GraphQL schema from resolved vocabulary
// types and maintains the matching gqlgen.yml model bindings, so the
// generated Go models can back a GraphQL API without hand-written
// schema files.
package graphql

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/vocgen/compiler/gen"
)

// header is prepended to every generated schema document.
const header = "# Code generated by vocgen. DO NOT EDIT.\n"

// Schema renders the SDL document for the given models and enums.
//
// Models become object types and enums become GraphQL enums. Field
// expressions map onto SDL as follows: a single candidate becomes a
// list of the candidate type (one-or-many), a multi-candidate union or
// the open Any sentinel degrades to the Any scalar.
func Schema(models []*gen.Model, enums []*gen.Enum) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\nscalar Any\nscalar Time\n")

	for _, m := range models {
		b.WriteString("\n")
		writeDescription(&b, m.Comment)
		fmt.Fprintf(&b, "type %s {\n", m.Name)
		if len(m.Fields) == 0 {
			// SDL forbids empty type bodies.
			b.WriteString("  _: Boolean\n")
		}
		for _, f := range m.Fields {
			fmt.Fprintf(&b, "  %s: %s\n", f.Alias, fieldType(f.Type))
		}
		b.WriteString("}\n")
	}

	for _, e := range enums {
		b.WriteString("\n")
		writeDescription(&b, e.Comment)
		fmt.Fprintf(&b, "enum %s {\n", e.Name)
		for _, m := range e.Members {
			fmt.Fprintf(&b, "  %s\n", m.Alias)
		}
		b.WriteString("}\n")
	}
	return b.String()
}

// ValidateSchema parses and type-checks an SDL document. It is the
// schema counterpart of the goimports pass over generated Go files: a
// rendering bug surfaces here instead of in the consumer's gqlgen run.
func ValidateSchema(sdl string) error {
	if _, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: sdl}); err != nil {
		return fmt.Errorf("validate schema: %w", err)
	}
	return nil
}

// WriteSchema renders the SDL document, validates it, and writes it to
// path.
func WriteSchema(path string, models []*gen.Model, enums []*gen.Enum) error {
	sdl := Schema(models, enums)
	if err := ValidateSchema(sdl); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create schema directory: %w", err)
		}
	}
	return os.WriteFile(path, []byte(sdl), 0o644)
}

// fieldType maps a resolved type expression to an SDL type reference.
func fieldType(e gen.Expr) string {
	switch t := e.(type) {
	case gen.Any:
		return "Any"
	case gen.Optional:
		return fieldType(t.Elem)
	case gen.OneOrMany:
		if _, multi := t.Elem.(gen.Union); multi {
			return "[Any]"
		}
		return "[" + altType(t.Elem) + "]"
	default:
		return altType(e)
	}
}

// altType maps a single union alternative to an SDL type name.
func altType(e gen.Expr) string {
	switch t := e.(type) {
	case gen.Primitive:
		return scalar(t.Alias)
	case gen.Ref:
		return t.Name
	default:
		return "Any"
	}
}

// scalar maps a Go primitive alias to the SDL scalar name.
func scalar(alias string) string {
	switch alias {
	case "string":
		return "String"
	case "int", "int64":
		return "Int"
	case "float64":
		return "Float"
	case "bool":
		return "Boolean"
	case "time.Time":
		return "Time"
	default:
		return "Any"
	}
}

// writeDescription emits an SDL description block for non-empty text.
func writeDescription(b *strings.Builder, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	// Triple quotes inside descriptions would terminate the block.
	text = strings.ReplaceAll(text, `"""`, `\"""`)
	fmt.Fprintf(b, "\"\"\"\n%s\n\"\"\"\n", text)
}
