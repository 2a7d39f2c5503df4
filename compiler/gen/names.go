package gen

import (
	"go/token"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English, cases.NoLower)

// digitPrefix is prepended to type names that begin with a digit, such
// as the vocabulary's "3DModel".
const digitPrefix = "Type"

// modelName escapes a vocabulary class name into a valid type name.
func modelName(name string) string {
	if name == "" {
		return name
	}
	if unicode.IsDigit(rune(name[0])) {
		return digitPrefix + name
	}
	return name
}

// fieldName escapes a property name that collides with a reserved
// word. The original name stays available as the field alias.
func fieldName(name string) string {
	if token.Lookup(name).IsKeyword() {
		return name + "_"
	}
	return name
}

// exportedName derives an exported identifier from a property or
// member name, e.g. "numberOfPages" becomes "NumberOfPages".
func exportedName(name string) string {
	return modelName(inflect.Camelize(name))
}

// memberConstName derives the constant suffix for an enum member.
func memberConstName(name string) string {
	return modelName(titleCaser.String(name))
}
