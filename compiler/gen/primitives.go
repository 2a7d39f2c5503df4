package gen

// DefaultTypeMap maps vocabulary data types to Go types.
// Reference: https://schema.org/DataType
var DefaultTypeMap = map[string]string{
	"Boolean":           "bool",
	"False":             "bool",
	"True":              "bool",
	"Date":              "time.Time",
	"DateTime":          "time.Time",
	"Time":              "time.Time",
	"Number":            "float64",
	"Float":             "float64",
	"Integer":           "int",
	"Text":              "string",
	"CssSelectorType":   "string",
	"PronounceableText": "string",
	"URL":               "string",
	"XPathType":         "string",
}

// DefaultSpecificity ranks vocabulary data types, where a higher number
// is a more specific type. Union alternatives are ordered by descending
// rank so a union-matching consumer tries the most specific candidate
// first.
var DefaultSpecificity = map[string]int{
	"Boolean":           1,
	"False":             1,
	"True":              1,
	"Date":              4,
	"DateTime":          5,
	"Time":              4,
	"Number":            3,
	"Float":             4,
	"Integer":           5,
	"Text":              1,
	"CssSelectorType":   1,
	"PronounceableText": 1,
	"URL":               2,
	"XPathType":         1,
}
