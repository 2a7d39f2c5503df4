package gen

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"
)

// Generator renders resolved models and enums into Go source files
// using Jennifer. Files are generated in parallel and streamed to the
// target directory.
type Generator struct {
	registry *Registry
	cfg      *Config

	// resolved name sets, computed once per Generate call
	modelNames map[string]struct{}
	enumNames  map[string]struct{}
}

// NewGenerator creates a generator over a resolved registry.
func NewGenerator(r *Registry, cfg *Config) *Generator {
	if cfg == nil {
		cfg = &Config{}
	}
	return &Generator{registry: r, cfg: cfg}
}

// Generate writes all output files for the registry's models and
// enums: the shared support types, the model structs and, when the
// vocabulary defines any, the enum declarations.
func (g *Generator) Generate(ctx context.Context) error {
	if g.cfg.Target == "" {
		return NewConfigError("Target", nil, "missing target directory")
	}
	if err := os.MkdirAll(g.cfg.Target, 0o755); err != nil {
		return err
	}
	models := g.registry.Models()
	enums := g.registry.Enums()
	g.modelNames = make(map[string]struct{}, len(models))
	for _, m := range models {
		g.modelNames[m.Marker] = struct{}{}
	}
	g.enumNames = make(map[string]struct{}, len(enums))
	for _, e := range enums {
		g.enumNames[e.Name] = struct{}{}
	}

	type fileTask struct {
		name  string
		build func() *jen.File
	}
	files := []fileTask{
		{name: supportFileName, build: g.supportFile},
		{name: "models.go", build: func() *jen.File { return g.modelsFile(models) }},
	}
	if len(enums) > 0 {
		files = append(files, fileTask{name: "enums.go", build: func() *jen.File { return g.enumsFile(enums) }})
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.cfg.workers())
	for _, f := range files {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return g.writeFile(f.build(), f.name)
			}
		})
	}
	return eg.Wait()
}

const supportFileName = "vocgen.go"

// newFile creates a Jennifer file with the configured header comment.
func (g *Generator) newFile() *jen.File {
	f := jen.NewFile(g.cfg.pkg())
	f.HeaderComment(g.cfg.header())
	return f
}

// supportFile declares the shared container used by all generated
// fields: a value that decodes from either a single JSON value or a
// list of them.
func (g *Generator) supportFile() *jen.File {
	f := g.newFile()

	f.Comment("OneOrMany holds a value that appears in the source document either as")
	f.Comment("a single value or as a list of values. It always marshals a singleton")
	f.Comment("back to the single-value form.")
	f.Type().Id("OneOrMany").Types(jen.Id("T").Any()).Index().Id("T")

	f.Comment("UnmarshalJSON implements json.Unmarshaler.")
	f.Func().
		Params(jen.Id("m").Op("*").Id("OneOrMany").Index(jen.Id("T"))).
		Id("UnmarshalJSON").Params(jen.Id("data").Index().Byte()).Error().
		Block(
			jen.Id("data").Op("=").Qual("bytes", "TrimSpace").Call(jen.Id("data")),
			jen.If(jen.Len(jen.Id("data")).Op(">").Lit(0).Op("&&").Id("data").Index(jen.Lit(0)).Op("==").LitRune('[')).Block(
				jen.Var().Id("list").Index().Id("T"),
				jen.If(
					jen.Err().Op(":=").Qual("encoding/json", "Unmarshal").Call(jen.Id("data"), jen.Op("&").Id("list")),
					jen.Err().Op("!=").Nil(),
				).Block(jen.Return(jen.Err())),
				jen.Op("*").Id("m").Op("=").Id("list"),
				jen.Return(jen.Nil()),
			),
			jen.Var().Id("one").Id("T"),
			jen.If(
				jen.Err().Op(":=").Qual("encoding/json", "Unmarshal").Call(jen.Id("data"), jen.Op("&").Id("one")),
				jen.Err().Op("!=").Nil(),
			).Block(jen.Return(jen.Err())),
			jen.Op("*").Id("m").Op("=").Id("OneOrMany").Index(jen.Id("T")).Values(jen.Id("one")),
			jen.Return(jen.Nil()),
		)

	f.Comment("MarshalJSON implements json.Marshaler.")
	f.Func().
		Params(jen.Id("m").Id("OneOrMany").Index(jen.Id("T"))).
		Id("MarshalJSON").Params().Params(jen.Index().Byte(), jen.Error()).
		Block(
			jen.If(jen.Len(jen.Id("m")).Op("==").Lit(1)).Block(
				jen.Return(jen.Qual("encoding/json", "Marshal").Call(jen.Id("m").Index(jen.Lit(0)))),
			),
			jen.Return(jen.Qual("encoding/json", "Marshal").Call(jen.Index().Id("T").Call(jen.Id("m")))),
		)

	return f
}

// modelsFile declares one struct per resolved model.
func (g *Generator) modelsFile(models []*Model) *jen.File {
	f := g.newFile()
	for _, m := range models {
		for _, line := range docLines(fmt.Sprintf("%s corresponds to the %q vocabulary class.", m.Name, m.Marker), m.Comment) {
			f.Comment(line)
		}
		f.Type().Id(m.Name).StructFunc(func(sg *jen.Group) {
			for i, fld := range m.Fields {
				if i > 0 {
					sg.Line()
				}
				for _, line := range g.fieldDoc(fld) {
					sg.Comment(line)
				}
				sg.Id(exportedName(fld.Alias)).
					Add(g.fieldType(fld.Type)).
					Tag(map[string]string{"json": fld.Alias + ",omitempty"})
			}
		})
	}
	return f
}

// enumsFile declares a string type plus one constant per member for
// every resolved enum.
func (g *Generator) enumsFile(enums []*Enum) *jen.File {
	f := g.newFile()
	for _, e := range enums {
		for _, line := range docLines(fmt.Sprintf("%s enumerates the %s individuals.", e.Name, e.Name), e.Comment) {
			f.Comment(line)
		}
		f.Type().Id(e.Name).String()
		f.Commentf("%s values.", e.Name)
		f.Const().DefsFunc(func(cg *jen.Group) {
			for _, m := range e.Members {
				cg.Id(e.Name + memberConstName(m.Alias)).Id(e.Name).Op("=").Lit(m.Alias)
			}
		})
	}
	return f
}

// fieldDoc builds the doc comment lines for one field: the wrapped
// property description plus, for multi-candidate unions, the list of
// alternatives in descending specificity order.
func (g *Generator) fieldDoc(f *Field) []string {
	lines := docLines("", f.Comment)
	if _, ok := unionOf(f.Type); ok {
		alts := alternatives(f.Type)
		names := make([]string, 0, len(alts))
		for _, alt := range alts {
			names = append(names, alt.String())
		}
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, "One of: "+strings.Join(names, ", ")+".")
	}
	return lines
}

// fieldType maps a resolved type expression to its Go representation.
// Optionality maps to the zero value of the container (absent fields
// stay nil and are omitted on marshal).
func (g *Generator) fieldType(e Expr) jen.Code {
	switch t := e.(type) {
	case Any:
		return jen.Any()
	case Optional:
		return g.fieldType(t.Elem)
	case OneOrMany:
		if _, multi := t.Elem.(Union); multi {
			return jen.Id("OneOrMany").Index(jen.Any())
		}
		return jen.Id("OneOrMany").Index(g.altType(t.Elem))
	default:
		return g.altType(e)
	}
}

// altType maps a single union alternative to its Go type.
func (g *Generator) altType(e Expr) jen.Code {
	switch t := e.(type) {
	case Primitive:
		return goType(t.Alias)
	case Ref:
		if _, ok := g.enumNames[modelName(t.Name)]; ok {
			return jen.Id(modelName(t.Name))
		}
		if _, ok := g.modelNames[t.Name]; ok {
			return jen.Op("*").Id(modelName(t.Name))
		}
		// References to types that do not materialize as declarations
		// (enum members, filtered types) degrade to any.
		return jen.Any()
	default:
		return jen.Any()
	}
}

// goType maps a primitive alias to Jennifer code.
func goType(alias string) jen.Code {
	switch alias {
	case "string":
		return jen.String()
	case "int":
		return jen.Int()
	case "int64":
		return jen.Int64()
	case "float64":
		return jen.Float64()
	case "bool":
		return jen.Bool()
	case "time.Time":
		return jen.Qual("time", "Time")
	default:
		return jen.Id(alias)
	}
}

// unionOf returns the union inside a multi-candidate expression.
func unionOf(e Expr) (Union, bool) {
	switch t := e.(type) {
	case Optional:
		return unionOf(t.Elem)
	case OneOrMany:
		return unionOf(t.Elem)
	case Union:
		return t, true
	default:
		return Union{}, false
	}
}
