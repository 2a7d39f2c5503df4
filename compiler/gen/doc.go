// Package gen resolves a vocabulary graph into a closed, flattened set
// of type definitions and generates Go source code from them.
//
// # Architecture
//
// The pipeline follows this flow:
//
//	Vocabulary file (JSON-LD)
//	        ↓
//	   load.Vocabulary (id-indexed graph)
//	        ↓
//	   Registry (type resolution: models, enums, missing types)
//	        ↓
//	   Generator (Jennifer-rendered Go source)
//
// # Key Types
//
// The package provides several key types:
//
//   - Registry: resolves classes into Models and Enums with a
//     memoizing type cache that makes cyclic graphs terminate
//   - Expr: structured field type expression (primitive, reference,
//     union, one-or-many, optional, any)
//   - Generator: renders resolved types into Go files
//   - Config: resolution and generation settings
//
// # Resolution
//
// Resolving a class collects its own fields from the property nodes
// whose domain contains it, resolves and merges parent classes, and
// registers the model before chasing forward references, so two
// classes that reference each other both terminate. Classes whose
// individuals appear in the graph additionally become enums.
//
// Requested roots that are absent from the vocabulary fail with
// UnknownTypeError. Absent dependencies never fail the run; they are
// recorded in the missing-type set and the referencing field degrades
// to the open Any alternative or is omitted.
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithTarget("./models"),
//	    gen.WithPruneTo("CreativeWork", "Person"),
//	)
//	registry := gen.NewRegistry(voc, cfg)
//	if err := registry.Resolve("CreativeWork"); err != nil {
//	    return err
//	}
//	err = gen.NewGenerator(registry, cfg).Generate(ctx)
package gen
