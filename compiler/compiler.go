// Package compiler ties vocabulary loading, type resolution and code
// generation together into one generation run.
package compiler

import (
	"context"
	"log/slog"
	"slices"

	"github.com/syssam/vocgen/compiler/gen"
	"github.com/syssam/vocgen/compiler/load"
)

// WildcardAll is the root name that requests every class in the
// vocabulary. When used, pruning is disabled since the whole graph is
// included anyway.
const WildcardAll = "all"

// Generate runs one full generation pass: open the vocabulary, resolve
// the requested roots and their dependencies, and write the generated
// source files. It returns the registry so callers can feed extensions
// or inspect diagnostics.
//
// Missing dependencies are reported as a warning and never fail the
// run; an unknown root or an unreadable vocabulary does.
func Generate(ctx context.Context, vocabPath string, roots []string, cfg *gen.Config) (*gen.Registry, error) {
	voc, err := load.Open(vocabPath)
	if err != nil {
		return nil, err
	}
	return GenerateVocabulary(ctx, voc, roots, cfg)
}

// GenerateVocabulary is Generate over an already-loaded vocabulary.
func GenerateVocabulary(ctx context.Context, voc *load.Vocabulary, roots []string, cfg *gen.Config) (*gen.Registry, error) {
	if cfg == nil {
		cfg = &gen.Config{}
	}
	run := *cfg
	if slices.Contains(roots, WildcardAll) {
		roots = voc.ClassNames()
		run.Greedy = true
	}
	// Pruning binds to the explicit root set unless the caller asked
	// for greedy expansion or supplied an allow-list of its own.
	if !run.Greedy && run.PruneTo == nil {
		run.PruneTo = roots
	}

	registry := gen.NewRegistry(voc, &run)
	if err := registry.Resolve(roots...); err != nil {
		return nil, err
	}
	if err := gen.NewGenerator(registry, &run).Generate(ctx); err != nil {
		return nil, err
	}
	if missing := registry.MissingTypes(); len(missing) > 0 {
		slog.Warn("vocabulary references unresolvable types",
			slog.Int("count", len(missing)),
			slog.Any("types", missing))
	}
	slog.Info("generation complete",
		slog.Int("models", len(registry.Models())),
		slog.Int("enums", len(registry.Enums())),
		slog.String("target", run.Target))
	return registry, nil
}
