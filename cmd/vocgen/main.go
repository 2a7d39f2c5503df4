// vocgen generates Go type definitions from a JSON-LD vocabulary
// graph, such as a schema.org release.
//
// Usage:
//
//	vocgen [flags] TYPE...
//	vocgen [flags] all
//
// The positional arguments are the root type names to resolve; the
// generated tree is pruned to them unless -greedy is set. The special
// name "all" exports every class in the vocabulary.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/syssam/vocgen/compiler"
	"github.com/syssam/vocgen/compiler/gen"
	"github.com/syssam/vocgen/contrib/graphql"
)

func main() {
	var (
		vocabPath  = flag.String("vocab", "", "vocabulary JSON-LD file (default schemaorg-current-http.jsonld)")
		target     = flag.String("target", "", "output directory for generated files (default ./models)")
		pkg        = flag.String("pkg", "", "generated package name (default models)")
		configPath = flag.String("config", "", "optional YAML configuration file")
		greedy     = flag.Bool("greedy", false, "follow every referenced type instead of pruning to the requested roots")
		skipFormat = flag.Bool("skip-format", false, "skip the goimports pass over generated files")
		emitGQL    = flag.Bool("graphql", false, "also emit a GraphQL schema next to the generated package")
		watch      = flag.Bool("watch", false, "regenerate whenever the vocabulary file changes")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: vocgen [flags] TYPE... | all\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := run(*vocabPath, *target, *pkg, *configPath, *greedy, *skipFormat, *emitGQL, *watch, flag.Args()); err != nil {
		slog.Error("vocgen failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(vocabPath, target, pkg, configPath string, greedy, skipFormat, emitGQL, watch bool, roots []string) error {
	fc := &gen.FileConfig{}
	if configPath != "" {
		loaded, err := gen.ReadFileConfig(configPath)
		if err != nil {
			return err
		}
		fc = loaded
	}

	// Flags win over file values; file values win over defaults.
	vocabPath = fallback(vocabPath, fc.Vocabulary, "schemaorg-current-http.jsonld")
	target = fallback(target, fc.Target, "models")
	pkg = fallback(pkg, fc.Package, "models")
	if len(roots) == 0 {
		roots = fc.Roots
	}
	if len(roots) == 0 {
		flag.Usage()
		return errors.New("no root types requested")
	}

	cfg, err := gen.NewConfig(genOptions(target, pkg, greedy, skipFormat, fc)...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	regen := func(ctx context.Context) error {
		registry, err := compiler.Generate(ctx, vocabPath, roots, cfg)
		if err != nil {
			return err
		}
		if emitGQL {
			schemaPath := filepath.Join(target, "schema.graphql")
			if err := graphql.WriteSchema(schemaPath, registry.Models(), registry.Enums()); err != nil {
				return err
			}
			slog.Info("graphql schema written", slog.String("file", schemaPath))
		}
		return nil
	}

	if err := regen(ctx); err != nil {
		return err
	}
	if watch {
		if err := compiler.Watch(ctx, vocabPath, regen); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}
	return nil
}

// genOptions assembles the generation options from the flag values and
// the optional config file.
func genOptions(target, pkg string, greedy, skipFormat bool, fc *gen.FileConfig) []gen.Option {
	opts := []gen.Option{
		gen.WithTarget(target),
		gen.WithPackage(pkg),
	}
	if greedy {
		opts = append(opts, gen.WithGreedy())
	}
	if skipFormat {
		opts = append(opts, gen.WithSkipFormat())
	}
	if len(fc.TypeMap) > 0 {
		opts = append(opts, gen.WithTypeMap(fc.TypeMap))
	}
	if len(fc.Specificity) > 0 {
		opts = append(opts, gen.WithSpecificity(fc.Specificity))
	}
	return opts
}

// fallback returns the first non-empty value.
func fallback(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
