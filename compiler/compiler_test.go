package compiler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/vocgen/compiler/gen"
	"github.com/syssam/vocgen/compiler/load"
)

const testVocab = "load/testdata/vocabulary.jsonld"

func TestGenerate(t *testing.T) {
	t.Run("pruned run resolves roots and parents only", func(t *testing.T) {
		target := t.TempDir()
		registry, err := Generate(context.Background(), testVocab, []string{"Book"}, &gen.Config{Target: target})
		require.NoError(t, err)

		names := make([]string, 0)
		for _, m := range registry.Models() {
			names = append(names, m.Name)
		}
		assert.Equal(t, []string{"Book", "CreativeWork", "Thing"}, names)
		assert.Empty(t, registry.Enums())
		assert.Empty(t, registry.MissingTypes())

		assert.FileExists(t, filepath.Join(target, "vocgen.go"))
		assert.FileExists(t, filepath.Join(target, "models.go"))
		assert.NoFileExists(t, filepath.Join(target, "enums.go"))

		// The enum range was pruned away, so the field degrades to Any.
		src, err := os.ReadFile(filepath.Join(target, "models.go"))
		require.NoError(t, err)
		assert.Contains(t, string(src), "BookFormat any")
	})

	t.Run("greedy run follows every reference", func(t *testing.T) {
		target := t.TempDir()
		registry, err := Generate(context.Background(), testVocab, []string{"Book"},
			&gen.Config{Target: target, Greedy: true})
		require.NoError(t, err)

		enums := registry.Enums()
		require.Len(t, enums, 1)
		assert.Equal(t, "BookFormatType", enums[0].Name)
		assert.FileExists(t, filepath.Join(target, "enums.go"))
	})

	t.Run("all wildcard exports every class", func(t *testing.T) {
		target := t.TempDir()
		registry, err := Generate(context.Background(), testVocab, []string{WildcardAll}, &gen.Config{Target: target})
		require.NoError(t, err)

		models := registry.Models()
		require.NotEmpty(t, models)
		names := make(map[string]struct{}, len(models))
		for _, m := range models {
			names[m.Marker] = struct{}{}
		}
		for _, want := range []string{"Thing", "CreativeWork", "Person", "Organization", "Book"} {
			assert.Contains(t, names, want)
		}
		// Enum members stay out of the model set even under "all".
		assert.NotContains(t, names, "Hardcover")
		assert.NotContains(t, names, "EBook")
		require.Len(t, registry.Enums(), 1)
	})

	t.Run("unknown root is fatal", func(t *testing.T) {
		_, err := Generate(context.Background(), testVocab, []string{"Nope"},
			&gen.Config{Target: t.TempDir()})
		require.Error(t, err)
		assert.True(t, gen.IsUnknownTypeError(err))
	})

	t.Run("unreadable vocabulary is fatal", func(t *testing.T) {
		_, err := Generate(context.Background(), "nope.jsonld", []string{"Thing"},
			&gen.Config{Target: t.TempDir()})
		require.Error(t, err)
		assert.True(t, errors.Is(err, load.ErrVocabulary))
	})
}

func TestGenerateVocabulary(t *testing.T) {
	t.Run("nil config prunes to the requested roots", func(t *testing.T) {
		voc, err := load.Open(testVocab)
		require.NoError(t, err)

		// nil config has no target, so generation fails, but resolution
		// happens first and the pruning default is observable through it.
		_, genErr := GenerateVocabulary(context.Background(), voc, []string{"Person"}, nil)
		require.Error(t, genErr)
		assert.True(t, gen.IsConfigError(genErr))
	})

	t.Run("caller config is not mutated", func(t *testing.T) {
		voc, err := load.Open(testVocab)
		require.NoError(t, err)

		cfg := &gen.Config{Target: t.TempDir()}
		_, err = GenerateVocabulary(context.Background(), voc, []string{"Person"}, cfg)
		require.NoError(t, err)
		assert.Nil(t, cfg.PruneTo)
		assert.False(t, cfg.Greedy)
	})
}

func TestWatch(t *testing.T) {
	t.Run("returns when the context is canceled", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "vocab.jsonld")
		require.NoError(t, os.WriteFile(path, []byte(`{"@graph": []}`), 0o644))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := Watch(ctx, path, func(context.Context) error { return nil })
		assert.True(t, errors.Is(err, context.Canceled))
	})

	t.Run("regenerates after the vocabulary changes", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "vocab.jsonld")
		require.NoError(t, os.WriteFile(path, []byte(`{"@graph": []}`), 0o644))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		regenerated := make(chan struct{}, 1)
		done := make(chan error, 1)
		go func() {
			done <- Watch(ctx, path, func(context.Context) error {
				select {
				case regenerated <- struct{}{}:
				default:
				}
				return nil
			})
		}()

		// Give the watcher a moment to register, then touch the file.
		time.Sleep(100 * time.Millisecond)
		require.NoError(t, os.WriteFile(path, []byte(`{"@graph": [{"@id": "schema:Thing"}]}`), 0o644))

		select {
		case <-regenerated:
		case <-time.After(5 * time.Second):
			t.Fatal("watcher did not regenerate after a write")
		}
		cancel()
		select {
		case err := <-done:
			assert.True(t, errors.Is(err, context.Canceled))
		case <-time.After(5 * time.Second):
			t.Fatal("watcher did not stop after cancellation")
		}
	})

	t.Run("regeneration failures do not stop the watch", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "vocab.jsonld")
		require.NoError(t, os.WriteFile(path, []byte(`{"@graph": []}`), 0o644))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		calls := make(chan struct{}, 2)
		done := make(chan error, 1)
		go func() {
			done <- Watch(ctx, path, func(context.Context) error {
				select {
				case calls <- struct{}{}:
				default:
				}
				return errors.New("boom")
			})
		}()

		time.Sleep(100 * time.Millisecond)
		require.NoError(t, os.WriteFile(path, []byte(`1`), 0o644))
		select {
		case <-calls:
		case <-time.After(5 * time.Second):
			t.Fatal("watcher did not invoke regen")
		}

		// A second change still triggers regeneration after a failure.
		time.Sleep(300 * time.Millisecond)
		require.NoError(t, os.WriteFile(path, []byte(`2`), 0o644))
		select {
		case <-calls:
		case <-time.After(5 * time.Second):
			t.Fatal("watcher stopped after a regen failure")
		}
	})
}
