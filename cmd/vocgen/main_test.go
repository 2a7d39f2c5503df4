package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/vocgen/compiler/gen"
)

func TestGenOptions(t *testing.T) {
	t.Run("flag and file values map onto options", func(t *testing.T) {
		fc := &gen.FileConfig{
			TypeMap:     map[string]string{"Integer": "int64"},
			Specificity: map[string]int{"URL": 9},
		}
		cfg, err := gen.NewConfig(genOptions("./out", "vocab", true, true, fc)...)

		require.NoError(t, err)
		assert.Equal(t, "./out", cfg.Target)
		assert.Equal(t, "vocab", cfg.Package)
		assert.True(t, cfg.Greedy)
		assert.True(t, cfg.SkipFormat)
		assert.Equal(t, map[string]string{"Integer": "int64"}, cfg.TypeMap)
		assert.Equal(t, map[string]int{"URL": 9}, cfg.Specificity)
	})

	t.Run("disabled flags add no options", func(t *testing.T) {
		cfg, err := gen.NewConfig(genOptions("./out", "models", false, false, &gen.FileConfig{})...)

		require.NoError(t, err)
		assert.False(t, cfg.Greedy)
		assert.False(t, cfg.SkipFormat)
		assert.Nil(t, cfg.TypeMap)
		assert.Nil(t, cfg.Specificity)
	})

	t.Run("empty target fails validation", func(t *testing.T) {
		_, err := gen.NewConfig(genOptions("", "models", false, false, &gen.FileConfig{})...)

		require.Error(t, err)
		assert.True(t, gen.IsConfigError(err))
	})
}

func TestFallback(t *testing.T) {
	assert.Equal(t, "flag", fallback("flag", "file", "default"))
	assert.Equal(t, "file", fallback("", "file", "default"))
	assert.Equal(t, "default", fallback("", "", "default"))
	assert.Equal(t, "", fallback("", "", ""))
}
