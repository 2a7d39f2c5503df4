package gen

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	c := &Config{}

	t.Run("package defaults to models", func(t *testing.T) {
		assert.Equal(t, "models", c.pkg())
		assert.Equal(t, "vocab", (&Config{Package: "vocab"}).pkg())
	})

	t.Run("header defaults to the generated marker", func(t *testing.T) {
		assert.Equal(t, "Code generated by vocgen. DO NOT EDIT.", c.header())
		assert.Equal(t, "custom", (&Config{Header: "custom"}).header())
	})

	t.Run("workers defaults to GOMAXPROCS", func(t *testing.T) {
		assert.Equal(t, runtime.GOMAXPROCS(0), c.workers())
		assert.Equal(t, 3, (&Config{Workers: 3}).workers())
	})
}

func TestConfig_TypeMap(t *testing.T) {
	t.Run("defaults are used untouched", func(t *testing.T) {
		m := (&Config{}).typeMap()
		assert.Equal(t, "string", m["Text"])
		assert.Equal(t, "int", m["Integer"])
		assert.Equal(t, "time.Time", m["DateTime"])
	})

	t.Run("overrides replace defaults without mutating them", func(t *testing.T) {
		c := &Config{TypeMap: map[string]string{"Integer": "int64", "Identifier": "string"}}
		m := c.typeMap()

		assert.Equal(t, "int64", m["Integer"])
		assert.Equal(t, "string", m["Identifier"])
		assert.Equal(t, "int", DefaultTypeMap["Integer"])
	})
}

func TestConfig_SpecificityMap(t *testing.T) {
	t.Run("defaults rank DateTime over Date over Number", func(t *testing.T) {
		m := (&Config{}).specificityMap()
		assert.Greater(t, m["DateTime"], m["Date"])
		assert.Greater(t, m["Date"], m["Number"])
		assert.Greater(t, m["URL"], m["Text"])
	})

	t.Run("overrides replace defaults", func(t *testing.T) {
		c := &Config{Specificity: map[string]int{"Text": 9}}
		assert.Equal(t, 9, c.specificityMap()["Text"])
		assert.Equal(t, 1, DefaultSpecificity["Text"])
	})
}

func TestReadFileConfig(t *testing.T) {
	t.Run("parses the full surface", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vocgen.yml")
		require.NoError(t, os.WriteFile(path, []byte(`
vocabulary: schemaorg.jsonld
roots:
  - CreativeWork
  - Person
target: ./models
package: vocab
type_map:
  Integer: int64
specificity:
  URL: 9
`), 0o644))

		fc, err := ReadFileConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "schemaorg.jsonld", fc.Vocabulary)
		assert.Equal(t, []string{"CreativeWork", "Person"}, fc.Roots)
		assert.Equal(t, "./models", fc.Target)
		assert.Equal(t, "vocab", fc.Package)
		assert.Equal(t, map[string]string{"Integer": "int64"}, fc.TypeMap)
		assert.Equal(t, map[string]int{"URL": 9}, fc.Specificity)
	})

	t.Run("missing file returns error", func(t *testing.T) {
		_, err := ReadFileConfig(filepath.Join(t.TempDir(), "nope.yml"))
		require.Error(t, err)
	})

	t.Run("malformed YAML returns error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vocgen.yml")
		require.NoError(t, os.WriteFile(path, []byte("roots: {"), 0o644))

		_, err := ReadFileConfig(path)
		require.Error(t, err)
	})
}
