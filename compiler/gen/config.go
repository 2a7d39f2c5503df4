package gen

import (
	"fmt"
	"maps"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config holds the resolution and code generation settings for one run.
type Config struct {
	// Target is the output directory for generated files.
	Target string
	// Package is the generated package name.
	Package string
	// Header is the comment added at the top of each generated file.
	Header string
	// Workers bounds parallel file generation. Defaults to GOMAXPROCS.
	Workers int
	// PruneTo restricts resolution to the given class names plus
	// primitives and already-resolved types. nil follows every
	// reference.
	PruneTo []string
	// Greedy disables pruning entirely, following every referenced
	// type regardless of the requested root set.
	Greedy bool
	// SkipFormat skips the goimports pass over generated files.
	SkipFormat bool
	// TypeMap overrides entries of the default primitive mapping.
	TypeMap map[string]string
	// Specificity overrides entries of the default specificity ranking.
	Specificity map[string]int
}

// FileConfig is the YAML configuration file surface. Values from the
// file seed a Config; command line flags take precedence.
type FileConfig struct {
	// Vocabulary is the path of the vocabulary file.
	Vocabulary string `yaml:"vocabulary,omitempty"`
	// Roots are the type names to resolve. "all" selects every class.
	Roots []string `yaml:"roots,omitempty"`
	// Target is the output directory.
	Target string `yaml:"target,omitempty"`
	// Package is the generated package name.
	Package string `yaml:"package,omitempty"`
	// TypeMap overrides the primitive mapping.
	TypeMap map[string]string `yaml:"type_map,omitempty"`
	// Specificity overrides the specificity ranking.
	Specificity map[string]int `yaml:"specificity,omitempty"`
}

// ReadFileConfig loads a YAML configuration file.
func ReadFileConfig(path string) (*FileConfig, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	fc := &FileConfig{}
	if err := yaml.Unmarshal(buf, fc); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	return fc, nil
}

// pkg returns the generated package name, defaulting to "models".
func (c *Config) pkg() string {
	if c.Package != "" {
		return c.Package
	}
	return "models"
}

// header returns the generated file header comment.
func (c *Config) header() string {
	if c.Header != "" {
		return c.Header
	}
	return "Code generated by vocgen. DO NOT EDIT."
}

// workers returns the parallel generation limit.
func (c *Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// typeMap returns the primitive mapping with overrides applied.
func (c *Config) typeMap() map[string]string {
	m := maps.Clone(DefaultTypeMap)
	maps.Copy(m, c.TypeMap)
	return m
}

// specificityMap returns the specificity ranking with overrides applied.
func (c *Config) specificityMap() map[string]int {
	m := maps.Clone(DefaultSpecificity)
	maps.Copy(m, c.Specificity)
	return m
}
