package gen

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"
)

// writeFile renders a Jennifer file, optionally passes it through the
// goimports formatter, and writes it into the target directory.
func (g *Generator) writeFile(f *jen.File, name string) error {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return NewGenerationError(name, "render", err)
	}
	out := buf.Bytes()
	fullPath := filepath.Join(g.cfg.Target, name)
	if !g.cfg.SkipFormat {
		formatted, err := imports.Process(fullPath, out, nil)
		if err != nil {
			// Write the unformatted file for debugging (errors intentionally
			// ignored as we're already in error state).
			_ = os.WriteFile(fullPath+".error", out, 0o644)
			return NewGenerationError(name, "format", err)
		}
		out = formatted
	}
	if err := os.WriteFile(fullPath, out, 0o644); err != nil {
		return NewGenerationError(name, "write", err)
	}
	return nil
}

// commentWidth is the wrap width for generated doc comments.
const commentWidth = 77

// docLines builds doc comment lines: an optional title line followed
// by the description wrapped at commentWidth. Empty input yields only
// the title.
func docLines(title, description string) []string {
	var lines []string
	if title != "" {
		lines = append(lines, title)
	}
	wrapped := wrap(description, commentWidth)
	if len(wrapped) == 0 {
		return lines
	}
	if len(lines) > 0 {
		lines = append(lines, "")
	}
	return append(lines, wrapped...)
}

// wrap greedily wraps text at the given width, collapsing any source
// whitespace. Words longer than the width stay unbroken.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	return append(lines, line)
}
