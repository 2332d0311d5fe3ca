// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package keepalived

import (
	"fmt"
	"strings"
)

const indentUnit = "    "

// Builder assembles keepalived's brace-delimited configuration syntax.
// Blocks are opened and closed explicitly; the builder tracks nesting so
// callers never deal with indentation.
type Builder struct {
	lines []string
	depth int
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) add(line string) {
	b.lines = append(b.lines, strings.Repeat(indentUnit, b.depth)+line)
}

// Comment adds a "# text" line at the current depth.
func (b *Builder) Comment(text string) *Builder {
	b.add("# " + text)
	return b
}

// Blank adds an empty separator line.
func (b *Builder) Blank() *Builder {
	b.lines = append(b.lines, "")
	return b
}

// Line adds a keyword line, formatted like fmt.Sprintf.
func (b *Builder) Line(format string, args ...any) *Builder {
	b.add(fmt.Sprintf(format, args...))
	return b
}

// Open starts a block named header.
func (b *Builder) Open(header string) *Builder {
	b.add(header + " {")
	b.depth++
	return b
}

// Close ends the innermost open block.
func (b *Builder) Close() *Builder {
	if b.depth == 0 {
		return b
	}
	b.depth--
	b.add("}")
	return b
}

// Block adds a block whose body is one keyword per line.
func (b *Builder) Block(header string, body ...string) *Builder {
	b.Open(header)
	for _, line := range body {
		b.add(line)
	}
	return b.Close()
}

// Build closes any blocks left open and returns the text with a trailing
// newline.
func (b *Builder) Build() string {
	for b.depth > 0 {
		b.Close()
	}
	return strings.Join(b.lines, "\n") + "\n"
}
