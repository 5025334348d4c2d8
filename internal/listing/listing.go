// Package listing renders the folder-structure document: an indented
// outline of the directories and selected files of a tree.
package listing

import (
	"fmt"
	"iter"
	"strings"

	"github.com/bethropolis/dir-bundler/internal/render"
	"github.com/bethropolis/dir-bundler/internal/walker"
)

// Style selects the outline decoration
type Style int

const (
	// StylePlain writes "name/" for directories and "name" for files
	StylePlain Style = iota
	// StyleDecorated adds a title preamble and "- " bullets
	StyleDecorated
)

// ParseStyle accepts "plain" (or "") and "decorated"
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "plain":
		return StylePlain, nil
	case "decorated", "bullets":
		return StyleDecorated, nil
	default:
		return StylePlain, fmt.Errorf("listing: unknown style %q", s)
	}
}

const indentUnit = "    "

// Writer is where the outline goes; *sink.Sink satisfies it
type Writer interface {
	Write(text string) error
}

// Stats counts what was listed
type Stats struct {
	Dirs  int
	Files int
}

// Write consumes entries, as produced by walker.Walker.All, and writes one
// line per entry. Indentation is four spaces per level: a directory at
// depth d is indented d times and the files inside it d+1 times.
func Write(out Writer, entries iter.Seq[walker.Entry], style Style) (Stats, error) {
	var stats Stats
	bullet := ""
	if style == StyleDecorated {
		bullet = "- "
	}

	for e := range entries {
		var line string
		if e.IsDir {
			if e.Depth == 0 && style == StyleDecorated {
				if err := out.Write(preamble(e.Name)); err != nil {
					return stats, err
				}
			}
			line = strings.Repeat(indentUnit, e.Depth) + bullet + e.Name + "/\n"
			stats.Dirs++
		} else {
			// a file's depth is its directory's depth plus one
			line = strings.Repeat(indentUnit, e.Depth) + bullet + e.Name + "\n"
			stats.Files++
		}
		if err := out.Write(line); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func preamble(rootName string) string {
	return "Project Directory Structure\n" +
		"Root: " + rootName + "/\n" +
		render.Rule + "\n\n"
}
