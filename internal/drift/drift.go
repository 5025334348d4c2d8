// Package drift compares freshly rendered documents with the output files
// already on disk.
package drift

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// ErrStale is returned when at least one output differs from what a fresh
// run would write
var ErrStale = errors.New("outputs are out of date")

// Op is the kind of a diff line
type Op int

const (
	OpEqual Op = iota
	OpInsert
	OpDelete
)

// Line is one line of a line-level diff, without its newline
type Line struct {
	Op   Op
	Text string
}

// Result is the comparison of one output document
type Result struct {
	Name    string
	Missing bool
	Added   int
	Removed int
	Lines   []Line
}

// Stale reports whether the file on disk differs from the rendered document
func (r Result) Stale() bool {
	return r.Missing || r.Added > 0 || r.Removed > 0
}

// Compare reads the file name and diffs it line by line against want
func Compare(name, want string) (Result, error) {
	res := Result{Name: name}
	data, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		res.Missing = true
		return res, nil
	}
	if err != nil {
		return res, fmt.Errorf("drift: failed to read %s: %w", name, err)
	}

	res.Lines = Diff(string(data), want)
	for _, l := range res.Lines {
		switch l.Op {
		case OpInsert:
			res.Added++
		case OpDelete:
			res.Removed++
		}
	}
	return res, nil
}

// Diff returns the line-level diff that turns have into want
func Diff(have, want string) []Line {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(have, want)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []Line
	for _, d := range diffs {
		op := OpEqual
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = OpInsert
		case diffmatchpatch.DiffDelete:
			op = OpDelete
		}
		for _, text := range splitLines(d.Text) {
			out = append(out, Line{Op: op, Text: text})
		}
	}
	return out
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

// Print writes the changed lines of each stale result. Runs of unchanged
// lines are collapsed to a count.
func Print(w io.Writer, results []Result, useColors bool) {
	add := color.New(color.FgGreen)
	del := color.New(color.FgRed)
	dim := color.New(color.Faint)
	if !useColors {
		add.DisableColor()
		del.DisableColor()
		dim.DisableColor()
	}

	for _, r := range results {
		switch {
		case r.Missing:
			fmt.Fprintf(w, "%s: missing\n", r.Name)
			continue
		case !r.Stale():
			fmt.Fprintf(w, "%s: up to date\n", r.Name)
			continue
		}

		fmt.Fprintf(w, "%s: +%d -%d lines\n", r.Name, r.Added, r.Removed)
		equal := 0
		flush := func() {
			if equal > 0 {
				fmt.Fprintln(w, dim.Sprintf("  ... %d unchanged", equal))
				equal = 0
			}
		}
		for _, l := range r.Lines {
			switch l.Op {
			case OpEqual:
				equal++
			case OpInsert:
				flush()
				fmt.Fprintln(w, add.Sprint("+ "+l.Text))
			case OpDelete:
				flush()
				fmt.Fprintln(w, del.Sprint("- "+l.Text))
			}
		}
		flush()
	}
}
