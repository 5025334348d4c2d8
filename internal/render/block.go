// Package render turns one selected path into a self-delimited block of
// text.
//
// The text format is a fixed wire format: a rule of exactly 40 '='
// characters, the normalized path, another rule, then the body followed by
// a blank line. Consumers recover block boundaries by splitting on lines that
// are exactly the rule.
package render

import (
	"fmt"
	"strings"
)

// RuleWidth is the number of '=' characters in a header rule
const RuleWidth = 40

// Rule is the header delimiter line, without its newline
var Rule = strings.Repeat("=", RuleWidth)

// Outcome records what happened to one path
type Outcome int

const (
	OutcomeWritten Outcome = iota
	OutcomeNotFound
	OutcomeReadError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWritten:
		return "Written"
	case OutcomeNotFound:
		return "NotFound"
	case OutcomeReadError:
		return "ReadError"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Block is one rendered unit of output
type Block struct {
	Path    string
	Header  string
	Body    string
	Outcome Outcome
	Err     error
}

// String returns the complete text written to a sink
func (b Block) String() string {
	return b.Header + b.Body
}

// TextHeader builds the text-format header for path
func TextHeader(path string) string {
	return Rule + "\n" + path + "\n" + Rule + "\n"
}

// Split re-parses a text-format document into its blocks. Outcome is
// inferred from the placeholder and error lines the renderer writes.
func Split(doc string) []Block {
	var (
		blocks []Block
		cur    *Block
		body   strings.Builder
	)
	flush := func() {
		if cur == nil {
			return
		}
		cur.Body = body.String()
		cur.Outcome = inferOutcome(cur.Path, cur.Body)
		blocks = append(blocks, *cur)
		body.Reset()
	}

	lines := strings.SplitAfter(doc, "\n")
	for i := 0; i < len(lines); i++ {
		if isRule(lines[i]) && i+2 < len(lines) && isRule(lines[i+2]) {
			flush()
			cur = &Block{
				Path:   strings.TrimRight(lines[i+1], "\r\n"),
				Header: lines[i] + lines[i+1] + lines[i+2],
			}
			i += 2
			continue
		}
		if cur != nil {
			body.WriteString(lines[i])
		}
	}
	flush()
	return blocks
}

func isRule(line string) bool {
	return strings.TrimRight(line, "\r\n") == Rule
}

func inferOutcome(path, body string) Outcome {
	switch {
	case body == placeholderLine(path)+spacing:
		return OutcomeNotFound
	case strings.HasPrefix(body, errorPrefix):
		return OutcomeReadError
	default:
		return OutcomeWritten
	}
}
