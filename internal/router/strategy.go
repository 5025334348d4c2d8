// Package router decides which output sink receives each rendered block.
package router

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind tags the closed set of routing strategies
type Kind int

const (
	KindSingle Kind = iota
	KindRoundRobin
	KindCategory
)

func (k Kind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindRoundRobin:
		return "round-robin"
	case KindCategory:
		return "category"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Rule sends paths containing Substring to Sink
type Rule struct {
	Substring string `yaml:"contains"`
	Sink      int    `yaml:"sink"`
}

// Strategy is a routing policy. Build one with Single, RoundRobin or
// Category.
type Strategy struct {
	kind        Kind
	k           int
	rules       []Rule
	defaultSink int
}

// Single sends everything to sink 0
func Single() Strategy {
	return Strategy{kind: KindSingle}
}

// RoundRobin interleaves blocks over the first k sinks in traversal order
func RoundRobin(k int) Strategy {
	return Strategy{kind: KindRoundRobin, k: k}
}

// Category routes by the first rule whose substring occurs in the path,
// falling back to defaultSink. Backslashes in a substring become slashes;
// nothing else is trimmed, so "ui/" does not match "uikit".
func Category(rules []Rule, defaultSink int) Strategy {
	normalized := make([]Rule, 0, len(rules))
	for _, r := range rules {
		normalized = append(normalized, Rule{Substring: strings.ReplaceAll(r.Substring, `\`, "/"), Sink: r.Sink})
	}
	return Strategy{kind: KindCategory, rules: normalized, defaultSink: defaultSink}
}

// Kind reports which variant s is
func (s Strategy) Kind() Kind {
	return s.kind
}

func (s Strategy) String() string {
	switch s.kind {
	case KindRoundRobin:
		return fmt.Sprintf("round-robin(%d)", s.k)
	case KindCategory:
		return fmt.Sprintf("category(%d rules, default %d)", len(s.rules), s.defaultSink)
	default:
		return s.kind.String()
	}
}

// Validate checks that every sink index s can produce is below sinkCount
func (s Strategy) Validate(sinkCount int) error {
	if sinkCount < 1 {
		return errors.New("router: at least one sink is required")
	}
	switch s.kind {
	case KindSingle:
		return nil
	case KindRoundRobin:
		if s.k < 1 || s.k > sinkCount {
			return fmt.Errorf("router: round-robin over %d sinks needs 1..%d, got %d", s.k, sinkCount, s.k)
		}
		return nil
	case KindCategory:
		if s.defaultSink < 0 || s.defaultSink >= sinkCount {
			return fmt.Errorf("router: default sink %d out of range [0,%d)", s.defaultSink, sinkCount)
		}
		for i, r := range s.rules {
			if r.Substring == "" {
				return fmt.Errorf("router: rule %d has an empty substring", i)
			}
			if r.Sink < 0 || r.Sink >= sinkCount {
				return fmt.Errorf("router: rule %d (%q) sink %d out of range [0,%d)", i, r.Substring, r.Sink, sinkCount)
			}
		}
		return nil
	default:
		return fmt.Errorf("router: unknown strategy %v", s.kind)
	}
}

// Parse builds a Strategy from configuration values. k is only used for
// round-robin; rules and defaultSink only for category.
func Parse(kind string, k int, rules []Rule, defaultSink int) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "single":
		return Single(), nil
	case "round-robin", "roundrobin", "rr":
		return RoundRobin(k), nil
	case "category", "category-by-substring":
		return Category(rules, defaultSink), nil
	default:
		return Strategy{}, fmt.Errorf("router: unknown strategy %q", kind)
	}
}

// ParseRule parses "substring=index"
func ParseRule(s string) (Rule, error) {
	i := strings.LastIndex(s, "=")
	if i <= 0 {
		return Rule{}, fmt.Errorf("router: rule %q must look like substring=sink", s)
	}
	sink, err := strconv.Atoi(strings.TrimSpace(s[i+1:]))
	if err != nil {
		return Rule{}, fmt.Errorf("router: rule %q: invalid sink index: %w", s, err)
	}
	return Rule{Substring: strings.TrimSpace(s[:i]), Sink: sink}, nil
}
