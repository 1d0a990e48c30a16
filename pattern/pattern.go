// Package pattern compiles part-of-speech tag patterns into matchers used
// for noun phrase candidate selection.
//
// A pattern is a sequence of quantified tag groups written in a small
// regular syntax over the tag alphabet, for example:
//
//	(ADJ)*(NOUN)+
//	(DET|ADJ)?(NOUN)+
//
// Each group lists one or more alternative tags and may carry one of the
// quantifiers * (zero or more), + (one or more) or ? (zero or one); a group
// without a quantifier matches exactly one tag. Matching is greedy and
// always reports the longest span starting at a given position.
//
// Patterns are immutable after Compile and safe for concurrent use.
package pattern

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSyntax reports an invalid pattern expression.
var ErrSyntax = errors.New("pattern: invalid syntax")

// quantifier bounds for a single group.
type quantifier struct {
	min int
	max int // -1 means unbounded
}

// group is one compiled element of the pattern: a set of alternative tags
// with repetition bounds.
type group struct {
	tags  map[string]struct{}
	quant quantifier
}

func (g group) matches(tag string) bool {
	_, ok := g.tags[tag]
	return ok
}

// Pattern is a compiled tag sequence matcher.
type Pattern struct {
	groups []group
	source string
}

// String returns the source expression the pattern was compiled from.
func (p Pattern) String() string {
	return p.source
}

// Compile parses expr into a Pattern. Whitespace between groups is ignored.
func Compile(expr string) (Pattern, error) {
	p := Pattern{source: expr}
	rest := strings.TrimSpace(expr)
	if rest == "" {
		return Pattern{}, fmt.Errorf("%w: empty expression", ErrSyntax)
	}

	for len(rest) > 0 {
		if rest[0] != '(' {
			return Pattern{}, fmt.Errorf("%w: expected '(' at %q", ErrSyntax, rest)
		}
		end := strings.IndexByte(rest, ')')
		if end < 0 {
			return Pattern{}, fmt.Errorf("%w: unclosed group in %q", ErrSyntax, expr)
		}

		g := group{tags: make(map[string]struct{}), quant: quantifier{min: 1, max: 1}}
		for _, tag := range strings.Split(rest[1:end], "|") {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				return Pattern{}, fmt.Errorf("%w: empty tag in %q", ErrSyntax, expr)
			}
			g.tags[tag] = struct{}{}
		}

		rest = rest[end+1:]
		if len(rest) > 0 {
			switch rest[0] {
			case '*':
				g.quant = quantifier{min: 0, max: -1}
				rest = rest[1:]
			case '+':
				g.quant = quantifier{min: 1, max: -1}
				rest = rest[1:]
			case '?':
				g.quant = quantifier{min: 0, max: 1}
				rest = rest[1:]
			}
		}
		p.groups = append(p.groups, g)
		rest = strings.TrimSpace(rest)
	}

	return p, nil
}

// MustCompile is like Compile but panics on error. Intended for package-level
// default patterns.
func MustCompile(expr string) Pattern {
	p, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// MatchLongest returns the length of the longest prefix of tags[start:] that
// matches the whole pattern, and whether any match exists. A zero-length
// match is reported as no match.
func (p Pattern) MatchLongest(tags []string, start int) (length int, ok bool) {
	best := -1
	p.match(tags, start, 0, &best)
	if best <= start {
		return 0, false
	}
	return best - start, true
}

// match explores repetition counts for group gi starting at position pos,
// recording the furthest end position of any complete match in best.
func (p Pattern) match(tags []string, pos, gi int, best *int) {
	if gi == len(p.groups) {
		if pos > *best {
			*best = pos
		}
		return
	}

	g := p.groups[gi]

	// Count how far this group can extend greedily.
	maxTake := 0
	for pos+maxTake < len(tags) && g.matches(tags[pos+maxTake]) {
		maxTake++
		if g.quant.max >= 0 && maxTake == g.quant.max {
			break
		}
	}

	// Longest-first: try the greediest repetition count before shorter ones.
	for take := maxTake; take >= g.quant.min; take-- {
		p.match(tags, pos+take, gi+1, best)
	}
}
