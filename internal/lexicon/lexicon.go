// Package lexicon holds the term lists used by the local heuristic analyzers.
package lexicon

import "strings"

// Dimension is one ESG axis. The numeric order is also the tie-break order.
type Dimension int

const (
	Environmental Dimension = iota
	Social
	Governance
)

// Dimensions lists the ESG axes in priority order.
var Dimensions = [3]Dimension{Environmental, Social, Governance}

func (d Dimension) String() string {
	switch d {
	case Environmental:
		return "environmental"
	case Social:
		return "social"
	case Governance:
		return "governance"
	}
	return "unknown"
}

// Terms is the raw material for a Lexicon.
type Terms struct {
	Positive      []string
	Negative      []string
	Environmental []string
	Social        []string
	Governance    []string
	// Generic terms count as domain vocabulary for keyword ranking but do
	// not belong to any single dimension.
	Generic []string
}

// Lexicon is an immutable set of lookup tables. Build one at start-up and
// share it between goroutines.
type Lexicon struct {
	positive   map[string]struct{}
	negative   map[string]struct{}
	dimensions [3][]string
	domain     map[string]struct{}
}

// New lowercases the given terms and builds the lookup tables.
func New(t Terms) *Lexicon {
	lex := &Lexicon{
		positive: toSet(t.Positive),
		negative: toSet(t.Negative),
		domain:   make(map[string]struct{}),
	}

	for i, list := range [3][]string{t.Environmental, t.Social, t.Governance} {
		lex.dimensions[i] = lowerAll(list)
		for _, term := range lex.dimensions[i] {
			lex.domain[term] = struct{}{}
		}
	}
	for _, term := range lowerAll(t.Generic) {
		lex.domain[term] = struct{}{}
	}

	return lex
}

// Default builds the lexicon from DefaultTerms.
func Default() *Lexicon {
	return New(DefaultTerms())
}

func (l *Lexicon) IsPositive(word string) bool {
	_, ok := l.positive[word]
	return ok
}

func (l *Lexicon) IsNegative(word string) bool {
	_, ok := l.negative[word]
	return ok
}

// IsDomainTerm reports whether word belongs to any ESG dimension or to the
// generic ESG vocabulary.
func (l *Lexicon) IsDomainTerm(word string) bool {
	_, ok := l.domain[word]
	return ok
}

// DimensionTerms returns a copy of the terms for d.
func (l *Lexicon) DimensionTerms(d Dimension) []string {
	if d < Environmental || d > Governance {
		return nil
	}
	return append([]string(nil), l.dimensions[d]...)
}

func (l *Lexicon) eachDimensionTerm(d Dimension, fn func(term string)) {
	for _, term := range l.dimensions[d] {
		fn(term)
	}
}

// CountDimension sums the non-overlapping occurrences of every term of d in
// text. Matching is by substring, so "eco" also counts inside "economy".
// text must already be lowercase.
func (l *Lexicon) CountDimension(d Dimension, text string) int {
	if d < Environmental || d > Governance {
		return 0
	}
	count := 0
	l.eachDimensionTerm(d, func(term string) {
		count += strings.Count(text, term)
	})
	return count
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range lowerAll(words) {
		set[w] = struct{}{}
	}
	return set
}

func lowerAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		out = append(out, w)
	}
	return out
}
