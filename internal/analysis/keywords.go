package analysis

import (
	"regexp"
	"sort"
	"strings"

	"github.com/spacesedan/esgpulse/internal/lexicon"
)

const (
	MaxKeywords      = 7
	minKeywordLength = 4
	minRepeatCount   = 3
)

var (
	punctuation = regexp.MustCompile(`[^\w\s]`)

	// DefaultKeywords is returned when nothing in the text qualifies.
	DefaultKeywords = []string{"esg", "news", "analysis"}
)

type KeywordExtractor struct {
	lex *lexicon.Lexicon
}

func NewKeywordExtractor(lex *lexicon.Lexicon) *KeywordExtractor {
	return &KeywordExtractor{lex: lex}
}

type keywordCandidate struct {
	word   string
	count  int
	domain bool
}

// Extract ranks words of four or more letters. A word qualifies when it is
// ESG vocabulary or appears more than twice. Domain words rank first, then
// higher counts; equal ranks keep their order of first appearance.
func (k *KeywordExtractor) Extract(text string) []string {
	cleaned := punctuation.ReplaceAllString(strings.ToLower(text), " ")

	counts := make(map[string]int)
	var order []string
	for _, word := range strings.Fields(cleaned) {
		if len(word) < minKeywordLength {
			continue
		}
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
	}

	var candidates []keywordCandidate
	for _, word := range order {
		domain := k.lex.IsDomainTerm(word)
		if domain || counts[word] >= minRepeatCount {
			candidates = append(candidates, keywordCandidate{word: word, count: counts[word], domain: domain})
		}
	}

	if len(candidates) == 0 {
		return append([]string(nil), DefaultKeywords...)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].domain != candidates[j].domain {
			return candidates[i].domain
		}
		return candidates[i].count > candidates[j].count
	})

	if len(candidates) > MaxKeywords {
		candidates = candidates[:MaxKeywords]
	}

	keywords := make([]string, len(candidates))
	for i, c := range candidates {
		keywords[i] = c.word
	}
	return keywords
}
