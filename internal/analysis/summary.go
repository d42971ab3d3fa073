package analysis

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxSummarySentences = 3
	MaxSummaryLength    = 250
	minSentenceLength   = 20

	NoSummary = "No summary available."
)

// whitespace includes Unicode spaces such as U+00A0
var sentenceEnd = regexp.MustCompile(`[.!?][\s\v\p{Z}\x{FEFF}]+`)

// Summarize picks up to three leading sentences longer than 20 characters.
// It stops at the first sentence that would take the summary past 250
// characters; that sentence is dropped whole.
func Summarize(text string) string {
	var b strings.Builder
	taken := 0
	for _, sentence := range splitSentences(text) {
		if taken == maxSummarySentences {
			break
		}
		if utf8.RuneCountInString(b.String())+utf8.RuneCountInString(sentence) > MaxSummaryLength {
			break
		}
		b.WriteString(strings.TrimSpace(sentence))
		b.WriteByte(' ')
		taken++
	}

	summary := strings.TrimSpace(b.String())
	if summary == "" {
		return NoSummary
	}
	return summary
}

// splitSentences breaks after '.', '!' or '?' followed by whitespace and keeps
// only sentences whose trimmed length exceeds the minimum. The terminator
// stays with its sentence.
func splitSentences(text string) []string {
	var raw []string
	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		raw = append(raw, text[start:loc[0]+1])
		start = loc[1]
	}
	raw = append(raw, text[start:])

	sentences := raw[:0]
	for _, s := range raw {
		if utf8.RuneCountInString(strings.TrimSpace(s)) > minSentenceLength {
			sentences = append(sentences, s)
		}
	}
	return sentences
}
