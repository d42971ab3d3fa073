package sentiment

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
	"golang.org/x/net/html"
)

var (
	markdownLinkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern          = regexp.MustCompile(`https?://\S+|www\.\S+`)
	truncationPattern   = regexp.MustCompile(`\s*…?\s*\[\+\d+ chars\]\s*$`)
)

// Vader scores text with the VADER lexicon. The compound score is kept on
// stored articles next to the primary analysis as a second opinion.
type Vader struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVader() *Vader {
	return &Vader{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the VADER compound score in [-1, 1] for markdown or plain
// text.
func (v *Vader) Score(text string) float64 {
	plain := ConvertMarkdownToText(text)
	if plain == "" {
		return 0
	}
	return v.analyzer.PolarityScores(plain).Compound
}

func RemoveLinks(input string) string {
	input = markdownLinkPattern.ReplaceAllString(input, "$1")
	return urlPattern.ReplaceAllString(input, "")
}

// ConvertMarkdownToText renders markdown (or HTML fragments, which pass
// through the renderer) and keeps only the visible text.
func ConvertMarkdownToText(input string) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plainText := strings.Join(strings.Fields(htmlText(output)), " ")

	return strings.Join(strings.Fields(RemoveLinks(plainText)), " ")
}

func htmlText(doc []byte) string {
	var sb strings.Builder
	z := html.NewTokenizer(bytes.NewReader(doc))
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return sb.String()
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if isHiddenTag(name) {
				skip++
			}
			if isBlockTag(name) {
				sb.WriteByte(' ')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if isHiddenTag(name) && skip > 0 {
				skip--
			}
			if isBlockTag(name) {
				sb.WriteByte(' ')
			}
		case html.TextToken:
			if skip == 0 {
				sb.Write(z.Text())
			}
		}
	}
}

func isBlockTag(name []byte) bool {
	switch string(name) {
	case "p", "div", "br", "li", "ul", "ol", "blockquote", "pre", "hr", "tr", "td", "th",
		"h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

func isHiddenTag(name []byte) bool {
	switch string(name) {
	case "script", "style":
		return true
	}
	return false
}

// StripTruncationMarker removes the "[+N chars]" suffix NewsAPI appends to
// clipped bodies and reports whether it was present.
func StripTruncationMarker(content string) (string, bool) {
	loc := truncationPattern.FindStringIndex(content)
	if loc == nil {
		return content, false
	}
	return strings.TrimSpace(content[:loc[0]]), true
}
