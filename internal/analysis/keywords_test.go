package analysis

import (
	"reflect"
	"testing"

	"github.com/spacesedan/esgpulse/internal/lexicon"
)

func TestKeywordExtractor_Extract(t *testing.T) {
	k := NewKeywordExtractor(lexicon.Default())

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "domain terms rank before frequent words",
			text: "Carbon carbon carbon emissions. The company company company reported.",
			want: []string{"carbon", "emissions", "company"},
		},
		{
			name: "nothing qualifies",
			text: "Hello there friend",
			want: []string{"esg", "news", "analysis"},
		},
		{
			name: "short tokens are ignored",
			text: "eco eco eco eco",
			want: []string{"esg", "news", "analysis"},
		},
		{
			name: "capped at seven in order of appearance",
			text: "climate carbon emissions renewable sustainability green environmental pollution energy",
			want: []string{"climate", "carbon", "emissions", "renewable", "sustainability", "green", "environmental"},
		},
		{
			name: "punctuation splits words",
			text: "A stakeholder's view on water-forest policy",
			want: []string{"stakeholder", "water", "forest", "policy"},
		},
		{
			name: "frequency orders domain terms",
			text: "water forest forest",
			want: []string{"forest", "water"},
		},
		{
			name: "word seen twice is not enough",
			text: "merger merger",
			want: []string{"esg", "news", "analysis"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := k.Extract(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestKeywordExtractor_DefaultIsACopy(t *testing.T) {
	k := NewKeywordExtractor(lexicon.Default())

	got := k.Extract("")
	got[0] = "changed"

	if DefaultKeywords[0] != "esg" {
		t.Fatal("caller mutated the shared default keywords")
	}
}
