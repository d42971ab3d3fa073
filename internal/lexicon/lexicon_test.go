package lexicon

import "testing"

func TestNew_LowercasesAndTrims(t *testing.T) {
	lex := New(Terms{
		Positive:      []string{" Good "},
		Negative:      []string{"BAD", ""},
		Environmental: []string{"Solar"},
		Generic:       []string{"ESG"},
	})

	if !lex.IsPositive("good") || !lex.IsNegative("bad") {
		t.Error("sentiment terms were not normalised")
	}
	if lex.IsNegative("") {
		t.Error("empty term should be dropped")
	}
	if !lex.IsDomainTerm("solar") || !lex.IsDomainTerm("esg") {
		t.Error("domain set should include dimension and generic terms")
	}
}

func TestDimensionTerms_ReturnsCopy(t *testing.T) {
	lex := Default()

	terms := lex.DimensionTerms(Environmental)
	terms[0] = "mutated"

	if lex.DimensionTerms(Environmental)[0] == "mutated" {
		t.Fatal("DimensionTerms exposed internal storage")
	}
	if lex.DimensionTerms(Dimension(7)) != nil {
		t.Error("unknown dimension should return nil")
	}
}

func TestCountDimension_SubstringMatching(t *testing.T) {
	lex := Default()

	tests := []struct {
		name string
		dim  Dimension
		text string
		want int
	}{
		{"plain terms", Environmental, "solar and solar", 2},
		{"inside longer word", Environmental, "the economy", 1},
		{"multi word term", Social, "human rights matter", 1},
		{"no match", Governance, "solar", 0},
		{"shared term", Governance, "risk", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lex.CountDimension(tt.dim, tt.text); got != tt.want {
				t.Errorf("CountDimension(%s, %q) = %d, want %d", tt.dim, tt.text, got, tt.want)
			}
		})
	}
}

func TestDefault_OverlapIsPreserved(t *testing.T) {
	lex := Default()

	// "leadership" is both a positive term and a governance term.
	if !lex.IsPositive("leadership") || !lex.IsDomainTerm("leadership") {
		t.Error("expected leadership in positive and domain sets")
	}
	if !lex.IsNegative("risk") || !lex.IsDomainTerm("risk") {
		t.Error("expected risk in negative and domain sets")
	}
}
