package sentiment

import "testing"

func TestConvertMarkdownToText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Shares rose sharply.", "Shares rose sharply."},
		{"emphasis and heading", "# Title\n\nThis is **bold** and _soft_.", "Title This is bold and soft."},
		{"markdown link", "Read [the report](https://example.com/r) now", "Read the report now"},
		{"bare url", "See https://example.com/x for more", "See for more"},
		{"html fragment", "<p>First</p><p>Second &amp; third</p>", "First Second & third"},
		{"script dropped", "<script>alert(1)</script><p>Body</p>", "Body"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConvertMarkdownToText(tt.in); got != tt.want {
				t.Errorf("ConvertMarkdownToText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripTruncationMarker(t *testing.T) {
	tests := []struct {
		in        string
		want      string
		truncated bool
	}{
		{"The company announced a plan… [+2345 chars]", "The company announced a plan", true},
		{"Short body [+12 chars]", "Short body", true},
		{"No marker here", "No marker here", false},
		{"Marker [+12 chars] in the middle", "Marker [+12 chars] in the middle", false},
	}

	for _, tt := range tests {
		got, truncated := StripTruncationMarker(tt.in)
		if got != tt.want || truncated != tt.truncated {
			t.Errorf("StripTruncationMarker(%q) = %q, %v; want %q, %v", tt.in, got, truncated, tt.want, tt.truncated)
		}
	}
}

func TestVader_Score(t *testing.T) {
	v := NewVader()

	if got := v.Score("This is a wonderful, excellent achievement!"); got <= 0 {
		t.Errorf("positive text scored %v", got)
	}
	if got := v.Score("A terrible, horrible disaster."); got >= 0 {
		t.Errorf("negative text scored %v", got)
	}
	if got := v.Score(""); got != 0 {
		t.Errorf("empty text scored %v", got)
	}
}
