package signals

import "testing"

func testDetector() *Detector {
	return NewDetector(
		[]string{"def ", "import ", "```python"},
		[]string{`\frac`, `\sum`},
	)
}

func TestHasCode(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"plain prose", "The market opened higher on Tuesday.", false},
		{"python def", "Consider this helper:\ndef size_position(equity):", true},
		{"import line", "import numpy as np", true},
		{"language fence", "```python\nprint(1)\n```", true},
		{"bare fenced block", "example:\n```\nx = 1\n```\ndone", true},
		{"unclosed fence", "a stray ``` marker in prose", false},
		{"marker inside word", "redefine the terms", false},
	}

	d := testDetector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.HasCode(tt.text); got != tt.want {
				t.Errorf("HasCode(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestHasFormula(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"plain prose", "Risk management matters more than entries.", false},
		{"latex macro", `the ratio \frac{r}{\sigma} appears`, true},
		{"inline math", "where $E = mc^2$ holds", true},
		{"dollar amounts not math", "costs $5\nand later $10\n", false},
		{"assignment arithmetic", "pnl = qty + price * delta", true},
		{"plus without assignment", "two plus two", false},
	}

	d := testDetector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.HasFormula(tt.text); got != tt.want {
				t.Errorf("HasFormula(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetector_EmptyText(t *testing.T) {
	d := testDetector()
	if d.HasCode("") {
		t.Error("HasCode(\"\") = true")
	}
	if d.HasFormula("") {
		t.Error("HasFormula(\"\") = true")
	}
}
