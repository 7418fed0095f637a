package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bold", "We installed a **CNC router**.", "<strong>CNC router</strong>"},
		{"heading id", "## Lead times", `<h2 id="lead-times">`},
		{"table", "| a | b |\n|---|---|\n| 1 | 2 |", "<table>"},
		{"hebrew", "מטבח **אלון**", "<strong>אלון</strong>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.in)
			if err != nil {
				t.Fatalf("ToHTML: %v", err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("got %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestToHTMLEscapesRawHTML(t *testing.T) {
	got, err := ToHTML("<script>alert(1)</script>")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML passed through: %q", got)
	}
}

func TestExcerpt(t *testing.T) {
	src := "Twelve metres of **oak** cabinetry.\n\nSecond paragraph."
	if got := Excerpt(src, 100); got != "Twelve metres of oak cabinetry." {
		t.Errorf("got %q", got)
	}
	if got := Excerpt(src, 15); got != "Twelve metres…" {
		t.Errorf("cut: got %q", got)
	}
}
