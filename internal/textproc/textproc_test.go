package textproc

import (
	"strings"
	"testing"

	"github.com/tahcohcat/ttsstudio/internal/models"
)

func TestStyleRules(t *testing.T) {
	tests := []struct {
		style string
		in    string
		want  string
	}{
		{models.StyleProfessional, "One. Two. three.", "One.\n Two. three."},
		{models.StyleConversational, "salt and pepper and oil", "salt and, pepper and, oil"},
		{models.StyleConversational, "Sand andes", "Sand andes"},
		{models.StyleDramatic, "This is critical.", "This is **critical**."},
		{models.StyleDramatic, "KEY points, keyboard", "**KEY** points, keyboard"},
		{models.StyleNewsAnchor, "Hello. World. End.", "Hello.\n\nWorld.\n\nEnd."},
		{models.StyleEducational, "First do this. However stop.", "\nFirst do this. \nHowever stop."},
		{models.StyleEducational, "the nextday", "the \nnextday"},
		{models.StyleStorytelling, "Once. Upon.", "Once. Upon."},
	}

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			if got := Transform(tt.in, tt.style, models.PunctuationNatural); got != tt.want {
				t.Errorf("Transform(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPunctuationRules(t *testing.T) {
	tests := []struct {
		name        string
		punctuation string
		in          string
		want        string
	}{
		{"extended", models.PunctuationExtended, "a,b.c;d", "a, b. c; d"},
		{"minimal", models.PunctuationMinimal, "A, B, C.", "A,B,C."},
		{"minimal spaced", models.PunctuationMinimal, "x  ,  y .  z", "x,y.z"},
		{"dramatic", models.PunctuationDramatic, "Wait. What?! No.", "Wait...  What? !  No... "},
		{"presentation", models.PunctuationPresentation, "Agenda: one. two", "Agenda:\none.\n\ntwo"},
		{"natural", models.PunctuationNatural, "a , b", "a , b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Transform(tt.in, "unknown style", tt.punctuation); got != tt.want {
				t.Errorf("Transform(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMinimalPausesStripsWhitespaceAroundCommasAndPeriods(t *testing.T) {
	got := Transform("A, B, C.", models.StyleStorytelling, models.PunctuationMinimal)
	for i, r := range got {
		if r != ',' && r != '.' {
			continue
		}
		if i > 0 && got[i-1] == ' ' {
			t.Errorf("space before %q in %q", r, got)
		}
		if i+1 < len(got) && got[i+1] == ' ' {
			t.Errorf("space after %q in %q", r, got)
		}
	}
}

func TestUnknownSelectionsAreIdentity(t *testing.T) {
	inputs := []string{"", "Plain text. With: punctuation, and more!", "important key"}
	for _, in := range inputs {
		if got := Transform(in, "No Such Style", "No Such Punctuation"); got != in {
			t.Errorf("Transform(%q) = %q, want unchanged", in, got)
		}
	}
}

func TestTransformIsDeterministic(t *testing.T) {
	in := "First, this is important. Next: the key step and the end."
	for _, style := range models.Styles {
		for _, p := range models.Punctuations {
			a := Transform(in, style, p)
			b := Transform(in, style, p)
			if a != b {
				t.Errorf("%s/%s not deterministic: %q vs %q", style, p, a, b)
			}
		}
	}
}

func TestStyleRunsBeforePunctuation(t *testing.T) {
	// News anchor inserts "\n\n" after each period; the fast-paced rule then
	// strips that whitespace again because it runs second.
	got := Transform("One. Two.", models.StyleNewsAnchor, models.PunctuationMinimal)
	if got != "One.Two." {
		t.Errorf("got %q, want %q", got, "One.Two.")
	}

	got = Transform("This is key.", models.StyleDramatic, models.PunctuationDramatic)
	if !strings.Contains(got, "**key**") || !strings.HasSuffix(got, "... ") {
		t.Errorf("got %q", got)
	}
}

func TestPipelineOrder(t *testing.T) {
	rules := Pipeline(models.StyleNewsAnchor, models.PunctuationMinimal)
	if len(rules) != 2 {
		t.Fatalf("expected two rules, got %d", len(rules))
	}
	if got := rules[0]("a. b"); got != "a.\n\nb" {
		t.Errorf("first rule is not the style rule: %q", got)
	}
}
