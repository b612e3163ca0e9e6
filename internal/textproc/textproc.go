// Package textproc rewrites input text before it is sent for synthesis.
//
// A transform is an ordered pipeline of pure rules. The style rule always
// runs before the punctuation rule, and the punctuation rule sees the text
// as the style rule left it (newlines and emphasis markers included).
package textproc

import (
	"regexp"
	"strings"

	"github.com/tahcohcat/ttsstudio/internal/models"
)

// Rule is one pure rewrite pass.
type Rule func(string) string

func identity(s string) string { return s }

var (
	sentenceBeforeCapital = regexp.MustCompile(`\.(\s+[A-Z])`)
	emphasisWords         = regexp.MustCompile(`(?i)\b(important|critical|essential|key)\b`)
	sentenceEnd           = regexp.MustCompile(`\.(\s+)`)
	discourseMarkers      = regexp.MustCompile(`(?i)(first|second|third|next|finally|therefore|however)`)
	spacedComma           = regexp.MustCompile(`\s*,\s*`)
	spacedPeriod          = regexp.MustCompile(`\s*\.\s*`)
	colonEnd              = regexp.MustCompile(`:(\s+)`)
)

func replace(re *regexp.Regexp, repl string) Rule {
	return func(s string) string { return re.ReplaceAllString(s, repl) }
}

func literal(pairs ...string) Rule {
	return func(s string) string {
		for i := 0; i+1 < len(pairs); i += 2 {
			s = strings.ReplaceAll(s, pairs[i], pairs[i+1])
		}
		return s
	}
}

func chain(rules ...Rule) Rule {
	return func(s string) string {
		for _, r := range rules {
			s = r(s)
		}
		return s
	}
}

var styleRules = map[string]Rule{
	models.StyleProfessional:   replace(sentenceBeforeCapital, ".\n$1"),
	models.StyleConversational: literal(" and ", " and, "),
	models.StyleDramatic:       replace(emphasisWords, "**$1**"),
	models.StyleNewsAnchor:     replace(sentenceEnd, ".\n\n"),
	models.StyleEducational:    replace(discourseMarkers, "\n$1"),
}

// Each literal pass runs over the output of the previous one, so "." -> ". "
// followed by ";" -> "; " never re-expands the inserted spaces.
var punctuationRules = map[string]Rule{
	models.PunctuationExtended:     literal(",", ", ", ".", ". ", ";", "; "),
	models.PunctuationMinimal:      chain(replace(spacedComma, ","), replace(spacedPeriod, ".")),
	models.PunctuationDramatic:     literal(".", "... ", "!", "! ", "?", "? "),
	models.PunctuationPresentation: chain(replace(sentenceEnd, ".\n\n"), replace(colonEnd, ":\n")),
}

// StyleRule returns the rewrite for a voice style. Unknown styles, and
// styles without a text rewrite, yield the identity rule.
func StyleRule(style string) Rule {
	if r, ok := styleRules[style]; ok {
		return r
	}
	return identity
}

// PunctuationRule returns the rewrite for a punctuation option.
func PunctuationRule(punctuation string) Rule {
	if r, ok := punctuationRules[punctuation]; ok {
		return r
	}
	return identity
}

// Pipeline returns the rules applied for the given selections, in order.
func Pipeline(style, punctuation string) []Rule {
	return []Rule{StyleRule(style), PunctuationRule(punctuation)}
}

// Transform applies the style rule and then the punctuation rule.
func Transform(text, style, punctuation string) string {
	return chain(Pipeline(style, punctuation)...)(text)
}
