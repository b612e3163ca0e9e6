// Package instructions compiles the form selections into a natural-language
// delivery brief for the voice.
package instructions

import (
	"fmt"
	"strings"

	"github.com/tahcohcat/ttsstudio/internal/models"
)

var styleSentences = map[string]string{
	models.StyleProfessional:   "Speak with confidence and authority, maintaining a professional demeanor throughout.",
	models.StyleConversational: "Use a warm, approachable tone as if speaking to a friend or colleague.",
	models.StyleDramatic:       "Add emotional depth and dramatic flair to important points.",
	models.StyleNewsAnchor:     "Deliver content with the clarity and professionalism of a news broadcaster.",
	models.StyleEducational:    "Explain concepts clearly with appropriate pacing for learning.",
	models.StyleStorytelling:   "Use narrative techniques to make the content compelling and engaging.",
}

var toneSentences = map[string]string{
	models.ToneNeutral:      "Maintain an even, balanced emotional tone throughout.",
	models.ToneWarm:         "Use a friendly, welcoming tone that puts listeners at ease.",
	models.ToneSerious:      "Keep a serious, professional tone appropriate for formal contexts.",
	models.ToneEnthusiastic: "Inject energy and enthusiasm into the delivery.",
	models.ToneCalm:         "Use a gentle, calming voice that relaxes the listener.",
	models.ToneConfident:    "Project confidence and certainty in every statement.",
}

var directives = []string{
	"Maintain consistent energy throughout the speech",
	"Use natural inflection patterns",
	"Ensure clear pronunciation of technical terms",
	"Apply appropriate emotional context to the content",
}

func lookup(table map[string]string, key string) string {
	if s, ok := table[key]; ok {
		return s
	}
	return key
}

// Compile builds the instruction block. Unknown styles and tones are echoed
// verbatim; punctuation, delivery and emphasis are always echoed.
func Compile(style, tone, punctuation, delivery, emphasis string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "VOICE STYLE: %s\n", lookup(styleSentences, style))
	fmt.Fprintf(&sb, "TONE: %s\n", lookup(toneSentences, tone))
	fmt.Fprintf(&sb, "PUNCTUATION: Handle pauses and rhythm according to %s style.\n", punctuation)
	fmt.Fprintf(&sb, "DELIVERY: Use %s approach for optimal engagement.\n", delivery)
	fmt.Fprintf(&sb, "EMPHASIS: Apply %s emphasis to key terms and important information.\n", strings.ToLower(emphasis))
	sb.WriteString("\nAdditional Instructions:\n")
	for _, d := range directives {
		sb.WriteString("- " + d + "\n")
	}
	return sb.String()
}

// ForPreferences is Compile over a Preferences record.
func ForPreferences(p models.Preferences) string {
	return Compile(p.Style, p.Tone, p.Punctuation, p.Delivery, p.Emphasis)
}
