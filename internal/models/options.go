package models

// Voice identity offered by the synthesis service
type Voice struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

var Voices = []Voice{
	{ID: "alloy", Description: "Balanced and versatile voice"},
	{ID: "ash", Description: "Clear and confident tone"},
	{ID: "ballad", Description: "Smooth and melodic"},
	{ID: "coral", Description: "Warm and friendly"},
	{ID: "echo", Description: "Deep and resonant"},
	{ID: "fable", Description: "Expressive storytelling voice"},
	{ID: "onyx", Description: "Strong and authoritative"},
	{ID: "nova", Description: "Crisp and modern"},
	{ID: "sage", Description: "Wise and calm"},
	{ID: "shimmer", Description: "Bright and energetic"},
	{ID: "verse", Description: "Poetic and flowing"},
}

// Voice styles
const (
	StyleProfessional   = "Professional & Authoritative"
	StyleConversational = "Conversational & Friendly"
	StyleDramatic       = "Dramatic & Expressive"
	StyleNewsAnchor     = "News Anchor Style"
	StyleEducational    = "Educational & Clear"
	StyleStorytelling   = "Storytelling & Engaging"
)

var Styles = []string{
	StyleProfessional,
	StyleConversational,
	StyleDramatic,
	StyleNewsAnchor,
	StyleEducational,
	StyleStorytelling,
}

// Tones
const (
	ToneNeutral      = "Neutral & Balanced"
	ToneWarm         = "Warm & Approachable"
	ToneSerious      = "Serious & Formal"
	ToneEnthusiastic = "Enthusiastic & Energetic"
	ToneCalm         = "Calm & Soothing"
	ToneConfident    = "Confident & Assertive"
)

var Tones = []string{
	ToneNeutral,
	ToneWarm,
	ToneSerious,
	ToneEnthusiastic,
	ToneCalm,
	ToneConfident,
}

// Punctuation handling
const (
	PunctuationNatural      = "Natural Pauses"
	PunctuationExtended     = "Extended Pauses for Clarity"
	PunctuationMinimal      = "Minimal Pauses (Fast-paced)"
	PunctuationDramatic     = "Dramatic Pauses"
	PunctuationPresentation = "Professional Presentation Style"
)

var Punctuations = []string{
	PunctuationNatural,
	PunctuationExtended,
	PunctuationMinimal,
	PunctuationDramatic,
	PunctuationPresentation,
}

var Deliveries = []string{
	"Standard Pace",
	"Fast-paced & Dynamic",
	"Slow & Deliberate",
	"Varied Pace for Emphasis",
	"Presentation Style",
}

var EmphasisLevels = []string{"Subtle", "Moderate", "Strong", "Very Strong"}

const (
	MinSpeed     = 0.5
	MaxSpeed     = 2.0
	SpeedStep    = 0.1
	DefaultSpeed = 1.0
)

// Options is the full catalogue rendered by the form and returned by the API.
type Options struct {
	Voices         []Voice     `json:"voices"`
	Styles         []string    `json:"styles"`
	Tones          []string    `json:"tones"`
	Punctuations   []string    `json:"punctuations"`
	Deliveries     []string    `json:"deliveries"`
	EmphasisLevels []string    `json:"emphasis_levels"`
	MinSpeed       float64     `json:"min_speed"`
	MaxSpeed       float64     `json:"max_speed"`
	SpeedStep      float64     `json:"speed_step"`
	Defaults       Preferences `json:"defaults"`
}

func Catalogue() Options {
	return Options{
		Voices:         Voices,
		Styles:         Styles,
		Tones:          Tones,
		Punctuations:   Punctuations,
		Deliveries:     Deliveries,
		EmphasisLevels: EmphasisLevels,
		MinSpeed:       MinSpeed,
		MaxSpeed:       MaxSpeed,
		SpeedStep:      SpeedStep,
		Defaults:       DefaultPreferences(),
	}
}

// VoiceDescription returns the blurb for id, or "" for unknown voices.
func VoiceDescription(id string) string {
	for _, v := range Voices {
		if v.ID == id {
			return v.Description
		}
	}
	return ""
}

func voiceIDs() []string {
	ids := make([]string, len(Voices))
	for i, v := range Voices {
		ids[i] = v.ID
	}
	return ids
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
