package models

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/schollz/closestmatch"
)

// Preferences is the bundle of selections for one generation request.
type Preferences struct {
	Voice       string  `json:"voice"`
	Style       string  `json:"style"`
	Tone        string  `json:"tone"`
	Punctuation string  `json:"punctuation"`
	Delivery    string  `json:"delivery"`
	Emphasis    string  `json:"emphasis"`
	Speed       float64 `json:"speed"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		Voice:       Voices[0].ID,
		Style:       Styles[0],
		Tone:        Tones[0],
		Punctuation: Punctuations[0],
		Delivery:    Deliveries[0],
		Emphasis:    "Moderate",
		Speed:       DefaultSpeed,
	}
}

// WithDefaults fills empty fields from DefaultPreferences. A zero speed is
// treated as unset.
func (p Preferences) WithDefaults() Preferences {
	d := DefaultPreferences()
	if p.Voice == "" {
		p.Voice = d.Voice
	}
	if p.Style == "" {
		p.Style = d.Style
	}
	if p.Tone == "" {
		p.Tone = d.Tone
	}
	if p.Punctuation == "" {
		p.Punctuation = d.Punctuation
	}
	if p.Delivery == "" {
		p.Delivery = d.Delivery
	}
	if p.Emphasis == "" {
		p.Emphasis = d.Emphasis
	}
	if p.Speed == 0 {
		p.Speed = d.Speed
	}
	return p
}

// ValidationError describes a rejected selection.
type ValidationError struct {
	Field      string
	Value      string
	Suggestion string
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s %q", e.Field, e.Value)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

// Validate rejects selections the synthesis service cannot accept: unknown
// voices, unknown emphasis levels and speeds outside the slider range.
// Style, tone, punctuation and delivery are free-form on purpose; unknown
// values are passed through the text rules unchanged.
func (p Preferences) Validate() error {
	if !contains(voiceIDs(), p.Voice) {
		cm := closestmatch.New(voiceIDs(), []int{2})
		return &ValidationError{Field: "voice", Value: p.Voice, Suggestion: cm.Closest(strings.ToLower(p.Voice))}
	}
	if !contains(EmphasisLevels, p.Emphasis) {
		cm := closestmatch.New(EmphasisLevels, []int{2})
		return &ValidationError{Field: "emphasis", Value: p.Emphasis, Suggestion: cm.Closest(p.Emphasis)}
	}
	if math.IsNaN(p.Speed) || math.IsInf(p.Speed, 0) {
		return &ValidationError{Field: "speed", Value: fmt.Sprint(p.Speed)}
	}
	if p.Speed < MinSpeed-1e-9 || p.Speed > MaxSpeed+1e-9 {
		return &ValidationError{Field: "speed", Value: fmt.Sprintf("%.2f", p.Speed)}
	}
	steps := p.Speed / SpeedStep
	if math.Abs(steps-math.Round(steps)) > 1e-6 {
		return &ValidationError{Field: "speed", Value: fmt.Sprintf("%.2f", p.Speed), Suggestion: fmt.Sprintf("%.1f", math.Round(steps)*SpeedStep)}
	}
	return nil
}

// TextStats mirrors the counters shown under the text box.
type TextStats struct {
	Characters       int     `json:"characters"`
	Words            int     `json:"words"`
	EstimatedMinutes float64 `json:"estimated_minutes"`
}

// WordsPerMinute is the average speaking pace used for duration estimates.
const WordsPerMinute = 150

func StatsFor(text string) TextStats {
	words := len(strings.Fields(text))
	return TextStats{
		Characters:       utf8.RuneCountInString(text),
		Words:            words,
		EstimatedMinutes: float64(words) / WordsPerMinute,
	}
}
