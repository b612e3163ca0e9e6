package models

import "time"

// Generation is the history record of one saved audio artifact.
type Generation struct {
	ID          string    `json:"id" db:"id"`
	FileName    string    `json:"file_name" db:"file_name"`
	Path        string    `json:"path" db:"path"`
	Voice       string    `json:"voice" db:"voice"`
	Style       string    `json:"style" db:"style"`
	Tone        string    `json:"tone" db:"tone"`
	Punctuation string    `json:"punctuation" db:"punctuation"`
	Delivery    string    `json:"delivery" db:"delivery"`
	Emphasis    string    `json:"emphasis" db:"emphasis"`
	Speed       float64   `json:"speed" db:"speed"`
	Characters  int       `json:"characters" db:"characters"`
	Words       int       `json:"words" db:"words"`
	SizeBytes   int64     `json:"size_bytes" db:"size_bytes"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Preferences returns the selections the artifact was generated with.
func (g *Generation) Preferences() Preferences {
	return Preferences{
		Voice:       g.Voice,
		Style:       g.Style,
		Tone:        g.Tone,
		Punctuation: g.Punctuation,
		Delivery:    g.Delivery,
		Emphasis:    g.Emphasis,
		Speed:       g.Speed,
	}
}
