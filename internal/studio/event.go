package studio

import "time"

// Event types
const (
	EventStarted   = "started"
	EventCompleted = "completed"
	EventFailed    = "failed"
)

// Event is a status update for one generation.
type Event struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	Message  string    `json:"message"`
	FileName string    `json:"file_name,omitempty"`
	Time     time.Time `json:"time"`
}
