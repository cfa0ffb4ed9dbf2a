package asr

import "context"

// Segment is one transcribed span with start/end times in seconds.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Result is the output of one transcription inference: the ordered segment
// sequence plus the full concatenated transcript text.
type Result struct {
	Text     string
	Language string
	Segments []Segment
}

// Engine is the speech-to-text capability. Implementations perform a single
// inference call per invocation with no retry logic.
type Engine interface {
	Transcribe(ctx context.Context, audioPath string, language string) (*Result, error)
}
