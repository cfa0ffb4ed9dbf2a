package diarize

import "context"

// Turn is one diarization-assigned interval with a single speaker label.
// Turns are converted to this concrete shape immediately after the engine
// call; the engine's native output format never escapes the adapter.
type Turn struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker"`
}

// Engine is the speaker diarization capability. Diarization is an optional
// enhancement: an unconfigured engine is represented by its absence from the
// registry, never by an Engine that errors.
type Engine interface {
	Diarize(ctx context.Context, audioPath string) ([]Turn, error)
}
