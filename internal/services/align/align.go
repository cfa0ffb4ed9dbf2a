package align

import (
	"sort"
	"strings"

	"github.com/voxnotes/scribe-api/internal/services/asr"
	"github.com/voxnotes/scribe-api/internal/services/diarize"
)

// UnknownSpeaker is assigned when diarization ran but no turn overlaps a
// transcript segment.
const UnknownSpeaker = "Unknown"

// AlignedSegment is one speaker-attributed unit of the final transcript.
type AlignedSegment struct {
	Speaker   string  `json:"speaker"`
	Text      string  `json:"text"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

// Align maps each transcript segment to a speaker label by interval overlap
// against the diarization turns.
//
// A turn matches a segment iff max(seg.Start, turn.Start) < min(seg.End,
// turn.End): strict intersection, so touching intervals never match. Among
// matching turns the first one in the engine's native order wins. This
// first-match tie-break is deliberate and load-bearing for output stability;
// switching to a maximum-overlap policy would change speaker attribution on
// segments spanning a speaker change.
//
// Segments are stable-sorted by start time before alignment so the output is
// ordered even if the engine contract on ordering is ever violated. Output
// length and relative order (after the sort) match the input.
func Align(segments []asr.Segment, turns []diarize.Turn) []AlignedSegment {
	segments = sortedByStart(segments)

	aligned := make([]AlignedSegment, 0, len(segments))
	for _, seg := range segments {
		speaker := UnknownSpeaker
		for _, turn := range turns {
			if overlaps(seg, turn) {
				speaker = turn.Speaker
				break
			}
		}
		aligned = append(aligned, AlignedSegment{
			Speaker:   speaker,
			Text:      strings.TrimSpace(seg.Text),
			StartTime: seg.Start,
			EndTime:   seg.End,
		})
	}
	return aligned
}

// AlignWithoutDiarization emits the transcript segments with empty speaker
// labels, used when no diarization engine is configured.
func AlignWithoutDiarization(segments []asr.Segment) []AlignedSegment {
	segments = sortedByStart(segments)

	aligned := make([]AlignedSegment, 0, len(segments))
	for _, seg := range segments {
		aligned = append(aligned, AlignedSegment{
			Speaker:   "",
			Text:      strings.TrimSpace(seg.Text),
			StartTime: seg.Start,
			EndTime:   seg.End,
		})
	}
	return aligned
}

// overlaps reports strict interval intersection; zero-length overlap does
// not count.
func overlaps(seg asr.Segment, turn diarize.Turn) bool {
	start := seg.Start
	if turn.Start > start {
		start = turn.Start
	}
	end := seg.End
	if turn.End < end {
		end = turn.End
	}
	return start < end
}

func sortedByStart(segments []asr.Segment) []asr.Segment {
	out := make([]asr.Segment, len(segments))
	copy(out, segments)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}
