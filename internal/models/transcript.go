package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// TranscriptSegment is one timed unit of speech. The formatted fields are
// always derived from the seconds fields, never edited independently.
type TranscriptSegment struct {
	Text           string  `json:"text"`
	Start          float64 `json:"start"`
	End            float64 `json:"end"`
	StartFormatted string  `json:"start_formatted"`
	EndFormatted   string  `json:"end_formatted"`
}

// NewSegment builds a segment with start/end rounded to two decimals and
// display timestamps recomputed from the rounded values.
func NewSegment(text string, start, end float64) TranscriptSegment {
	start = RoundSeconds(start)
	end = RoundSeconds(end)
	return TranscriptSegment{
		Text:           text,
		Start:          start,
		End:            end,
		StartFormatted: FormatSeconds(start),
		EndFormatted:   FormatSeconds(end),
	}
}

// StructuredTranscript is an ordered, chronological sequence of segments.
// Full text and segment count are derived, not stored.
type StructuredTranscript struct {
	Segments []TranscriptSegment
}

// FullText joins segment texts with single spaces, in segment order.
func (t *StructuredTranscript) FullText() string {
	parts := make([]string, 0, len(t.Segments))
	for _, seg := range t.Segments {
		parts = append(parts, seg.Text)
	}
	return strings.Join(parts, " ")
}

func (t *StructuredTranscript) HasTimestamps() bool {
	return len(t.Segments) > 0
}

func (t *StructuredTranscript) TotalSegments() int {
	return len(t.Segments)
}

// MarshalJSON emits the wire shape consumed by clients, with the derived
// fields computed at encode time.
func (t StructuredTranscript) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		TranscriptText string              `json:"transcript_text"`
		StructuredData []TranscriptSegment `json:"structured_data"`
		HasTimestamps  bool                `json:"has_timestamps"`
		TotalSegments  int                 `json:"total_segments"`
	}{
		TranscriptText: t.FullText(),
		StructuredData: t.Segments,
		HasTimestamps:  t.HasTimestamps(),
		TotalSegments:  t.TotalSegments(),
	})
}

func (t *StructuredTranscript) UnmarshalJSON(data []byte) error {
	var wire struct {
		StructuredData []TranscriptSegment `json:"structured_data"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	t.Segments = wire.StructuredData
	return nil
}

// Transcript is the tagged result shape produced by every caption source:
// either a structured transcript with timestamps, or bare plain text when
// no timing information survived extraction. At most one branch is set.
type Transcript struct {
	Structured *StructuredTranscript
	Plain      string
}

func NewStructured(segments []TranscriptSegment) *Transcript {
	return &Transcript{Structured: &StructuredTranscript{Segments: segments}}
}

func NewPlain(text string) *Transcript {
	return &Transcript{Plain: text}
}

func (t *Transcript) HasTimestamps() bool {
	return t != nil && t.Structured != nil && t.Structured.HasTimestamps()
}

// FullText returns the complete spoken text regardless of representation.
func (t *Transcript) FullText() string {
	if t == nil {
		return ""
	}
	if t.Structured != nil {
		return t.Structured.FullText()
	}
	return t.Plain
}

func (t *Transcript) TotalSegments() int {
	if t == nil || t.Structured == nil {
		return 0
	}
	return t.Structured.TotalSegments()
}

// MarshalJSON preserves the dual wire representation: structured
// transcripts encode as objects, plain-text transcripts as strings.
func (t Transcript) MarshalJSON() ([]byte, error) {
	if t.Structured != nil {
		return json.Marshal(t.Structured)
	}
	return json.Marshal(t.Plain)
}

func (t *Transcript) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &t.Plain)
	}
	t.Structured = &StructuredTranscript{}
	return json.Unmarshal(data, t.Structured)
}

// RoundSeconds rounds a seconds value to two decimal places.
func RoundSeconds(seconds float64) float64 {
	return math.Round(seconds*100) / 100
}

// FormatSeconds converts seconds to H:MM:SS display form.
func FormatSeconds(seconds float64) string {
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
}

// ParseClock parses an H:MM:SS or HH:MM:SS display timestamp back into
// whole seconds. It is the inverse of FormatSeconds for integer inputs.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hours in %q: %w", s, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minutes in %q: %w", s, err)
	}
	secs, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, fmt.Errorf("invalid seconds in %q: %w", s, err)
	}
	if minutes > 59 || secs > 59 || hours < 0 || minutes < 0 || secs < 0 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return hours*3600 + minutes*60 + secs, nil
}
