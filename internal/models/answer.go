package models

// Question routing outcomes.
const (
	AnalysisTranscript = "transcript"
	AnalysisVisual     = "visual"
)

// Classification is the routing decision for a question: whether it can
// be answered from the transcript alone or needs video frames.
type Classification struct {
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

func (c Classification) NeedsVisual() bool {
	return c.Type == AnalysisVisual
}

// TimestampRef is a moment referenced in a generated answer, extracted
// from parenthesized H:MM:SS markers in the text.
type TimestampRef struct {
	Display string `json:"display"`
	Seconds int    `json:"seconds"`
	Text    string `json:"timestamp_text"`
}

// Answer is the result of answering one question about one video.
type Answer struct {
	Question       string         `json:"question"`
	Text           string         `json:"answer"`
	VideoTitle     string         `json:"video_title"`
	Method         string         `json:"method"`
	AnalysisType   string         `json:"analysis_type"`
	FramesAnalyzed int            `json:"frames_analyzed,omitempty"`
	CacheUsed      bool           `json:"cache_used"`
	Timestamps     []TimestampRef `json:"timestamps"`
}

func (a *Answer) HasTimestamps() bool {
	return a != nil && len(a.Timestamps) > 0
}
