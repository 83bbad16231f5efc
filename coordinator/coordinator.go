// Package coordinator routes questions about a video to text-only or
// visual analysis, resolving transcript and frame artifacts from the
// cache or their extractors along the way.
package coordinator

import (
	"context"
	"errors"
	"fmt"

	"tubewise/internal/models"
	"tubewise/shared/ai"
	"tubewise/shared/cache"
	"tubewise/transcript"
)

// Terminal failures surfaced to callers.
var (
	ErrNoTranscript = errors.New("could not get video transcript")
	ErrNoFrames     = errors.New("could not get video frames for visual analysis")
)

// Answer method labels and analysis types.
const (
	methodText    = "Text Analysis"
	methodVisual  = "Visual Analysis"
	methodSummary = "Complete Video Analysis"

	analysisTranscriptOnly = "transcript_only"
	analysisVisual         = "visual"
)

// TranscriptProvider runs the caption-source fallback chain.
type TranscriptProvider interface {
	Extract(ctx context.Context, videoURL string) (*transcript.Extraction, error)
}

// FrameProvider samples frames from a video.
type FrameProvider interface {
	Extract(ctx context.Context, videoURL string) (*models.FrameSet, error)
}

// Answerer is the generative capability plus question classification.
type Answerer interface {
	Classify(ctx context.Context, question string) models.Classification
	AnswerFromTranscript(ctx context.Context, question, transcriptText, videoTitle string) (string, error)
	AnswerWithFrames(ctx context.Context, question, transcriptText string, frames []models.Frame, videoTitle string) (string, error)
	Summarize(ctx context.Context, transcriptText, videoTitle string) (string, error)
	MaxFrames() int
}

type Coordinator struct {
	cache       *cache.Cache
	transcripts TranscriptProvider
	frames      FrameProvider
	ai          Answerer
}

func New(artifactCache *cache.Cache, transcripts TranscriptProvider, frames FrameProvider, answerer Answerer) *Coordinator {
	return &Coordinator{
		cache:       artifactCache,
		transcripts: transcripts,
		frames:      frames,
		ai:          answerer,
	}
}

// AnswerQuestion handles one question about one video: resolve the
// transcript, classify the question, then dispatch to text-only or
// visual analysis.
func (c *Coordinator) AnswerQuestion(ctx context.Context, videoURL, question string) (*models.Answer, error) {
	entry, transcriptCached, err := c.resolveTranscript(ctx, videoURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoTranscript, err)
	}

	classification := c.ai.Classify(ctx, question)

	if classification.NeedsVisual() {
		return c.answerVisual(ctx, videoURL, question, entry)
	}
	return c.answerText(ctx, question, entry, transcriptCached)
}

// GetTranscript resolves a transcript from cache or the fallback
// chain, reporting whether it was served from cache.
func (c *Coordinator) GetTranscript(ctx context.Context, videoURL string) (*cache.TranscriptEntry, bool, error) {
	return c.resolveTranscript(ctx, videoURL)
}

// Summarize produces a whole-video breakdown from the transcript.
func (c *Coordinator) Summarize(ctx context.Context, videoURL string) (*models.Answer, error) {
	entry, cached, err := c.resolveTranscript(ctx, videoURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoTranscript, err)
	}

	analysis, err := c.ai.Summarize(ctx, entry.Transcript.FullText(), entry.VideoTitle)
	if err != nil {
		return nil, fmt.Errorf("summary generation failed: %w", err)
	}

	return &models.Answer{
		Question:     "Please provide a summary of this video",
		Text:         analysis,
		VideoTitle:   entry.VideoTitle,
		Method:       methodSummary,
		AnalysisType: analysisTranscriptOnly,
		CacheUsed:    cached,
		Timestamps:   ai.ExtractTimestamps(analysis),
	}, nil
}

func (c *Coordinator) answerText(ctx context.Context, question string, entry *cache.TranscriptEntry, cached bool) (*models.Answer, error) {
	text, err := c.ai.AnswerFromTranscript(ctx, question, entry.Transcript.FullText(), entry.VideoTitle)
	if err != nil {
		return nil, fmt.Errorf("text analysis failed: %w", err)
	}

	return &models.Answer{
		Question:     question,
		Text:         text,
		VideoTitle:   entry.VideoTitle,
		Method:       methodText,
		AnalysisType: analysisTranscriptOnly,
		CacheUsed:    cached,
		Timestamps:   ai.ExtractTimestamps(text),
	}, nil
}

func (c *Coordinator) answerVisual(ctx context.Context, videoURL, question string, entry *cache.TranscriptEntry) (*models.Answer, error) {
	frames, framesCached, err := c.resolveFrames(ctx, videoURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoFrames, err)
	}

	text, err := c.ai.AnswerWithFrames(ctx, question, entry.Transcript.FullText(), frames.Frames, entry.VideoTitle)
	if err != nil {
		return nil, fmt.Errorf("visual analysis failed: %w", err)
	}

	analyzed := len(frames.Frames)
	if max := c.ai.MaxFrames(); max > 0 && analyzed > max {
		analyzed = max
	}

	return &models.Answer{
		Question:       question,
		Text:           text,
		VideoTitle:     entry.VideoTitle,
		Method:         methodVisual,
		AnalysisType:   analysisVisual,
		FramesAnalyzed: analyzed,
		CacheUsed:      framesCached,
		Timestamps:     ai.ExtractTimestamps(text),
	}, nil
}

func (c *Coordinator) resolveTranscript(ctx context.Context, videoURL string) (*cache.TranscriptEntry, bool, error) {
	if entry, ok := c.cache.Transcript(videoURL); ok {
		return entry, true, nil
	}

	extraction, err := c.transcripts.Extract(ctx, videoURL)
	if err != nil {
		return nil, false, err
	}

	c.cache.StoreTranscript(videoURL, extraction.VideoTitle, extraction.Transcript, extraction.Method)
	return &cache.TranscriptEntry{
		VideoTitle: extraction.VideoTitle,
		Transcript: extraction.Transcript,
		Method:     extraction.Method,
	}, false, nil
}

func (c *Coordinator) resolveFrames(ctx context.Context, videoURL string) (*models.FrameSet, bool, error) {
	if frames, ok := c.cache.Frames(videoURL); ok {
		return frames, true, nil
	}

	frames, err := c.frames.Extract(ctx, videoURL)
	if err != nil {
		return nil, false, err
	}

	c.cache.StoreFrames(videoURL, frames)
	return frames, false, nil
}

// Stats describes system readiness for the health endpoint.
type Stats struct {
	CoordinatorStatus string      `json:"coordinator_status"`
	Cache             cache.Stats `json:"cache_stats"`
	Capabilities      []string    `json:"capabilities"`
}

func (c *Coordinator) Stats() Stats {
	return Stats{
		CoordinatorStatus: "ready",
		Cache:             c.cache.Stats(),
		Capabilities: []string{
			"YouTube transcript extraction",
			"Video frame extraction",
			"Smart question routing",
			"Visual + text analysis",
			"Intelligent caching",
		},
	}
}
