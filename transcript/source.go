// Package transcript acquires structured transcripts from YouTube
// videos through a chain of increasingly expensive strategies: the
// official caption API, downloaded caption files, and audio
// transcription. Every strategy normalizes into the same tagged
// transcript shape.
package transcript

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tubewise/internal/models"
	"tubewise/shared/logging"
)

// Source is one transcript extraction strategy. Attempt returns nil
// when the strategy cannot produce a transcript for this video;
// internal failures are logged and also surface as nil so one broken
// strategy never blocks the next.
type Source interface {
	Name() string
	Attempt(ctx context.Context, videoURL string) *models.Transcript
}

// ErrAllStrategiesFailed is returned when every configured strategy
// reported unavailable.
var ErrAllStrategiesFailed = errors.New("all transcript strategies failed")

// TitleProber looks up a video title, best-effort.
type TitleProber interface {
	Title(ctx context.Context, videoURL string) string
}

// Extraction is a successful chain result: the transcript plus the
// label of the strategy that produced it.
type Extraction struct {
	VideoTitle string
	Transcript *models.Transcript
	Method     string
	Message    string
}

// Chain tries each source in order and stops at the first usable
// result. Attempts are independent: sources clean up their own scratch
// artifacts before the chain moves on.
type Chain struct {
	titler  TitleProber
	sources []Source
}

func NewChain(titler TitleProber, sources ...Source) *Chain {
	return &Chain{titler: titler, sources: sources}
}

func (c *Chain) Extract(ctx context.Context, videoURL string) (*Extraction, error) {
	title := c.titler.Title(ctx, videoURL)

	var tried []string
	for _, source := range c.sources {
		tried = append(tried, source.Name())

		result := source.Attempt(ctx, videoURL)
		if result == nil {
			logging.L().WithFields(map[string]interface{}{
				"video":  videoURL,
				"method": source.Name(),
			}).Info("transcript strategy unavailable, falling through")
			continue
		}

		message := fmt.Sprintf("Got transcript from %s (plain text)", source.Name())
		if result.HasTimestamps() {
			message = fmt.Sprintf("Got transcript with %d timestamped segments", result.TotalSegments())
		}

		logging.L().WithFields(map[string]interface{}{
			"video":    videoURL,
			"method":   source.Name(),
			"segments": result.TotalSegments(),
		}).Info("transcript extracted")

		return &Extraction{
			VideoTitle: title,
			Transcript: result,
			Method:     source.Name(),
			Message:    message,
		}, nil
	}

	return nil, fmt.Errorf("%w: tried %s", ErrAllStrategiesFailed, strings.Join(tried, ", "))
}
