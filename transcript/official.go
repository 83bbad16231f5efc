package transcript

import (
	"context"
	"strings"

	"tubewise/internal/models"
	"tubewise/shared/logging"
)

// CaptionTrack describes one caption track attached to a video.
type CaptionTrack struct {
	ID           string
	LanguageCode string
	LanguageName string
	IsGenerated  bool
}

// Cue is one timed text unit within a caption track.
type Cue struct {
	Text     string
	Start    float64
	Duration float64
}

// CaptionService is the official caption listing/fetch capability.
type CaptionService interface {
	ListTracks(ctx context.Context, videoID string) ([]CaptionTrack, error)
	FetchCues(ctx context.Context, track CaptionTrack) ([]Cue, error)
}

// OfficialSource obtains transcripts from the platform's caption API.
// Fastest strategy, but only available when the video has caption
// tracks and the service is configured.
type OfficialSource struct {
	service CaptionService
}

func NewOfficialSource(service CaptionService) *OfficialSource {
	return &OfficialSource{service: service}
}

func (s *OfficialSource) Name() string {
	return "YouTube API"
}

func (s *OfficialSource) Attempt(ctx context.Context, videoURL string) *models.Transcript {
	if s.service == nil {
		return nil
	}

	videoID, err := ParseVideoID(videoURL)
	if err != nil {
		logging.L().WithError(err).Debug("official captions: unparseable URL")
		return nil
	}

	tracks, err := s.service.ListTracks(ctx, videoID)
	if err != nil {
		logging.L().WithError(err).Debug("official captions: track listing failed")
		return nil
	}

	best := BestEnglishTrack(tracks)
	if best == nil {
		return nil
	}

	cues, err := s.service.FetchCues(ctx, *best)
	if err != nil {
		logging.L().WithError(err).Debug("official captions: cue fetch failed")
		return nil
	}

	var segments []models.TranscriptSegment
	for _, cue := range cues {
		text := strings.TrimSpace(cue.Text)
		if text == "" {
			continue
		}
		segments = append(segments, models.NewSegment(text, cue.Start, cue.Start+cue.Duration))
	}
	if len(segments) == 0 {
		return nil
	}
	return models.NewStructured(segments)
}

// BestEnglishTrack picks a caption track using a fixed preference
// order: the first manually-authored English track wins outright; else
// the first auto-generated English track; else the first track whose
// display name mentions English. Track list order is meaningful, so
// first match is kept rather than comparing candidates.
func BestEnglishTrack(tracks []CaptionTrack) *CaptionTrack {
	var generated, named *CaptionTrack

	for i := range tracks {
		track := &tracks[i]
		code := strings.ToLower(track.LanguageCode)
		name := strings.ToLower(track.LanguageName)

		switch {
		case !track.IsGenerated && strings.HasPrefix(code, "en"):
			return track
		case track.IsGenerated && strings.HasPrefix(code, "en") && generated == nil:
			generated = track
		case strings.Contains(name, "english") && named == nil:
			named = track
		}
	}

	if generated != nil {
		return generated
	}
	return named
}
