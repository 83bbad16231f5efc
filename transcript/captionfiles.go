package transcript

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"tubewise/internal/models"
	"tubewise/shared/logging"
	"tubewise/shared/scratch"
)

// SubtitleDownloader saves subtitle/auto-subtitle files for a video
// into a directory without downloading the video itself.
type SubtitleDownloader interface {
	DownloadSubtitles(ctx context.Context, videoURL, dir string) error
}

// CaptionFileSource downloads English caption files into a scratch
// session and parses them. Caption files are removed with the session
// regardless of parsing outcome.
type CaptionFileSource struct {
	downloader SubtitleDownloader
	scratch    *scratch.Dir
}

func NewCaptionFileSource(downloader SubtitleDownloader, scratchDir *scratch.Dir) *CaptionFileSource {
	return &CaptionFileSource{downloader: downloader, scratch: scratchDir}
}

func (s *CaptionFileSource) Name() string {
	return "yt-dlp captions"
}

func (s *CaptionFileSource) Attempt(ctx context.Context, videoURL string) *models.Transcript {
	session, err := s.scratch.NewSession("captions")
	if err != nil {
		logging.L().WithError(err).Warn("caption files: scratch session failed")
		return nil
	}
	defer session.Close()

	if err := s.downloader.DownloadSubtitles(ctx, videoURL, session.Path()); err != nil {
		logging.L().WithError(err).Debug("caption files: download failed")
		return nil
	}

	return parseCaptionDir(session.Path())
}

// parseCaptionDir parses every caption file in dir, preferring the
// first one that yields structured cues, then the first with usable
// plain text.
func parseCaptionDir(dir string) *models.Transcript {
	paths, err := filepath.Glob(filepath.Join(dir, "*.vtt"))
	if err != nil {
		return nil
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		content := string(data)

		if segments := ParseVTT(content); len(segments) > 0 {
			return models.NewStructured(segments)
		}

		if plain := strings.TrimSpace(PlainTextFromVTT(content)); plain != "" {
			return models.NewPlain(plain)
		}
	}

	return nil
}
