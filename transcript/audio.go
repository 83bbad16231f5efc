package transcript

import (
	"context"
	"os"
	"strings"

	"tubewise/internal/models"
	"tubewise/shared/logging"
	"tubewise/shared/scratch"
)

// AudioDownloader fetches the best available audio track for a video
// into a directory and returns the downloaded file path.
type AudioDownloader interface {
	DownloadAudio(ctx context.Context, videoURL, dir string) (string, error)
}

// SpeechSegment is one time-aligned unit of transcribed speech.
type SpeechSegment struct {
	Text  string
	Start float64
	End   float64
}

// SpeechResult is the output of a speech-to-text run: timed segments
// when the engine produced them, otherwise the flat text.
type SpeechResult struct {
	Text     string
	Segments []SpeechSegment
}

// Transcriber is the speech-to-text capability.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*SpeechResult, error)
}

// AudioSource is the most expensive strategy: download the audio track
// and transcribe it. Works on any video with an audio stream, caption
// tracks or not.
type AudioSource struct {
	downloader  AudioDownloader
	transcriber Transcriber
	scratch     *scratch.Dir
}

func NewAudioSource(downloader AudioDownloader, transcriber Transcriber, scratchDir *scratch.Dir) *AudioSource {
	return &AudioSource{downloader: downloader, transcriber: transcriber, scratch: scratchDir}
}

func (s *AudioSource) Name() string {
	return "Whisper AI"
}

func (s *AudioSource) Attempt(ctx context.Context, videoURL string) *models.Transcript {
	session, err := s.scratch.NewSession("audio")
	if err != nil {
		logging.L().WithError(err).Warn("audio transcription: scratch session failed")
		return nil
	}
	defer session.Close()

	audioPath, err := s.downloader.DownloadAudio(ctx, videoURL, session.Path())
	if err != nil {
		logging.L().WithError(err).Debug("audio transcription: download failed")
		return nil
	}

	result, err := s.transcriber.Transcribe(ctx, audioPath)
	// Audio files are large; reclaim the space before converting the
	// result instead of waiting for the session teardown.
	os.Remove(audioPath)
	if err != nil {
		logging.L().WithError(err).Debug("audio transcription: transcribe failed")
		return nil
	}

	return speechToTranscript(result)
}

func speechToTranscript(result *SpeechResult) *models.Transcript {
	if result == nil {
		return nil
	}

	var segments []models.TranscriptSegment
	for _, seg := range result.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		segments = append(segments, models.NewSegment(text, seg.Start, seg.End))
	}
	if len(segments) > 0 {
		return models.NewStructured(segments)
	}

	if text := strings.TrimSpace(result.Text); text != "" {
		return models.NewPlain(text)
	}
	return nil
}
