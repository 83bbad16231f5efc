package visual

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"tubewise/internal/models"
	"tubewise/shared/logging"
	"tubewise/shared/scratch"
	"tubewise/ytdlp"
)

// ErrFrameExtraction marks a terminal failure of the whole frame
// extraction: the video could not be probed, downloaded, or decoded.
var ErrFrameExtraction = errors.New("frame extraction failed")

// VideoSource is the decode capability: stream properties plus a
// sequential frame reader. ReadFrame returns the next frame as an
// encoded JPEG payload and io.EOF when the stream is exhausted.
type VideoSource interface {
	FPS() float64
	FrameCount() int
	ReadFrame() ([]byte, error)
	Close() error
}

// SourceOpener opens a downloaded video file for sequential decoding.
type SourceOpener interface {
	Open(ctx context.Context, videoPath string) (VideoSource, error)
}

// VideoDownloader fetches a bounded-quality copy of the video into a
// directory and returns the downloaded file path.
type VideoDownloader interface {
	DownloadVideo(ctx context.Context, videoURL, dir string) (string, error)
}

// MetadataProber reports a video's duration and title without
// downloading it.
type MetadataProber interface {
	Metadata(ctx context.Context, videoURL string) (*ytdlp.Metadata, error)
}

// Extractor turns a video URL into a FrameSet: probe duration, build a
// plan, download, decode, sample. The downloaded file lives in a
// scratch session removed on every exit path.
type Extractor struct {
	prober     MetadataProber
	downloader VideoDownloader
	opener     SourceOpener
	scratch    *scratch.Dir
	interval   float64
	maxFrames  int
}

func NewExtractor(prober MetadataProber, downloader VideoDownloader, opener SourceOpener, scratchDir *scratch.Dir, interval float64, maxFrames int) *Extractor {
	return &Extractor{
		prober:     prober,
		downloader: downloader,
		opener:     opener,
		scratch:    scratchDir,
		interval:   interval,
		maxFrames:  maxFrames,
	}
}

func (e *Extractor) Extract(ctx context.Context, videoURL string) (*models.FrameSet, error) {
	meta, err := e.prober.Metadata(ctx, videoURL)
	if err != nil {
		return nil, fmt.Errorf("%w: could not access video: %v", ErrFrameExtraction, err)
	}
	if meta.Duration <= 0 {
		return nil, fmt.Errorf("%w: could not get video duration", ErrFrameExtraction)
	}

	plan := BuildPlan(meta.Duration, e.interval, e.maxFrames)

	session, err := e.scratch.NewSession("video")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFrameExtraction, err)
	}
	defer session.Close()

	videoPath, err := e.downloader.DownloadVideo(ctx, videoURL, session.Path())
	if err != nil {
		return nil, fmt.Errorf("%w: could not download video: %v", ErrFrameExtraction, err)
	}

	source, err := e.opener.Open(ctx, videoPath)
	if err != nil {
		return nil, fmt.Errorf("%w: could not open video file: %v", ErrFrameExtraction, err)
	}
	defer source.Close()

	frames := Sample(source, plan)

	logging.L().WithFields(map[string]interface{}{
		"video":    videoURL,
		"frames":   len(frames),
		"interval": plan.Interval,
	}).Info("frames extracted")

	return &models.FrameSet{
		VideoTitle: meta.Title,
		Duration:   meta.Duration,
		Interval:   plan.Interval,
		Frames:     frames,
	}, nil
}

// Sample reads frames sequentially from source, keeping one every
// round(fps * interval) decoded frames until the plan's target count
// is reached or the stream ends. Frame timestamps derive from the
// decoded frame index; with unknown fps the step degrades to every
// frame and timestamps to zero.
func Sample(source VideoSource, plan Plan) []models.Frame {
	fps := source.FPS()
	step := int(math.Round(fps * plan.Interval))
	if step < 1 {
		step = 1
	}

	var frames []models.Frame
	decoded := 0
	for len(frames) < plan.TargetFrames {
		data, err := source.ReadFrame()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				logging.L().WithError(err).Debug("frame decode stopped early")
			}
			break
		}

		if decoded%step == 0 {
			timestamp := 0.0
			if fps > 0 {
				timestamp = float64(decoded) / fps
			}
			frames = append(frames, models.Frame{
				Index:     len(frames),
				Timestamp: models.RoundSeconds(timestamp),
				Data:      data,
			})
		}
		decoded++
	}

	return frames
}
