package transcript

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tubewise/shared/scratch"
)

type fakeSubtitleDownloader struct {
	content string
	err     error
}

func (f fakeSubtitleDownloader) DownloadSubtitles(ctx context.Context, videoURL, dir string) error {
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(filepath.Join(dir, "captions.en.vtt"), []byte(f.content), 0644)
}

func newTestScratch(t *testing.T) *scratch.Dir {
	t.Helper()
	dir, err := scratch.New(t.TempDir())
	if err != nil {
		t.Fatalf("scratch.New: %v", err)
	}
	return dir
}

func TestCaptionFileSourceAttempt(t *testing.T) {
	ctx := context.Background()
	url := "https://youtu.be/abc"

	t.Run("StructuredCaptions", func(t *testing.T) {
		scratchDir := newTestScratch(t)
		source := NewCaptionFileSource(fakeSubtitleDownloader{content: sampleVTT}, scratchDir)

		result := source.Attempt(ctx, url)
		if result == nil {
			t.Fatal("Attempt = nil, want structured transcript")
		}
		if !result.HasTimestamps() {
			t.Error("result has no timestamps")
		}
		if result.TotalSegments() != 3 {
			t.Errorf("TotalSegments() = %d, want 3", result.TotalSegments())
		}

		leftovers, _ := os.ReadDir(scratchDir.Root())
		if len(leftovers) != 0 {
			t.Errorf("%d scratch entries left after attempt", len(leftovers))
		}
	})

	t.Run("PlainFallback", func(t *testing.T) {
		content := "WEBVTT\n\nno cue markers here\njust text\n"
		source := NewCaptionFileSource(fakeSubtitleDownloader{content: content}, newTestScratch(t))

		result := source.Attempt(ctx, url)
		if result == nil {
			t.Fatal("Attempt = nil, want plain transcript")
		}
		if result.HasTimestamps() {
			t.Error("plain result claims timestamps")
		}
		if result.FullText() != "no cue markers here just text" {
			t.Errorf("FullText() = %q", result.FullText())
		}
	})

	t.Run("DownloadFails", func(t *testing.T) {
		scratchDir := newTestScratch(t)
		source := NewCaptionFileSource(fakeSubtitleDownloader{err: errors.New("no subtitles")}, scratchDir)

		if result := source.Attempt(ctx, url); result != nil {
			t.Errorf("Attempt = %v, want nil", result)
		}
		leftovers, _ := os.ReadDir(scratchDir.Root())
		if len(leftovers) != 0 {
			t.Errorf("%d scratch entries left after failed attempt", len(leftovers))
		}
	})

	t.Run("NoCaptionFiles", func(t *testing.T) {
		downloader := fakeSubtitleDownloaderFunc(func(ctx context.Context, videoURL, dir string) error {
			return nil // succeeds without writing any files
		})
		source := NewCaptionFileSource(downloader, newTestScratch(t))
		if result := source.Attempt(ctx, url); result != nil {
			t.Errorf("Attempt = %v, want nil", result)
		}
	})
}

type fakeSubtitleDownloaderFunc func(ctx context.Context, videoURL, dir string) error

func (f fakeSubtitleDownloaderFunc) DownloadSubtitles(ctx context.Context, videoURL, dir string) error {
	return f(ctx, videoURL, dir)
}
