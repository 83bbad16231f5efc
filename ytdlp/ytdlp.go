// Package ytdlp wraps the yt-dlp CLI for metadata probing and for
// downloading captions, audio, and bounded-quality video into scratch
// directories.
package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"tubewise/shared/logging"
)

type Runner struct {
	path string
}

func New(path string) *Runner {
	if path == "" {
		path = "yt-dlp"
	}
	return &Runner{path: path}
}

// Metadata is the subset of yt-dlp's --dump-json output we need for
// planning downstream work.
type Metadata struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Channel  string  `json:"channel"`
	Duration float64 `json:"duration"`
}

// Metadata probes a video without downloading anything.
func (r *Runner) Metadata(ctx context.Context, url string) (*Metadata, error) {
	out, err := r.run(ctx, "--dump-json", "--no-playlist", "--quiet", url)
	if err != nil {
		return nil, fmt.Errorf("failed to probe video metadata: %w", err)
	}

	var meta Metadata
	if err := json.Unmarshal(out, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp metadata: %w", err)
	}
	return &meta, nil
}

// Title returns the video title, or "Unknown Video" when the probe
// fails. Title lookup is best-effort and never blocks extraction.
func (r *Runner) Title(ctx context.Context, url string) string {
	meta, err := r.Metadata(ctx, url)
	if err != nil || meta.Title == "" {
		return "Unknown Video"
	}
	return meta.Title
}

// DownloadSubtitles asks yt-dlp to write English subtitle and
// auto-subtitle files into dir without downloading the video itself.
// The resulting VTT files are the caller's to parse and remove.
func (r *Runner) DownloadSubtitles(ctx context.Context, url, dir string) error {
	_, err := r.run(ctx,
		"--write-subs",
		"--write-auto-subs",
		"--sub-langs", "en",
		"--skip-download",
		"--no-playlist",
		"--quiet",
		"-o", filepath.Join(dir, "captions"),
		url,
	)
	if err != nil {
		return fmt.Errorf("subtitle download failed: %w", err)
	}
	return nil
}

// DownloadAudio fetches the best available audio track into dir and
// returns the path of the downloaded file.
func (r *Runner) DownloadAudio(ctx context.Context, url, dir string) (string, error) {
	_, err := r.run(ctx,
		"-f", "bestaudio",
		"--no-playlist",
		"--quiet",
		"-o", filepath.Join(dir, "audio.%(ext)s"),
		url,
	)
	if err != nil {
		return "", fmt.Errorf("audio download failed: %w", err)
	}

	path, err := findByExtension(dir, []string{".m4a", ".mp3", ".webm", ".opus", ".mp4"})
	if err != nil {
		return "", fmt.Errorf("audio file not found after download: %w", err)
	}
	return path, nil
}

// DownloadVideo fetches the video capped at 720p into dir and returns
// the path of the downloaded file. Lower quality keeps frame sampling
// downloads fast.
func (r *Runner) DownloadVideo(ctx context.Context, url, dir string) (string, error) {
	_, err := r.run(ctx,
		"-f", "best[height<=720]",
		"--no-playlist",
		"--quiet",
		"-o", filepath.Join(dir, "video.%(ext)s"),
		url,
	)
	if err != nil {
		return "", fmt.Errorf("video download failed: %w", err)
	}

	path, err := findByExtension(dir, []string{".mp4", ".webm", ".mkv", ".avi"})
	if err != nil {
		return "", fmt.Errorf("video file not found after download: %w", err)
	}
	return path, nil
}

func (r *Runner) run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.path, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logging.L().WithField("args", strings.Join(args, " ")).Debug("running yt-dlp")

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("yt-dlp: %w", err)
		}
		return nil, fmt.Errorf("yt-dlp: %s: %w", msg, err)
	}
	return stdout.Bytes(), nil
}

func findByExtension(dir string, extensions []string) (string, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(de.Name()))
		for _, want := range extensions {
			if ext == want {
				return filepath.Join(dir, de.Name()), nil
			}
		}
	}
	return "", fmt.Errorf("no file with extensions %v in %s", extensions, dir)
}
