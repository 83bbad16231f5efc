package ytdlp

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindByExtension(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"audio.M4A", "notes.txt", "captions.en.vtt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "video.mp4"), 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	t.Run("CaseInsensitiveMatch", func(t *testing.T) {
		path, err := findByExtension(dir, []string{".m4a", ".mp3"})
		if err != nil {
			t.Fatalf("findByExtension: %v", err)
		}
		if filepath.Base(path) != "audio.M4A" {
			t.Errorf("found %q, want audio.M4A", path)
		}
	})

	t.Run("DirectoriesSkipped", func(t *testing.T) {
		// video.mp4 exists but is a directory, so nothing matches.
		if path, err := findByExtension(dir, []string{".mp4"}); err == nil {
			t.Errorf("findByExtension matched directory %q", path)
		}
	})

	t.Run("NoMatch", func(t *testing.T) {
		if _, err := findByExtension(dir, []string{".opus"}); err == nil {
			t.Error("findByExtension succeeded with no matching file")
		}
	})

	t.Run("MissingDir", func(t *testing.T) {
		if _, err := findByExtension(filepath.Join(dir, "nope"), []string{".mp4"}); err == nil {
			t.Error("findByExtension succeeded on a missing directory")
		}
	})
}

func TestNewDefaultPath(t *testing.T) {
	if r := New(""); r.path != "yt-dlp" {
		t.Errorf("default path = %q, want yt-dlp", r.path)
	}
	if r := New("/usr/local/bin/yt-dlp"); r.path != "/usr/local/bin/yt-dlp" {
		t.Errorf("custom path = %q", r.path)
	}
}
