package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GOOGLE_CLIENT_ID", "")
	t.Setenv("GOOGLE_CLIENT_SECRET", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Address != ":8000" {
		t.Errorf("Address = %q, want :8000", cfg.Server.Address)
	}
	if cfg.AI.Model != "gemini-2.0-flash" {
		t.Errorf("Model = %q", cfg.AI.Model)
	}
	if cfg.AI.MaxModelFrames != 15 {
		t.Errorf("MaxModelFrames = %d, want 15", cfg.AI.MaxModelFrames)
	}
	if cfg.Frames.IntervalSeconds != 5 {
		t.Errorf("IntervalSeconds = %v, want 5", cfg.Frames.IntervalSeconds)
	}
	if cfg.Frames.MaxFrames != 200 {
		t.Errorf("MaxFrames = %d, want 200", cfg.Frames.MaxFrames)
	}
	if cfg.Frames.JPEGQuality != 70 {
		t.Errorf("JPEGQuality = %d, want 70", cfg.Frames.JPEGQuality)
	}
	if cfg.Tools.WhisperModel != "base" {
		t.Errorf("WhisperModel = %q, want base", cfg.Tools.WhisperModel)
	}
	if cfg.Scratch.Dir != "downloads" {
		t.Errorf("Scratch.Dir = %q, want downloads", cfg.Scratch.Dir)
	}
	if cfg.CaptionsEnabled() {
		t.Error("CaptionsEnabled() = true without credentials")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  address: ":9000"
ai:
  gemini_api_key: "file-key"
  model: "gemini-2.5-pro"
frames:
  interval_seconds: 10
  max_frames: 50
captions:
  client_id: "id"
  client_secret: "secret"
`)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_CLIENT_ID", "")
	t.Setenv("GOOGLE_CLIENT_SECRET", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Address != ":9000" {
		t.Errorf("Address = %q, want :9000", cfg.Server.Address)
	}
	if cfg.AI.GeminiAPIKey != "file-key" {
		t.Errorf("GeminiAPIKey = %q", cfg.AI.GeminiAPIKey)
	}
	if cfg.AI.Model != "gemini-2.5-pro" {
		t.Errorf("Model = %q", cfg.AI.Model)
	}
	if cfg.Frames.MaxFrames != 50 {
		t.Errorf("MaxFrames = %d, want 50", cfg.Frames.MaxFrames)
	}
	if !cfg.CaptionsEnabled() {
		t.Error("CaptionsEnabled() = false with credentials")
	}
	// Unset fields still get defaults.
	if cfg.Frames.JPEGQuality != 70 {
		t.Errorf("JPEGQuality = %d, want default 70", cfg.Frames.JPEGQuality)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
ai:
  model: "gemini-2.0-flash"
`)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("GOOGLE_CLIENT_ID", "")
	t.Setenv("GOOGLE_CLIENT_SECRET", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AI.GeminiAPIKey != "env-key" {
		t.Errorf("GeminiAPIKey = %q, want env-key", cfg.AI.GeminiAPIKey)
	}
}

func TestLoadValidation(t *testing.T) {
	t.Run("MissingAPIKey", func(t *testing.T) {
		t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
		t.Setenv("GEMINI_API_KEY", "")
		t.Setenv("GOOGLE_CLIENT_ID", "")
		t.Setenv("GOOGLE_CLIENT_SECRET", "")

		if _, err := Load(); err == nil {
			t.Error("Load succeeded without a Gemini API key")
		}
	})

	t.Run("LopsidedCaptionCredentials", func(t *testing.T) {
		t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
		t.Setenv("GEMINI_API_KEY", "test-key")
		t.Setenv("GOOGLE_CLIENT_ID", "id-only")
		t.Setenv("GOOGLE_CLIENT_SECRET", "")

		if _, err := Load(); err == nil {
			t.Error("Load succeeded with client ID but no secret")
		}
	})

	t.Run("QualityOutOfRange", func(t *testing.T) {
		path := writeConfig(t, `
frames:
  jpeg_quality: 150
`)
		t.Setenv("CONFIG_FILE", path)
		t.Setenv("GEMINI_API_KEY", "test-key")
		t.Setenv("GOOGLE_CLIENT_ID", "")
		t.Setenv("GOOGLE_CLIENT_SECRET", "")

		if _, err := Load(); err == nil {
			t.Error("Load succeeded with jpeg_quality over 100")
		}
	})
}
