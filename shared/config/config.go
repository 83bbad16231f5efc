package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	AI       AIConfig       `yaml:"ai"`
	Captions CaptionsConfig `yaml:"captions"`
	Tools    ToolsConfig    `yaml:"tools"`
	Frames   FramesConfig   `yaml:"frames"`
	Scratch  ScratchConfig  `yaml:"scratch"`
}

type ServerConfig struct {
	Address string `yaml:"address"`
}

type AIConfig struct {
	GeminiAPIKey string `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	Model        string `yaml:"model"`
	// MaxModelFrames bounds how many frames are attached to a single
	// Gemini request, regardless of how many were sampled.
	MaxModelFrames int `yaml:"max_model_frames"`
}

// CaptionsConfig configures the official YouTube captions service.
// Client credentials are optional; without them the official-API
// strategy reports unavailable and the chain falls through to yt-dlp.
type CaptionsConfig struct {
	ClientID     string `yaml:"client_id" env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `yaml:"client_secret" env:"GOOGLE_CLIENT_SECRET"`
	TokenFile    string `yaml:"token_file"`
}

type ToolsConfig struct {
	YtDlpPath   string `yaml:"ytdlp_path"`
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`
	WhisperPath string `yaml:"whisper_path"`
	// WhisperModel selects the speech-to-text model size.
	WhisperModel string `yaml:"whisper_model"`
}

type FramesConfig struct {
	IntervalSeconds float64 `yaml:"interval_seconds"`
	MaxFrames       int     `yaml:"max_frames"`
	JPEGQuality     int     `yaml:"jpeg_quality"`
}

type ScratchConfig struct {
	Dir string `yaml:"dir"`
	// JanitorSchedule is a cron expression for clearing stale downloads.
	JanitorSchedule string `yaml:"janitor_schedule"`
	MaxAgeMinutes   int    `yaml:"max_age_minutes"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	var cfg Config
	data, err := os.ReadFile(configFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		// No config file is fine, env vars and defaults cover everything.
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
	}

	if cfg.AI.GeminiAPIKey == "" {
		cfg.AI.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.Captions.ClientID == "" {
		cfg.Captions.ClientID = os.Getenv("GOOGLE_CLIENT_ID")
	}
	if cfg.Captions.ClientSecret == "" {
		cfg.Captions.ClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = ":8000"
	}
	if c.AI.Model == "" {
		c.AI.Model = "gemini-2.0-flash"
	}
	if c.AI.MaxModelFrames <= 0 {
		c.AI.MaxModelFrames = 15
	}
	if c.Captions.TokenFile == "" {
		c.Captions.TokenFile = "youtube_token.json"
	}
	if c.Tools.YtDlpPath == "" {
		c.Tools.YtDlpPath = "yt-dlp"
	}
	if c.Tools.FFmpegPath == "" {
		c.Tools.FFmpegPath = "ffmpeg"
	}
	if c.Tools.FFprobePath == "" {
		c.Tools.FFprobePath = "ffprobe"
	}
	if c.Tools.WhisperPath == "" {
		c.Tools.WhisperPath = "whisper"
	}
	if c.Tools.WhisperModel == "" {
		c.Tools.WhisperModel = "base"
	}
	if c.Frames.IntervalSeconds <= 0 {
		c.Frames.IntervalSeconds = 5
	}
	if c.Frames.MaxFrames <= 0 {
		c.Frames.MaxFrames = 200
	}
	if c.Frames.JPEGQuality <= 0 {
		c.Frames.JPEGQuality = 70
	}
	if c.Scratch.Dir == "" {
		c.Scratch.Dir = "downloads"
	}
	if c.Scratch.JanitorSchedule == "" {
		c.Scratch.JanitorSchedule = "*/15 * * * *" // Every 15 minutes
	}
	if c.Scratch.MaxAgeMinutes <= 0 {
		c.Scratch.MaxAgeMinutes = 60
	}
}

func (c *Config) validate() error {
	if c.AI.GeminiAPIKey == "" {
		return fmt.Errorf("Gemini API key is required (set GEMINI_API_KEY or ai.gemini_api_key)")
	}
	if c.Frames.JPEGQuality > 100 {
		return fmt.Errorf("frames.jpeg_quality must be between 1 and 100, got %d", c.Frames.JPEGQuality)
	}
	if (c.Captions.ClientID == "") != (c.Captions.ClientSecret == "") {
		return fmt.Errorf("captions.client_id and captions.client_secret must be set together")
	}
	return nil
}

// CaptionsEnabled reports whether the official captions API strategy
// can be configured at all.
func (c *Config) CaptionsEnabled() bool {
	return c.Captions.ClientID != "" && c.Captions.ClientSecret != ""
}
