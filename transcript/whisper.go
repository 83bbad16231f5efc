package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// WhisperCLI runs the whisper command-line tool and parses its JSON
// output into a SpeechResult. Implements Transcriber.
type WhisperCLI struct {
	path  string
	model string
}

func NewWhisperCLI(path, model string) *WhisperCLI {
	if path == "" {
		path = "whisper"
	}
	if model == "" {
		model = "base"
	}
	return &WhisperCLI{path: path, model: model}
}

type whisperOutput struct {
	Text     string `json:"text"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

func (w *WhisperCLI) Transcribe(ctx context.Context, audioPath string) (*SpeechResult, error) {
	outDir := filepath.Dir(audioPath)

	cmd := exec.CommandContext(ctx, w.path,
		audioPath,
		"--model", w.model,
		"--output_format", "json",
		"--output_dir", outDir,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("whisper: %w", err)
		}
		return nil, fmt.Errorf("whisper: %s: %w", msg, err)
	}

	// Whisper names its output after the audio file stem.
	stem := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	jsonPath := filepath.Join(outDir, stem+".json")
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("whisper output missing: %w", err)
	}
	defer os.Remove(jsonPath)

	var out whisperOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse whisper output: %w", err)
	}

	result := &SpeechResult{Text: out.Text}
	for _, seg := range out.Segments {
		result.Segments = append(result.Segments, SpeechSegment{
			Text:  seg.Text,
			Start: seg.Start,
			End:   seg.End,
		})
	}
	return result, nil
}
