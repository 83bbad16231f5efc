package visual

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

// FFmpeg opens video files for sequential MJPEG decoding, using
// ffprobe for stream properties and ffmpeg for the frame stream.
type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
	jpegQuality int
}

func NewFFmpeg(ffmpegPath, ffprobePath string, jpegQuality int) *FFmpeg {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &FFmpeg{ffmpegPath: ffmpegPath, ffprobePath: ffprobePath, jpegQuality: jpegQuality}
}

func (f *FFmpeg) Open(ctx context.Context, videoPath string) (VideoSource, error) {
	fps, frameCount, err := f.probe(ctx, videoPath)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, f.ffmpegPath,
		"-v", "error",
		"-i", videoPath,
		"-f", "image2pipe",
		"-c:v", "mjpeg",
		"-q:v", strconv.Itoa(qscale(f.jpegQuality)),
		"pipe:1",
	)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start: %w", err)
	}

	return &ffmpegSource{
		cmd:        cmd,
		reader:     bufio.NewReaderSize(stdout, 1<<20),
		fps:        fps,
		frameCount: frameCount,
	}, nil
}

type ffprobeOutput struct {
	Streams []struct {
		AvgFrameRate string `json:"avg_frame_rate"`
		NbFrames     string `json:"nb_frames"`
	} `json:"streams"`
}

func (f *FFmpeg) probe(ctx context.Context, videoPath string) (float64, int, error) {
	cmd := exec.CommandContext(ctx, f.ffprobePath,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=avg_frame_rate,nb_frames",
		"-of", "json",
		videoPath,
	)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return 0, 0, fmt.Errorf("ffprobe: %w", err)
	}

	var out ffprobeOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		return 0, 0, fmt.Errorf("ffprobe output: %w", err)
	}
	if len(out.Streams) == 0 {
		return 0, 0, fmt.Errorf("no video stream in %s", videoPath)
	}

	fps := parseFrameRate(out.Streams[0].AvgFrameRate)
	frameCount, _ := strconv.Atoi(out.Streams[0].NbFrames)
	return fps, frameCount, nil
}

// parseFrameRate handles ffprobe's rational form, e.g. "30000/1001".
// Unknown or malformed rates yield 0.
func parseFrameRate(rate string) float64 {
	if rate == "" || rate == "0/0" {
		return 0
	}
	parts := strings.SplitN(rate, "/", 2)
	num, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0
	}
	if len(parts) == 1 {
		return num
	}
	den, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || den == 0 {
		return 0
	}
	return num / den
}

// qscale maps a familiar 1-100 JPEG quality to ffmpeg's inverted 2-31
// qscale range.
func qscale(quality int) int {
	if quality <= 0 || quality > 100 {
		quality = 70
	}
	return 2 + (100-quality)*29/100
}

type ffmpegSource struct {
	cmd        *exec.Cmd
	reader     *bufio.Reader
	fps        float64
	frameCount int
}

func (s *ffmpegSource) FPS() float64 {
	return s.fps
}

func (s *ffmpegSource) FrameCount() int {
	return s.frameCount
}

// ReadFrame returns the next JPEG from the MJPEG stream by scanning
// for the SOI/EOI markers that delimit each image.
func (s *ffmpegSource) ReadFrame() ([]byte, error) {
	// Find the start-of-image marker (0xFFD8).
	for {
		b, err := s.reader.ReadByte()
		if err != nil {
			return nil, io.EOF
		}
		if b != 0xFF {
			continue
		}
		next, err := s.reader.ReadByte()
		if err != nil {
			return nil, io.EOF
		}
		if next == 0xD8 {
			break
		}
	}

	frame := []byte{0xFF, 0xD8}
	for {
		b, err := s.reader.ReadByte()
		if err != nil {
			return nil, io.EOF
		}
		frame = append(frame, b)
		if b == 0xFF {
			next, err := s.reader.ReadByte()
			if err != nil {
				return nil, io.EOF
			}
			frame = append(frame, next)
			if next == 0xD9 { // end-of-image
				return frame, nil
			}
		}
	}
}

func (s *ffmpegSource) Close() error {
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	return s.cmd.Wait()
}
