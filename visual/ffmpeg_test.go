package visual

import (
	"bufio"
	"bytes"
	"io"
	"testing"
)

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"Rational", "30/1", 30},
		{"NTSC", "30000/1001", 30000.0 / 1001.0},
		{"Plain number", "25", 25},
		{"Unknown", "0/0", 0},
		{"Empty", "", 0},
		{"Zero denominator", "30/0", 0},
		{"Garbage", "abc", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFrameRate(tt.input); got != tt.expected {
				t.Errorf("parseFrameRate(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestQscale(t *testing.T) {
	tests := []struct {
		quality  int
		expected int
	}{
		{100, 2},
		{70, 10},
		{1, 30},
		{0, 10},   // invalid falls back to 70
		{150, 10}, // invalid falls back to 70
	}

	for _, tt := range tests {
		if got := qscale(tt.quality); got != tt.expected {
			t.Errorf("qscale(%d) = %d, want %d", tt.quality, got, tt.expected)
		}
	}
}

func mjpegStream(frames ...[]byte) *ffmpegSource {
	var buf bytes.Buffer
	for _, payload := range frames {
		buf.Write([]byte{0xFF, 0xD8})
		buf.Write(payload)
		buf.Write([]byte{0xFF, 0xD9})
	}
	return &ffmpegSource{reader: bufio.NewReader(&buf)}
}

func TestFFmpegSourceReadFrame(t *testing.T) {
	source := mjpegStream([]byte{0x01, 0x02, 0x03}, []byte{0x04})

	first, err := source.ReadFrame()
	if err != nil {
		t.Fatalf("first ReadFrame: %v", err)
	}
	want := []byte{0xFF, 0xD8, 0x01, 0x02, 0x03, 0xFF, 0xD9}
	if !bytes.Equal(first, want) {
		t.Errorf("first frame = %x, want %x", first, want)
	}

	second, err := source.ReadFrame()
	if err != nil {
		t.Fatalf("second ReadFrame: %v", err)
	}
	if !bytes.Equal(second, []byte{0xFF, 0xD8, 0x04, 0xFF, 0xD9}) {
		t.Errorf("second frame = %x", second)
	}

	if _, err := source.ReadFrame(); err != io.EOF {
		t.Errorf("ReadFrame past end = %v, want io.EOF", err)
	}
}

func TestFFmpegSourceReadFrameSkipsLeadingNoise(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0x00, 0xFF, 0x00, 0x12}) // noise before the first SOI
	buf.Write([]byte{0xFF, 0xD8, 0xAA, 0xFF, 0xD9})
	source := &ffmpegSource{reader: bufio.NewReader(&buf)}

	frame, err := source.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if !bytes.Equal(frame, []byte{0xFF, 0xD8, 0xAA, 0xFF, 0xD9}) {
		t.Errorf("frame = %x", frame)
	}
}
