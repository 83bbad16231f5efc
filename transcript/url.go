package transcript

import (
	"fmt"
	"regexp"
)

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?v=([^&\n?#]+)`),
	regexp.MustCompile(`youtu\.be/([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/embed/([^&\n?#]+)`),
}

// ParseVideoID extracts the video ID from any supported YouTube URL
// form (watch, short link, embed).
func ParseVideoID(videoURL string) (string, error) {
	for _, pattern := range videoIDPatterns {
		if match := pattern.FindStringSubmatch(videoURL); match != nil {
			return match[1], nil
		}
	}
	return "", fmt.Errorf("could not find video ID in URL %q", videoURL)
}
