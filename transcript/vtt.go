package transcript

import (
	"regexp"
	"strconv"
	"strings"

	"tubewise/internal/models"
)

// cueMarkerRe matches a VTT timing line like
// "00:01:02.345 --> 00:01:04.000", capturing both timestamps.
var cueMarkerRe = regexp.MustCompile(`(\d{2}:\d{2}:\d{2}\.\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2}\.\d{3})`)

// inlineTimestampRe matches per-word timestamps embedded in
// auto-generated captions, e.g. "<00:00:01.500>".
var inlineTimestampRe = regexp.MustCompile(`<\d{2}:\d{2}:\d{2}\.\d{3}>`)

// markupTagRe matches VTT styling tags like <c>, </c>, <i>, <font ...>.
var markupTagRe = regexp.MustCompile(`<[^>]+>`)

// ParseVTT extracts timed segments from VTT caption content. Each cue
// marker line starts a segment; the non-empty text lines that follow
// (up to the next marker or blank line) are cleaned and joined with
// spaces. Returns nil when no well-formed cue is found.
func ParseVTT(content string) []models.TranscriptSegment {
	lines := strings.Split(content, "\n")
	var segments []models.TranscriptSegment

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		if !strings.Contains(line, "-->") {
			i++
			continue
		}
		match := cueMarkerRe.FindStringSubmatch(line)
		if match == nil {
			i++
			continue
		}

		start := ParseVTTTime(match[1])
		end := ParseVTTTime(match[2])

		i++
		var textLines []string
		for i < len(lines) {
			textLine := strings.TrimSpace(lines[i])
			if textLine == "" || strings.Contains(textLine, "-->") {
				break
			}
			if clean := CleanCueText(textLine); clean != "" {
				textLines = append(textLines, clean)
			}
			i++
		}

		if len(textLines) > 0 {
			segments = append(segments, models.NewSegment(strings.Join(textLines, " "), start, end))
		}
	}

	return segments
}

// PlainTextFromVTT strips all cue markers, numeric cue IDs, and headers
// from VTT content and joins the remaining text. Fallback when
// structured parsing finds no usable cues.
func PlainTextFromVTT(content string) string {
	var cleanLines []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" ||
			strings.HasPrefix(line, "WEBVTT") ||
			strings.Contains(line, "-->") ||
			isDigitsOnly(trimmed) {
			continue
		}
		if clean := CleanCueText(trimmed); clean != "" {
			cleanLines = append(cleanLines, clean)
		}
	}
	return strings.Join(cleanLines, " ")
}

// CleanCueText removes inline per-word timestamps and markup tags, then
// collapses whitespace runs to single spaces.
func CleanCueText(text string) string {
	text = inlineTimestampRe.ReplaceAllString(text, "")
	text = markupTagRe.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

// ParseVTTTime converts an HH:MM:SS.mmm timestamp to seconds, rounded
// to two decimals. Malformed input yields 0 rather than an error so a
// single bad cue cannot abort a whole file.
func ParseVTTTime(value string) float64 {
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return 0
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}

	secParts := strings.SplitN(parts[2], ".", 2)
	seconds, err := strconv.Atoi(secParts[0])
	if err != nil {
		return 0
	}
	milliseconds := 0
	if len(secParts) == 2 {
		if ms, err := strconv.Atoi(secParts[1]); err == nil {
			milliseconds = ms
		}
	}

	total := float64(hours)*3600 + float64(minutes)*60 + float64(seconds) + float64(milliseconds)/1000
	return models.RoundSeconds(total)
}

func isDigitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
