package youtube

import (
	"regexp"
	"strconv"
	"strings"

	"tubewise/transcript"
)

// srtTimingRe matches an SRT timing line like
// "00:00:01,910 --> 00:00:03,610".
var srtTimingRe = regexp.MustCompile(`(\d{2}:\d{2}:\d{2}[,.]\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2}[,.]\d{3})`)

// parseSRT converts SRT caption content into cues. Sequence-number
// lines are skipped; consecutive text lines under one timing line are
// joined with spaces. Cue duration is derived from the end timestamp.
func parseSRT(content string) []transcript.Cue {
	lines := strings.Split(content, "\n")
	var cues []transcript.Cue

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		match := srtTimingRe.FindStringSubmatch(line)
		if match == nil {
			i++
			continue
		}

		start := parseSRTTime(match[1])
		end := parseSRTTime(match[2])

		i++
		var textLines []string
		for i < len(lines) {
			textLine := strings.TrimSpace(lines[i])
			if textLine == "" || srtTimingRe.MatchString(textLine) {
				break
			}
			if !isSequenceNumber(textLine) {
				textLines = append(textLines, textLine)
			}
			i++
		}

		if len(textLines) > 0 && end >= start {
			cues = append(cues, transcript.Cue{
				Text:     strings.Join(textLines, " "),
				Start:    start,
				Duration: end - start,
			})
		}
	}

	return cues
}

func parseSRTTime(value string) float64 {
	value = strings.ReplaceAll(value, ",", ".")
	return transcript.ParseVTTTime(value)
}

func isSequenceNumber(line string) bool {
	if line == "" {
		return false
	}
	_, err := strconv.Atoi(line)
	return err == nil
}
