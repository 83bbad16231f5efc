package ai

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"tubewise/internal/models"
)

// timestampRe matches parenthesized H:MM:SS or HH:MM:SS references in
// answer text, with minutes and seconds bounded to [0,59].
var timestampRe = regexp.MustCompile(`\((\d{1,2}):([0-5]\d):([0-5]\d)\)`)

// ExtractTimestamps pulls video moments referenced in generated answer
// text. Entries with hours >= 24 are discarded, duplicates (by total
// seconds) keep the first occurrence's display text, and the result is
// sorted ascending by seconds.
func ExtractTimestamps(text string) []models.TimestampRef {
	seen := make(map[int]bool)
	var refs []models.TimestampRef

	for _, match := range timestampRe.FindAllStringSubmatch(text, -1) {
		hours, _ := strconv.Atoi(match[1])
		minutes, _ := strconv.Atoi(match[2])
		seconds, _ := strconv.Atoi(match[3])

		if hours >= 24 {
			continue
		}

		total := hours*3600 + minutes*60 + seconds
		if seen[total] {
			continue
		}
		seen[total] = true

		refs = append(refs, models.TimestampRef{
			Display: fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds),
			Seconds: total,
			Text:    match[0],
		})
	}

	sort.Slice(refs, func(i, j int) bool {
		return refs[i].Seconds < refs[j].Seconds
	})

	return refs
}
