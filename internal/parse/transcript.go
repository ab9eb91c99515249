package parse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/contentmux/contentmux/internal/textnorm"
)

const (
	defaultTranscriptType = "podcast"
	maxSpeakerLen         = 50
	speakingRateWPM       = 150
)

var (
	speakerRe   = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9 .'-]*?):\s*(.*)$`)
	timestampRe = regexp.MustCompile(`[\[(](\d{1,2}:\d{2}(?::\d{2})?)[\])]`)
)

// Transcript extracts speaker turns and timestamp markers from
// transcript text. Speakers are collected distinct, in order of first
// appearance; each timestamp maps to the remainder of its line.
func Transcript(raw string, hint Hint) Attributes {
	attrs := Generic(raw)

	attrs.ContentType = hint.ContentType
	if attrs.ContentType == "" {
		attrs.ContentType = defaultTranscriptType
	}
	attrs.Title = hint.Title

	seen := make(map[string]bool)
	for _, line := range cleanLines(raw) {
		if line == "" {
			continue
		}

		for ts, text := range timestampsIn(line) {
			if attrs.Timestamps == nil {
				attrs.Timestamps = make(map[string]string)
			}
			attrs.Timestamps[ts] = text
		}

		// A turn may be preceded by a timestamp marker.
		turn := strings.TrimSpace(timestampRe.ReplaceAllString(line, ""))
		m := speakerRe.FindStringSubmatch(turn)
		if m == nil {
			continue
		}
		speaker := strings.TrimSpace(m[1])
		if speaker == "" || len(speaker) >= maxSpeakerLen || seen[speaker] {
			continue
		}
		seen[speaker] = true
		attrs.Speakers = append(attrs.Speakers, speaker)
	}

	if minutes := attrs.WordCount / speakingRateWPM; minutes > 0 {
		attrs.EstimatedDuration = fmt.Sprintf("%d:00", minutes)
	}
	return attrs
}

// timestampsIn maps each timestamp marker in line to the text that
// follows it, falling back to the whole line for trailing markers.
func timestampsIn(line string) map[string]string {
	idxs := timestampRe.FindAllStringSubmatchIndex(line, -1)
	if idxs == nil {
		return nil
	}
	out := make(map[string]string, len(idxs))
	for _, m := range idxs {
		ts := line[m[2]:m[3]]
		rest := textnorm.Clean(line[m[1]:])
		if rest == "" {
			rest = strings.TrimSpace(line)
		}
		out[ts] = rest
	}
	return out
}
