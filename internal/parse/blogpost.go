package parse

import (
	"fmt"
	"regexp"
	"strings"
)

const readingRateWPM = 200

var (
	headingRe = regexp.MustCompile(`^#{1,6}\s+(.+)$`)
	hashtagRe = regexp.MustCompile(`#([A-Za-z0-9_]+)`)
	linkRe    = regexp.MustCompile(`[a-z][a-z0-9+.-]*://[^\s<>"{}|\\^` + "`" + `\[\]]+`)
)

// BlogPost extracts markdown headings, hashtag tags, and absolute
// links from article text. The first heading serves as the title when
// the hint carries none.
func BlogPost(raw string, hint Hint) Attributes {
	attrs := Generic(raw)
	attrs.Author = hint.Author

	var body strings.Builder
	for _, line := range cleanLines(raw) {
		if line == "" {
			continue
		}
		if m := headingRe.FindStringSubmatch(line); m != nil {
			attrs.Headings = append(attrs.Headings, strings.TrimSpace(m[1]))
			continue
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}

	attrs.Title = hint.Title
	if attrs.Title == "" && len(attrs.Headings) > 0 {
		attrs.Title = attrs.Headings[0]
	}
	if attrs.Title == "" {
		attrs.Title = firstPlausibleTitle(raw)
	}

	// Hashtags count only outside heading marker position; heading
	// lines were consumed above, so the body scan cannot see them.
	seen := make(map[string]bool)
	for _, m := range hashtagRe.FindAllStringSubmatch(body.String(), -1) {
		tag := m[1]
		if seen[tag] {
			continue
		}
		seen[tag] = true
		attrs.Tags = append(attrs.Tags, tag)
	}

	attrs.Links = linkRe.FindAllString(attrs.CleanedContent, -1)

	minutes := (attrs.WordCount + readingRateWPM - 1) / readingRateWPM
	if minutes < 1 {
		minutes = 1
	}
	attrs.ReadingTime = fmt.Sprintf("%d min", minutes)
	return attrs
}

// firstPlausibleTitle falls back to the first line that looks like a
// title: not trivially short, not a paragraph-length run-on.
func firstPlausibleTitle(raw string) string {
	lines := cleanLines(raw)
	limit := 5
	for _, line := range lines {
		if limit == 0 {
			break
		}
		if line == "" {
			continue
		}
		limit--
		if len(line) > 10 && len(line) < 200 {
			return line
		}
	}
	return ""
}
