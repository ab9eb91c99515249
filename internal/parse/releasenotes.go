package parse

import (
	"regexp"
	"strings"
)

var (
	versionRe     = regexp.MustCompile(`v?(\d+\.\d+\.\d+)`)
	releaseDateRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}|\d{1,2}/\d{1,2}/\d{4}`)
	listItemRe    = regexp.MustCompile(`^(?:[-*•]|\d+[.)])\s*(.+)$`)
	sectionTrimRe = regexp.MustCompile(`^#{1,6}\s*`)
)

type noteSection int

const (
	sectionNone noteSection = iota
	sectionFeatures
	sectionBugFixes
	sectionBreaking
	sectionChanges
)

// ReleaseNotes extracts changelog sections from release note text.
// The version is a primary key supplied via the hint; a semver-like
// token in the text is used only when the hint carries none, and
// model construction still rejects items with neither.
func ReleaseNotes(raw string, hint Hint) Attributes {
	attrs := Generic(raw)
	attrs.Title = hint.Title

	attrs.Version = hint.Version
	if attrs.Version == "" {
		if m := versionRe.FindStringSubmatch(attrs.CleanedContent); m != nil {
			attrs.Version = m[1]
		}
	}
	if m := releaseDateRe.FindString(attrs.CleanedContent); m != "" {
		attrs.ReleaseDate = m
	}

	current := sectionNone
	for _, line := range cleanLines(raw) {
		if line == "" {
			continue
		}

		if item := listItemRe.FindStringSubmatch(line); item != nil {
			text := strings.TrimSpace(item[1])
			if text == "" {
				continue
			}
			switch current {
			case sectionFeatures:
				attrs.Features = append(attrs.Features, text)
			case sectionBugFixes:
				attrs.BugFixes = append(attrs.BugFixes, text)
			case sectionBreaking:
				attrs.BreakingChanges = append(attrs.BreakingChanges, text)
			case sectionChanges:
				attrs.Changes = append(attrs.Changes, text)
			}
			continue
		}

		if s := sectionFor(line); s != sectionNone {
			current = s
		}
	}
	return attrs
}

// sectionFor recognizes changelog section headers, with or without
// markdown heading markers, case-insensitively.
func sectionFor(line string) noteSection {
	h := sectionTrimRe.ReplaceAllString(line, "")
	h = strings.ToLower(strings.TrimRight(strings.TrimSpace(h), ":"))

	switch {
	case strings.HasPrefix(h, "breaking"):
		return sectionBreaking
	case strings.HasPrefix(h, "feature"), strings.HasPrefix(h, "new feature"),
		strings.HasPrefix(h, "new"), strings.HasPrefix(h, "added"):
		return sectionFeatures
	case strings.HasPrefix(h, "bug fix"), strings.HasPrefix(h, "fix"),
		strings.HasPrefix(h, "bug"), strings.HasPrefix(h, "issue"):
		return sectionBugFixes
	case strings.HasPrefix(h, "change"), strings.HasPrefix(h, "update"):
		return sectionChanges
	default:
		return sectionNone
	}
}
