// Package parse turns raw item text into structured attributes. One
// parser per content kind; all parsers are pure, total functions that
// yield empty fields instead of errors on malformed input.
package parse

import (
	"strings"

	"github.com/contentmux/contentmux/internal/model"
	"github.com/contentmux/contentmux/internal/textnorm"
)

// Hint carries optional fields declared by the source alongside the
// raw text: a known title, transcript subtype, author, or version.
type Hint struct {
	Title       string
	ContentType string
	Author      string
	Version     string
}

// Attributes is the typed result of parsing. CleanedContent and
// WordCount are always set; kind-specific fields are set by the
// parser that produced them and zero otherwise.
type Attributes struct {
	CleanedContent string
	WordCount      int
	Title          string

	// Transcript
	Speakers          []string
	Timestamps        map[string]string
	ContentType       string
	EstimatedDuration string

	// Blog post
	Headings    []string
	Tags        []string
	Links       []string
	Author      string
	ReadingTime string

	// Release notes
	Version         string
	ReleaseDate     string
	Features        []string
	BugFixes        []string
	BreakingChanges []string
	Changes         []string
}

// Extract routes raw text to the parser for the declared kind.
// Unknown or unrecognized kinds fall through to the generic parser;
// Extract never fails.
func Extract(raw string, kind model.Kind, hint Hint) Attributes {
	switch kind {
	case model.KindTranscript:
		return Transcript(raw, hint)
	case model.KindBlogPost:
		return BlogPost(raw, hint)
	case model.KindReleaseNotes:
		return ReleaseNotes(raw, hint)
	default:
		return Generic(raw)
	}
}

// Generic is the fallback parser: cleaned text and a word count only.
func Generic(raw string) Attributes {
	cleaned := textnorm.Clean(raw)
	return Attributes{
		CleanedContent: cleaned,
		WordCount:      textnorm.WordCount(cleaned),
	}
}

// cleanLines splits raw text into lines and cleans each one
// individually, preserving the line structure the parsers anchor on.
// Blank lines collapse to empty strings.
func cleanLines(raw string) []string {
	lines := strings.Split(raw, "\n")
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = textnorm.Clean(line)
	}
	return out
}
