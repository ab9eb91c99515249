// Package model defines the typed content records produced by the
// ingestion engine. Every record is one of a closed set of kinds; the
// kind tag and exactly one matching payload travel together.
package model

import (
	"errors"
	"fmt"
	"time"
)

// Kind identifies the shape of a content record.
type Kind string

const (
	KindTranscript   Kind = "transcript"
	KindBlogPost     Kind = "blog_post"
	KindReleaseNotes Kind = "release_notes"
	KindUnknown      Kind = "unknown"
)

// ParseKind maps a declared kind tag to a Kind. Unrecognized tags
// degrade to KindUnknown rather than erroring.
func ParseKind(s string) Kind {
	switch Kind(s) {
	case KindTranscript, KindBlogPost, KindReleaseNotes:
		return Kind(s)
	default:
		return KindUnknown
	}
}

var (
	ErrMissingID      = errors.New("model: id is required")
	ErrMissingTitle   = errors.New("model: title is required")
	ErrMissingBody    = errors.New("model: content is required")
	ErrMissingSnippet = errors.New("model: snippet is required")
	ErrMissingVersion = errors.New("model: release notes require a version")
	ErrKindMismatch   = errors.New("model: kind does not match payload")
)

// Content is the validated record produced after parsing. Base fields
// are always present; exactly one of the kind payloads is non-nil and
// matches Kind. Records are not mutated after construction.
type Content struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Body      string            `json:"content"`
	Snippet   string            `json:"snippet"`
	CreatedAt *time.Time        `json:"created_at,omitempty"`
	SourceURL string            `json:"source_url,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`

	Kind         Kind          `json:"kind"`
	Transcript   *Transcript   `json:"transcript,omitempty"`
	BlogPost     *BlogPost     `json:"blog_post,omitempty"`
	ReleaseNotes *ReleaseNotes `json:"release_notes,omitempty"`
}

// Transcript holds fields specific to spoken-word content.
type Transcript struct {
	Speakers   []string          `json:"speakers,omitempty"`
	Duration   string            `json:"duration,omitempty"`
	Type       string            `json:"transcript_type"` // podcast, video, meeting, interview
	Timestamps map[string]string `json:"timestamps,omitempty"`
}

// BlogPost holds fields specific to articles and posts.
type BlogPost struct {
	Author      string   `json:"author,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Category    string   `json:"category,omitempty"`
	Headings    []string `json:"headings,omitempty"`
	Links       []string `json:"links,omitempty"`
	WordCount   int      `json:"word_count,omitempty"`
	ReadingTime string   `json:"reading_time,omitempty"`
}

// ReleaseNotes holds fields specific to software release notes.
type ReleaseNotes struct {
	Version         string   `json:"version"`
	ReleaseDate     string   `json:"release_date,omitempty"`
	Changes         []string `json:"changes,omitempty"`
	BreakingChanges []string `json:"breaking_changes,omitempty"`
	Features        []string `json:"features,omitempty"`
	BugFixes        []string `json:"bug_fixes,omitempty"`
}

// Validate checks the record's required-field invariants: base fields
// present, kind tag matching exactly one payload, and the per-kind
// requirements (release notes must carry a version).
func (c *Content) Validate() error {
	if c.ID == "" {
		return ErrMissingID
	}
	if c.Title == "" {
		return ErrMissingTitle
	}
	if c.Body == "" {
		return ErrMissingBody
	}
	if c.Snippet == "" {
		return ErrMissingSnippet
	}

	payloads := 0
	if c.Transcript != nil {
		payloads++
		if c.Kind != KindTranscript {
			return fmt.Errorf("%w: transcript payload with kind %q", ErrKindMismatch, c.Kind)
		}
	}
	if c.BlogPost != nil {
		payloads++
		if c.Kind != KindBlogPost {
			return fmt.Errorf("%w: blog post payload with kind %q", ErrKindMismatch, c.Kind)
		}
	}
	if c.ReleaseNotes != nil {
		payloads++
		if c.Kind != KindReleaseNotes {
			return fmt.Errorf("%w: release notes payload with kind %q", ErrKindMismatch, c.Kind)
		}
		if c.ReleaseNotes.Version == "" {
			return ErrMissingVersion
		}
	}
	if payloads != 1 {
		return fmt.Errorf("%w: kind %q with %d payloads", ErrKindMismatch, c.Kind, payloads)
	}
	return nil
}
