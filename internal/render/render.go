// Package render formats fetched content records for the CLI.
package render

import (
	"io"

	"github.com/contentmux/contentmux/internal/manager"
	"github.com/contentmux/contentmux/internal/model"
)

// Input is the full input for a formatter.
type Input struct {
	Models []model.Content
	Stats  manager.Stats
}

// Formatter writes formatted output to w.
type Formatter interface {
	Format(w io.Writer, in Input) error
}

// groupByKind splits models by variant tag, preserving fetch order
// within each group.
func groupByKind(models []model.Content) (transcripts, posts, releases []model.Content) {
	for _, c := range models {
		switch c.Kind {
		case model.KindTranscript:
			transcripts = append(transcripts, c)
		case model.KindBlogPost:
			posts = append(posts, c)
		case model.KindReleaseNotes:
			releases = append(releases, c)
		}
	}
	return transcripts, posts, releases
}
