package manager

import (
	"fmt"

	"github.com/contentmux/contentmux/internal/model"
	"github.com/contentmux/contentmux/internal/parse"
	"github.com/contentmux/contentmux/internal/source"
	"github.com/contentmux/contentmux/internal/textnorm"
)

// Convert routes a raw item through the parser for its declared kind
// and constructs the matching validated content record. Items of
// unknown kind cannot become a record and are rejected here, as are
// items violating a required-field invariant (a release-notes item
// without a version).
func Convert(item source.RawItem) (model.Content, error) {
	if item.Kind == model.KindUnknown {
		return model.Content{}, fmt.Errorf("item %s: no content kind declared or inferred", item.ID)
	}

	attrs := parse.Extract(item.Content, item.Kind, parse.Hint{
		Title:       item.Title,
		ContentType: item.ContentType,
		Author:      item.Author,
		Version:     item.Version,
	})

	c := model.Content{
		ID:        item.ID,
		Title:     item.Title,
		Body:      item.Content,
		Snippet:   item.Snippet,
		CreatedAt: item.CreatedAt,
		SourceURL: item.SourceURL,
		Metadata:  item.Metadata,
		Kind:      item.Kind,
	}
	if c.Title == "" {
		c.Title = attrs.Title
	}
	if c.Snippet == "" {
		c.Snippet = textnorm.Snippet(item.Content, textnorm.DefaultSnippetLen)
	}

	switch item.Kind {
	case model.KindTranscript:
		c.Transcript = &model.Transcript{
			Speakers:   attrs.Speakers,
			Duration:   attrs.EstimatedDuration,
			Type:       attrs.ContentType,
			Timestamps: attrs.Timestamps,
		}
	case model.KindBlogPost:
		c.BlogPost = &model.BlogPost{
			Author:      attrs.Author,
			Tags:        attrs.Tags,
			Category:    item.Metadata["category"],
			Headings:    attrs.Headings,
			Links:       attrs.Links,
			WordCount:   attrs.WordCount,
			ReadingTime: attrs.ReadingTime,
		}
	case model.KindReleaseNotes:
		c.ReleaseNotes = &model.ReleaseNotes{
			Version:         attrs.Version,
			ReleaseDate:     attrs.ReleaseDate,
			Changes:         attrs.Changes,
			BreakingChanges: attrs.BreakingChanges,
			Features:        attrs.Features,
			BugFixes:        attrs.BugFixes,
		}
	}

	if err := c.Validate(); err != nil {
		return model.Content{}, err
	}
	return c, nil
}
