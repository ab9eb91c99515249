package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTranscript() Content {
	return Content{
		ID:         "t-1",
		Title:      "Episode 1",
		Body:       "A: hi",
		Snippet:    "A: hi",
		Kind:       KindTranscript,
		Transcript: &Transcript{Type: "podcast", Speakers: []string{"A"}},
	}
}

func TestParseKind(t *testing.T) {
	assert.Equal(t, KindTranscript, ParseKind("transcript"))
	assert.Equal(t, KindBlogPost, ParseKind("blog_post"))
	assert.Equal(t, KindReleaseNotes, ParseKind("release_notes"))
	assert.Equal(t, KindUnknown, ParseKind("email"))
	assert.Equal(t, KindUnknown, ParseKind(""))
}

func TestContentValidate(t *testing.T) {
	t.Run("valid transcript", func(t *testing.T) {
		c := validTranscript()
		require.NoError(t, c.Validate())
	})

	t.Run("missing base fields", func(t *testing.T) {
		for _, mutate := range []func(*Content){
			func(c *Content) { c.ID = "" },
			func(c *Content) { c.Title = "" },
			func(c *Content) { c.Body = "" },
			func(c *Content) { c.Snippet = "" },
		} {
			c := validTranscript()
			mutate(&c)
			assert.Error(t, c.Validate())
		}
	})

	t.Run("release notes require version", func(t *testing.T) {
		c := Content{
			ID: "r-1", Title: "v2", Body: "notes", Snippet: "notes",
			Kind:         KindReleaseNotes,
			ReleaseNotes: &ReleaseNotes{},
		}
		assert.ErrorIs(t, c.Validate(), ErrMissingVersion)

		c.ReleaseNotes.Version = "2.0.0"
		assert.NoError(t, c.Validate())
	})

	t.Run("kind must match payload", func(t *testing.T) {
		c := validTranscript()
		c.Kind = KindBlogPost
		assert.ErrorIs(t, c.Validate(), ErrKindMismatch)
	})

	t.Run("exactly one payload", func(t *testing.T) {
		c := validTranscript()
		c.BlogPost = &BlogPost{}
		assert.Error(t, c.Validate())

		c = validTranscript()
		c.Transcript = nil
		assert.ErrorIs(t, c.Validate(), ErrKindMismatch)
	})
}
