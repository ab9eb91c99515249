package parse

import (
	"testing"

	"github.com/contentmux/contentmux/internal/model"
)

func TestExtract_Dispatch(t *testing.T) {
	t.Run("transcript", func(t *testing.T) {
		attrs := Extract("A: hi\nB: hello", model.KindTranscript, Hint{})
		if len(attrs.Speakers) != 2 {
			t.Errorf("speakers = %v", attrs.Speakers)
		}
	})

	t.Run("blog post", func(t *testing.T) {
		attrs := Extract("# Title\nbody", model.KindBlogPost, Hint{})
		if len(attrs.Headings) != 1 {
			t.Errorf("headings = %v", attrs.Headings)
		}
	})

	t.Run("release notes", func(t *testing.T) {
		attrs := Extract("## Features\n- one", model.KindReleaseNotes, Hint{Version: "1.0.0"})
		if len(attrs.Features) != 1 {
			t.Errorf("features = %v", attrs.Features)
		}
	})

	t.Run("unknown falls back to generic", func(t *testing.T) {
		attrs := Extract("A: hi\n# heading", model.KindUnknown, Hint{})
		if len(attrs.Speakers) != 0 || len(attrs.Headings) != 0 {
			t.Error("generic parser must not extract structured fields")
		}
		if attrs.CleanedContent == "" || attrs.WordCount == 0 {
			t.Error("generic parser must set cleaned content and word count")
		}
	})

	t.Run("unrecognized tag degrades", func(t *testing.T) {
		attrs := Extract("some text", model.Kind("email"), Hint{})
		if attrs.CleanedContent != "some text" {
			t.Errorf("cleaned = %q", attrs.CleanedContent)
		}
	})
}

func TestGeneric_NeverFails(t *testing.T) {
	inputs := []string{"", "   ", "<broken <tags", "\x00control\x01chars"}
	for _, in := range inputs {
		attrs := Generic(in)
		if attrs.WordCount < 0 {
			t.Errorf("word count negative for %q", in)
		}
	}
}
