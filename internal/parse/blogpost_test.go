package parse

import (
	"reflect"
	"strings"
	"testing"
)

func TestBlogPost_Headings(t *testing.T) {
	raw := "# Title\n\nsome intro\n\n## Sub\n\nmore text"
	attrs := BlogPost(raw, Hint{})

	want := []string{"Title", "Sub"}
	if !reflect.DeepEqual(attrs.Headings, want) {
		t.Errorf("headings = %v, want %v", attrs.Headings, want)
	}
}

func TestBlogPost_TitleFallback(t *testing.T) {
	t.Run("hint wins", func(t *testing.T) {
		attrs := BlogPost("# Doc Title\nbody", Hint{Title: "Known Title"})
		if attrs.Title != "Known Title" {
			t.Errorf("title = %q", attrs.Title)
		}
	})

	t.Run("first heading", func(t *testing.T) {
		attrs := BlogPost("# Doc Title\nbody", Hint{})
		if attrs.Title != "Doc Title" {
			t.Errorf("title = %q", attrs.Title)
		}
	})

	t.Run("first plausible line", func(t *testing.T) {
		attrs := BlogPost("An opening line of decent length\nbody", Hint{})
		if attrs.Title != "An opening line of decent length" {
			t.Errorf("title = %q", attrs.Title)
		}
	})
}

func TestBlogPost_Tags(t *testing.T) {
	raw := "# Launch Notes\n\nWe are exploring #AI and #Marketing today.\nMore on #AI tomorrow."
	attrs := BlogPost(raw, Hint{})

	want := []string{"AI", "Marketing"}
	if !reflect.DeepEqual(attrs.Tags, want) {
		t.Errorf("tags = %v, want %v (deduped, first occurrence order)", attrs.Tags, want)
	}
}

func TestBlogPost_HeadingMarkersAreNotTags(t *testing.T) {
	attrs := BlogPost("# Title\n## Sub\nbody without tags", Hint{})
	if len(attrs.Tags) != 0 {
		t.Errorf("tags = %v, want none", attrs.Tags)
	}
}

func TestBlogPost_Links(t *testing.T) {
	raw := "See https://example.com/a and http://example.org/b?x=1 for details."
	attrs := BlogPost(raw, Hint{})

	want := []string{"https://example.com/a", "http://example.org/b?x=1"}
	if !reflect.DeepEqual(attrs.Links, want) {
		t.Errorf("links = %v, want %v", attrs.Links, want)
	}
}

func TestBlogPost_ReadingTime(t *testing.T) {
	tests := []struct {
		name  string
		words int
		want  string
	}{
		{"minimum one minute", 5, "1 min"},
		{"exact page", 200, "1 min"},
		{"rounds up", 201, "2 min"},
		{"longer", 1000, "5 min"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := strings.TrimSpace(strings.Repeat("word ", tt.words))
			attrs := BlogPost(raw, Hint{})
			if attrs.WordCount != tt.words {
				t.Fatalf("word count = %d, want %d", attrs.WordCount, tt.words)
			}
			if attrs.ReadingTime != tt.want {
				t.Errorf("reading time = %q, want %q", attrs.ReadingTime, tt.want)
			}
		})
	}
}

func TestBlogPost_AuthorFromHint(t *testing.T) {
	attrs := BlogPost("body", Hint{Author: "Jordan"})
	if attrs.Author != "Jordan" {
		t.Errorf("author = %q", attrs.Author)
	}
}
