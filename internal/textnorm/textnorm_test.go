package textnorm

import (
	"strings"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "hello world", "hello world"},
		{"simple tags", "<p>hello</p>", "hello"},
		{"nested tags", "<div><p>hello</p></div>", "hello"},
		{"tag between words", "one<br>two", "one two"},
		{"self-closing", "line<br/>break", "line break"},
		{"entities", "&amp; &lt; &gt;", "& < >"},
		{"escaped comparison text", "5 &lt; 10 &gt; 4", "5 < 10 > 4"},
		{"escaped markup stays text", "use &lt;b&gt; for bold", "use <b> for bold"},
		{"bare angle bracket", "a < b", "a < b"},
		{"newlines collapse", "a\nb\n\nc", "a b c"},
		{"tabs and runs", "a \t b   c", "a b c"},
		{"trim", "  padded  ", "padded"},
		{"diacritics survive", "café naïve søster", "café naïve søster"},
		{"nbsp", "a b", "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clean(tt.input)
			if got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"<p>hello <b>world</b></p>",
		"a\n\nb\tc   d",
		"café <i>naïve</i>",
		"&amp; &lt; &gt;",
		"5 &lt; 10 &gt; 4",
		"Tom: hi\nJane: hello",
		"# Heading\n\nbody with #Tag and https://example.com/x",
	}

	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestClean_NeverFusesWords(t *testing.T) {
	inputs := []string{
		"one<br>two",
		"<p>alpha</p><p>beta</p>",
		"x<span>y</span>z", // inner text keeps its own boundaries
	}

	for _, in := range inputs {
		got := Clean(in)
		words := strings.Fields(got)
		for _, w := range words {
			switch w {
			case "onetwo", "alphabeta":
				t.Errorf("Clean(%q) fused words: %q", in, got)
			}
		}
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"one", 1},
		{"one two three", 3},
		{"  spaced   out  ", 2},
	}

	for _, tt := range tests {
		if got := WordCount(tt.input); got != tt.want {
			t.Errorf("WordCount(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestSnippet(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if got := Snippet("", 100); got != "" {
			t.Errorf("got %q, want empty", got)
		}
	})

	t.Run("first sentence", func(t *testing.T) {
		got := Snippet("First point. Second point follows.", 100)
		if got != "First point." {
			t.Errorf("got %q, want first sentence", got)
		}
	})

	t.Run("word-safe truncation", func(t *testing.T) {
		long := strings.Repeat("word ", 100)
		got := Snippet(long, 50)
		if len(got) > 54 { // 50 + "..."
			t.Errorf("snippet too long: %d chars", len(got))
		}
		if !strings.HasSuffix(got, "...") {
			t.Errorf("expected ellipsis suffix, got %q", got)
		}
		if strings.Contains(strings.TrimSuffix(got, "..."), "wor ") {
			t.Errorf("snippet cut a word: %q", got)
		}
	})

	t.Run("strips markup", func(t *testing.T) {
		got := Snippet("<p>hello world</p>", 100)
		if got != "hello world" {
			t.Errorf("got %q", got)
		}
	})
}
