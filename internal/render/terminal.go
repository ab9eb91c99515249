package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/contentmux/contentmux/internal/model"
)

// TerminalFormatter writes records for terminal output.
type TerminalFormatter struct {
	color bool
}

// NewTerminal creates a terminal formatter. Set color=true for ANSI colors.
func NewTerminal(color bool) *TerminalFormatter {
	return &TerminalFormatter{color: color}
}

// Format writes the fetched records to w grouped by kind.
func (f *TerminalFormatter) Format(w io.Writer, in Input) error {
	header := fmt.Sprintf("contentmux: %d sources (%d active, %d error), %d items",
		in.Stats.TotalSources, in.Stats.ActiveSources, in.Stats.ErrorSources, len(in.Models))
	fmt.Fprintln(w, f.bold(header))
	fmt.Fprintln(w)

	if len(in.Models) == 0 {
		fmt.Fprintln(w, "No content found.")
		return nil
	}

	transcripts, posts, releases := groupByKind(in.Models)
	f.section(w, "Transcripts", transcripts)
	f.section(w, "Posts", posts)
	f.section(w, "Releases", releases)
	return nil
}

func (f *TerminalFormatter) section(w io.Writer, title string, models []model.Content) {
	if len(models) == 0 {
		return
	}
	fmt.Fprintln(w, f.bold(fmt.Sprintf("--- %s (%d) ---", title, len(models))))
	for _, c := range models {
		fmt.Fprintf(w, "  %s\n", f.bold(c.Title))
		fmt.Fprintf(w, "    %s\n", f.dim(c.Snippet))
		if detail := f.detail(c); detail != "" {
			fmt.Fprintf(w, "    %s\n", detail)
		}
		if c.SourceURL != "" {
			fmt.Fprintf(w, "    %s\n", f.dim(c.SourceURL))
		}
	}
	fmt.Fprintln(w)
}

// detail renders the one-line kind-specific summary under each item.
func (f *TerminalFormatter) detail(c model.Content) string {
	switch c.Kind {
	case model.KindTranscript:
		t := c.Transcript
		parts := []string{t.Type}
		if len(t.Speakers) > 0 {
			parts = append(parts, "speakers: "+strings.Join(t.Speakers, ", "))
		}
		if t.Duration != "" {
			parts = append(parts, "~"+t.Duration)
		}
		return strings.Join(parts, " | ")
	case model.KindBlogPost:
		p := c.BlogPost
		parts := []string{fmt.Sprintf("%d words, %s", p.WordCount, p.ReadingTime)}
		if len(p.Tags) > 0 {
			parts = append(parts, "#"+strings.Join(p.Tags, " #"))
		}
		return strings.Join(parts, " | ")
	case model.KindReleaseNotes:
		r := c.ReleaseNotes
		return fmt.Sprintf("v%s: %d features, %d fixes, %d breaking",
			strings.TrimPrefix(r.Version, "v"),
			len(r.Features), len(r.BugFixes), len(r.BreakingChanges))
	}
	return ""
}

func (f *TerminalFormatter) bold(s string) string {
	if !f.color {
		return s
	}
	return "\033[1m" + s + "\033[0m"
}

func (f *TerminalFormatter) dim(s string) string {
	if !f.color {
		return s
	}
	return "\033[2m" + s + "\033[0m"
}
