package render

import (
	"encoding/json"
	"io"

	"github.com/contentmux/contentmux/internal/model"
)

type jsonOutput struct {
	Meta        jsonMeta        `json:"meta"`
	Transcripts []model.Content `json:"transcripts,omitempty"`
	Posts       []model.Content `json:"posts,omitempty"`
	Releases    []model.Content `json:"releases,omitempty"`
}

type jsonMeta struct {
	TotalSources  int `json:"total_sources"`
	ActiveSources int `json:"active_sources"`
	ErrorSources  int `json:"error_sources"`
	TotalItems    int `json:"total_items"`
}

// JSONFormatter formats records as indented JSON.
type JSONFormatter struct{}

// NewJSON creates a JSON formatter.
func NewJSON() *JSONFormatter {
	return &JSONFormatter{}
}

// Format writes the records as JSON to w.
func (f *JSONFormatter) Format(w io.Writer, in Input) error {
	transcripts, posts, releases := groupByKind(in.Models)

	out := jsonOutput{
		Meta: jsonMeta{
			TotalSources:  in.Stats.TotalSources,
			ActiveSources: in.Stats.ActiveSources,
			ErrorSources:  in.Stats.ErrorSources,
			TotalItems:    len(in.Models),
		},
		Transcripts: transcripts,
		Posts:       posts,
		Releases:    releases,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
