package parse

import (
	"strings"
	"testing"
)

func TestTranscript_Speakers(t *testing.T) {
	attrs := Transcript("A: hi\nB: hello\nA: bye\n", Hint{})

	want := []string{"A", "B"}
	if len(attrs.Speakers) != len(want) {
		t.Fatalf("speakers = %v, want %v", attrs.Speakers, want)
	}
	for i, s := range want {
		if attrs.Speakers[i] != s {
			t.Errorf("speakers[%d] = %q, want %q", i, attrs.Speakers[i], s)
		}
	}
}

func TestTranscript_SpeakerNames(t *testing.T) {
	raw := "Dr. Smith: welcome\nMary Jane: thanks\nDr. Smith: let's start"
	attrs := Transcript(raw, Hint{})

	if len(attrs.Speakers) != 2 {
		t.Fatalf("speakers = %v, want 2 distinct", attrs.Speakers)
	}
	if attrs.Speakers[0] != "Dr. Smith" || attrs.Speakers[1] != "Mary Jane" {
		t.Errorf("speakers = %v", attrs.Speakers)
	}
}

func TestTranscript_OverlongLabelIgnored(t *testing.T) {
	label := strings.Repeat("x", 60)
	attrs := Transcript(label+": too long to be a speaker", Hint{})
	if len(attrs.Speakers) != 0 {
		t.Errorf("speakers = %v, want none", attrs.Speakers)
	}
}

func TestTranscript_Timestamps(t *testing.T) {
	attrs := Transcript("[00:30] A: let's begin", Hint{})

	text, ok := attrs.Timestamps["00:30"]
	if !ok {
		t.Fatalf("timestamps = %v, want key 00:30", attrs.Timestamps)
	}
	if !strings.Contains(text, "let's begin") {
		t.Errorf("timestamp text = %q, want it to contain %q", text, "let's begin")
	}
	// The marked turn still yields its speaker.
	if len(attrs.Speakers) != 1 || attrs.Speakers[0] != "A" {
		t.Errorf("speakers = %v, want [A]", attrs.Speakers)
	}
}

func TestTranscript_TimestampDialects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		key  string
	}{
		{"bracket mm:ss", "[05:12] intro", "05:12"},
		{"bracket hh:mm:ss", "[1:02:33] closing", "1:02:33"},
		{"paren", "(12:05) aside", "12:05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := Transcript(tt.raw, Hint{})
			if _, ok := attrs.Timestamps[tt.key]; !ok {
				t.Errorf("timestamps = %v, want key %q", attrs.Timestamps, tt.key)
			}
		})
	}
}

func TestTranscript_ContentType(t *testing.T) {
	if got := Transcript("A: hi", Hint{}).ContentType; got != "podcast" {
		t.Errorf("default content type = %q, want podcast", got)
	}
	if got := Transcript("A: hi", Hint{ContentType: "meeting"}).ContentType; got != "meeting" {
		t.Errorf("content type = %q, want meeting", got)
	}
}

func TestTranscript_EstimatedDuration(t *testing.T) {
	raw := "Host: " + strings.Repeat("word ", 300)
	attrs := Transcript(raw, Hint{})
	if attrs.EstimatedDuration != "2:00" {
		t.Errorf("estimated duration = %q, want 2:00", attrs.EstimatedDuration)
	}
}

func TestTranscript_MalformedInput(t *testing.T) {
	attrs := Transcript("no structure here\njust prose", Hint{})
	if len(attrs.Speakers) != 0 || len(attrs.Timestamps) != 0 {
		t.Errorf("expected empty extraction, got speakers=%v timestamps=%v",
			attrs.Speakers, attrs.Timestamps)
	}
	if attrs.CleanedContent == "" || attrs.WordCount == 0 {
		t.Error("cleaned content and word count must always be set")
	}
}
