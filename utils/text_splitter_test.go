package utils

import (
	"strings"
	"testing"
)

func TestSplitText(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		chunkSize int
		want      []string
	}{
		{name: "empty", text: "", chunkSize: 5, want: nil},
		{name: "shorter than chunk", text: "abc", chunkSize: 5, want: []string{"abc"}},
		{name: "exact multiple", text: "abcdef", chunkSize: 3, want: []string{"abc", "def"}},
		{name: "remainder", text: "abcdefg", chunkSize: 3, want: []string{"abc", "def", "g"}},
		{name: "multibyte characters", text: "perché così", chunkSize: 4, want: []string{"perc", "hé c", "osì"}},
		{name: "non-positive size", text: "abc", chunkSize: 0, want: []string{"abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitText(tt.text, tt.chunkSize)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d chunks, got %d: %q", len(tt.want), len(got), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Chunk %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestSplitTextRejoins(t *testing.T) {
	text := strings.Repeat("città ", 1234)
	chunks := SplitText(text, 100)
	if strings.Join(chunks, "") != text {
		t.Error("Joined chunks do not match the original text")
	}
	for i, chunk := range chunks[:len(chunks)-1] {
		if n := CountCharacters(chunk); n != 100 {
			t.Errorf("Chunk %d has %d characters, expected 100", i, n)
		}
	}
}

func TestJoinSegmentText(t *testing.T) {
	segments := []Segment{
		{ID: 0, Text: ""},
		{ID: 1, Text: "first"},
		{ID: 2, Text: "second"},
		{ID: 3, Text: ""},
	}
	if got := JoinSegmentText(segments); got != "first\nsecond" {
		t.Errorf("Expected %q, got %q", "first\nsecond", got)
	}
	if got := JoinSegmentText(nil); got != "" {
		t.Errorf("Expected empty text, got %q", got)
	}
}

func TestFormatCount(t *testing.T) {
	if got := formatCount(1234567); got != "1,234,567" {
		t.Errorf("Expected 1,234,567, got %s", got)
	}
	if got := formatCount(42); got != "42" {
		t.Errorf("Expected 42, got %s", got)
	}
}
