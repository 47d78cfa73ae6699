package utils

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// SplitText cuts text into consecutive pieces of chunkSize characters. The
// last piece may be shorter. A non-positive chunkSize keeps the text whole.
func SplitText(text string, chunkSize int) []string {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	if chunkSize <= 0 || len(runes) <= chunkSize {
		return []string{text}
	}

	chunks := make([]string, 0, (len(runes)+chunkSize-1)/chunkSize)
	for i := 0; i < len(runes); i += chunkSize {
		end := min(i+chunkSize, len(runes))
		chunks = append(chunks, string(runes[i:end]))
	}

	return chunks
}

// JoinSegmentText concatenates segment texts one per line.
func JoinSegmentText(segments []Segment) string {
	texts := make([]string, len(segments))
	for i, s := range segments {
		texts[i] = s.Text
	}
	return strings.TrimSpace(strings.Join(texts, "\n"))
}

func CountCharacters(text string) int {
	return utf8.RuneCountInString(text)
}

// formatCount renders n with thousands separators, e.g. 30,000.
func formatCount(n int) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}
