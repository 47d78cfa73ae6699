package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func mediaStem(mediaFile string) string {
	return strings.TrimSuffix(filepath.Base(mediaFile), filepath.Ext(mediaFile))
}

// SegmentsPath is where the JSON transcript of mediaFile is written, next
// to the media file itself.
func SegmentsPath(mediaFile string) string {
	return filepath.Join(filepath.Dir(mediaFile), mediaStem(mediaFile)+"_segments.json")
}

func PartPath(mediaFile string, part int) string {
	return filepath.Join(filepath.Dir(mediaFile), fmt.Sprintf("%s_part%d.txt", mediaStem(mediaFile), part))
}

func WriteTranscriptJSON(path string, transcript Transcript) error {
	if transcript.Segments == nil {
		transcript.Segments = []Segment{}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create JSON file '%s': %w", path, err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(transcript); err != nil {
		return fmt.Errorf("failed to encode JSON to '%s': %w", path, err)
	}

	return file.Close()
}

// WriteTextParts writes chunks to <stem>_part1.txt, <stem>_part2.txt, ...
// and returns the paths in order.
func WriteTextParts(mediaFile string, chunks []string) ([]string, error) {
	paths := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		path := PartPath(mediaFile, i+1)
		if err := os.WriteFile(path, []byte(chunk), 0644); err != nil {
			return paths, fmt.Errorf("failed to write text part '%s': %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
