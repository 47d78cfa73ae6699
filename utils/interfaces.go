package utils

import (
	"context"
)

type AudioExtractor interface {
	ExtractAudio(ctx context.Context, mediaFile, audioFile string) (bool, error)
}

// AudioTranscriber turns a 16 kHz mono WAV file into a timed transcript.
// An empty language lets the model pick the language itself.
type AudioTranscriber interface {
	TranscribeAudio(ctx context.Context, audioFile string, language string) (Transcript, error)
}

type LanguageDetector interface {
	DetectLanguage(text string) string
}
