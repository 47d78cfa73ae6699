package utils

import (
	"context"
)

type MockAudioExtractor struct {
	ExtractAudioFunc func(ctx context.Context, mediaFile, audioFile string) (bool, error)
}

func (m *MockAudioExtractor) ExtractAudio(ctx context.Context, mediaFile, audioFile string) (bool, error) {
	return m.ExtractAudioFunc(ctx, mediaFile, audioFile)
}

type MockAudioTranscriber struct {
	TranscribeAudioFunc func(ctx context.Context, audioFile string, language string) (Transcript, error)
}

func (m *MockAudioTranscriber) TranscribeAudio(ctx context.Context, audioFile string, language string) (Transcript, error) {
	return m.TranscribeAudioFunc(ctx, audioFile, language)
}

type MockLanguageDetector struct {
	DetectLanguageFunc func(text string) string
}

func (m *MockLanguageDetector) DetectLanguage(text string) string {
	return m.DetectLanguageFunc(text)
}
