package utils

import "errors"

var (
	ErrMissingAPIKey   = errors.New("OPENAI_API_KEY environment variable is not set")
	ErrNoAudio         = errors.New("media file has no audio stream")
	ErrInvalidMode     = errors.New("invalid transcription mode")
	ErrInvalidLanguage = errors.New("invalid language")
)

// Segment is one timed span of the transcript. Start and End are seconds
// from the beginning of the media file.
type Segment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type Transcript struct {
	Language string    `json:"language"`
	Segments []Segment `json:"segments"`
	Text     string    `json:"text"`
}
