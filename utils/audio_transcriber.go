package utils

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/exp/slog"
)

// The transcription endpoint rejects clips shorter than 0.1 s.
const minWindowSeconds = 0.1

type TranscriberOptions struct {
	Model           string
	Mode            Mode
	SegmentDuration time.Duration
	PieceDuration   time.Duration
	WorkDir         string
	Progress        io.Writer
	Logger          *slog.Logger
}

// OpenAITranscriber sends audio to the Whisper transcription endpoint.
type OpenAITranscriber struct {
	client *openai.Client
	opts   TranscriberOptions
}

func NewOpenAITranscriber(client *openai.Client, opts TranscriberOptions) *OpenAITranscriber {
	if opts.Model == "" {
		opts.Model = openai.Whisper1
	}
	if opts.Mode == "" {
		opts.Mode = ModeWindowed
	}
	if opts.SegmentDuration <= 0 {
		opts.SegmentDuration = defaultSegmentSeconds * time.Second
	}
	if opts.PieceDuration <= 0 {
		opts.PieceDuration = defaultPieceMinutes * time.Minute
	}
	if opts.Progress == nil {
		opts.Progress = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &OpenAITranscriber{client: client, opts: opts}
}

func (t *OpenAITranscriber) TranscribeAudio(ctx context.Context, audioFile string, language string) (Transcript, error) {
	window := t.opts.SegmentDuration
	if t.opts.Mode == ModeVerbose {
		window = t.opts.PieceDuration
	}

	windows, err := SplitAudio(audioFile, window, t.opts.WorkDir)
	if err != nil {
		return Transcript{}, fmt.Errorf("failed to split audio: %w", err)
	}
	defer removeWindows(windows)

	t.opts.Logger.Debug("audio split", "file", audioFile, "windows", len(windows), "window", window, "mode", t.opts.Mode)

	bar := progressbar.NewOptions(len(windows),
		progressbar.OptionSetWriter(t.opts.Progress),
		progressbar.OptionSetDescription("Transcribing"),
		progressbar.OptionSetItsString("segment"),
		progressbar.OptionShowIts(),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(t.opts.Progress)
		}),
	)

	segments := make([]Segment, 0, len(windows))
	for _, w := range windows {
		if err := ctx.Err(); err != nil {
			return Transcript{}, err
		}

		switch t.opts.Mode {
		case ModeVerbose:
			pieceSegments, err := t.transcribePiece(ctx, w, language)
			if err != nil {
				return Transcript{}, fmt.Errorf("transcription error in piece %d: %w", w.Index, err)
			}
			for _, s := range pieceSegments {
				s.ID = len(segments)
				segments = append(segments, s)
			}
		default:
			text, err := t.decodeWindow(ctx, w, language)
			if err != nil {
				return Transcript{}, fmt.Errorf("transcription error in segment %d: %w", w.Index, err)
			}
			segments = append(segments, Segment{
				ID:    w.Index,
				Start: w.Start,
				End:   w.End,
				Text:  text,
			})
		}

		_ = bar.Add(1)
	}
	_ = bar.Finish()

	return Transcript{
		Language: language,
		Segments: segments,
		Text:     JoinSegmentText(segments),
	}, nil
}

func (t *OpenAITranscriber) decodeWindow(ctx context.Context, w AudioWindow, language string) (string, error) {
	if w.Duration() < minWindowSeconds {
		t.opts.Logger.Debug("skipping short window", "index", w.Index, "seconds", w.Duration())
		return "", nil
	}

	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.opts.Model,
		FilePath: w.Path,
		Language: language,
		Format:   openai.AudioResponseFormatJSON,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text), nil
}

// transcribePiece returns the model's segments for one piece, shifted to
// the piece's position in the source audio.
func (t *OpenAITranscriber) transcribePiece(ctx context.Context, w AudioWindow, language string) ([]Segment, error) {
	if w.Duration() < minWindowSeconds {
		return nil, nil
	}

	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.opts.Model,
		FilePath: w.Path,
		Language: language,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Segments) == 0 {
		text := strings.TrimSpace(resp.Text)
		if text == "" {
			return nil, nil
		}
		return []Segment{{Start: w.Start, End: w.End, Text: text}}, nil
	}

	segments := make([]Segment, 0, len(resp.Segments))
	for _, s := range resp.Segments {
		segments = append(segments, Segment{
			Start: w.Start + s.Start,
			End:   min(w.Start+s.End, w.End),
			Text:  strings.TrimSpace(s.Text),
		})
	}
	return segments, nil
}
