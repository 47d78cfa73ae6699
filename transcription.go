package main

import (
	"io"
	"os"

	"github.com/HugeFrog24/transcripter/utils"
	"golang.org/x/exp/slog"
)

// newProcessor wires the ffmpeg extractor, the OpenAI transcriber and the
// lingua detector into a processor for one run.
func newProcessor(cfg utils.Config, language string, jsonOnly bool, logger *slog.Logger, out io.Writer) *utils.Processor {
	transcriber := utils.NewOpenAITranscriber(cfg.NewOpenAIClient(), utils.TranscriberOptions{
		Model:           cfg.Model,
		Mode:            cfg.Mode,
		SegmentDuration: cfg.SegmentDuration,
		PieceDuration:   cfg.PieceDuration,
		WorkDir:         cfg.TmpDir,
		Progress:        os.Stderr,
		Logger:          logger,
	})

	return &utils.Processor{
		Extractor:   utils.RealAudioExtractor{FFmpegPath: cfg.FFmpegPath},
		Transcriber: transcriber,
		Detector:    utils.NewLinguaDetector(),
		Options: utils.ProcessOptions{
			Language:  language,
			ChunkSize: cfg.ChunkSize,
			JSONOnly:  jsonOnly,
			TmpDir:    cfg.TmpDir,
		},
		Out:    out,
		Logger: logger,
	}
}
