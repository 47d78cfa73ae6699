package utils

import (
	"fmt"
	"os/exec"
)

// EnsureDependencies verifies the external tooling a run needs before any
// work starts, so a missing binary or key fails fast with a hint.
func EnsureDependencies(cfg Config) error {
	ffmpeg := cfg.FFmpegPath
	if ffmpeg == "" {
		ffmpeg = "ffmpeg"
	}
	if _, err := exec.LookPath(ffmpeg); err != nil {
		return fmt.Errorf("%s not found, install it from https://ffmpeg.org/download.html or set TRANSCRIPTER_FFMPEG: %w", ffmpeg, err)
	}
	if cfg.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}
