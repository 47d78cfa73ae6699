package utils

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ffmpeg reports this when the input has no stream the output can take,
// which with -vn means the media has no audio.
const noStreamMarker = "does not contain any stream"

// stderrTailLines caps how much ffmpeg output ends up in an error.
const stderrTailLines = 10

// RealAudioExtractor converts any media file ffmpeg understands into the
// 16 kHz mono PCM WAV the transcriber expects.
type RealAudioExtractor struct {
	FFmpegPath string
}

func extractArgs(mediaFile, audioFile string) []string {
	return []string{
		"-nostdin", "-y",
		"-i", mediaFile,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		audioFile,
	}
}

func (e RealAudioExtractor) ExtractAudio(ctx context.Context, mediaFile, audioFile string) (bool, error) {
	ffmpeg := e.FFmpegPath
	if ffmpeg == "" {
		ffmpeg = "ffmpeg"
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, ffmpeg, extractArgs(mediaFile, audioFile)...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if strings.Contains(stderr.String(), noStreamMarker) {
			return false, nil
		}
		return false, fmt.Errorf("ffmpeg failed on '%s': %w\n%s", mediaFile, err, tailLines(stderr.String(), stderrTailLines))
	}

	return true, nil
}

func tailLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
