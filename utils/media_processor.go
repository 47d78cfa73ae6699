package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

var mediaExtensions = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".mov":  true,
	".avi":  true,
	".webm": true,
	".mp3":  true,
	".wav":  true,
	".m4a":  true,
	".flac": true,
	".ogg":  true,
}

func IsMediaFile(path string) bool {
	return mediaExtensions[strings.ToLower(filepath.Ext(path))]
}

type ProcessOptions struct {
	// Language is an ISO 639-1 code or LanguageAuto.
	Language  string
	ChunkSize int
	JSONOnly  bool
	TmpDir    string
}

type MediaResult struct {
	MediaFile  string
	JSONFile   string
	PartFiles  []string
	Transcript Transcript
	Skipped    bool
}

type Processor struct {
	Extractor   AudioExtractor
	Transcriber AudioTranscriber
	Detector    LanguageDetector
	Options     ProcessOptions
	Out         io.Writer
	Logger      *slog.Logger
}

func (p *Processor) out() io.Writer {
	if p.Out == nil {
		return io.Discard
	}
	return p.Out
}

func (p *Processor) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return p.Logger
}

// ProcessMedia transcribes one media file and writes its JSON transcript
// and, unless JSONOnly is set, the text parts next to it.
func (p *Processor) ProcessMedia(ctx context.Context, mediaFile string) (MediaResult, error) {
	out := p.out()
	logger := p.logger().With("file", mediaFile)
	result := MediaResult{MediaFile: mediaFile}

	if err := os.MkdirAll(p.Options.TmpDir, os.ModePerm); err != nil {
		return result, fmt.Errorf("failed to create temp directory: %w", err)
	}
	audioFile := filepath.Join(p.Options.TmpDir, fmt.Sprintf("%s_%s.wav", mediaStem(mediaFile), uuid.NewString()))
	defer os.Remove(audioFile)

	fmt.Fprintf(out, "Loading audio from %s ...\n", filepath.Base(mediaFile))
	hasAudio, err := p.Extractor.ExtractAudio(ctx, mediaFile, audioFile)
	if err != nil {
		return result, fmt.Errorf("failed to extract audio: %w", err)
	}
	if !hasAudio {
		return result, fmt.Errorf("%s: %w", mediaFile, ErrNoAudio)
	}

	language := p.Options.Language
	requested := language
	if language == LanguageAuto {
		requested = ""
	}

	fmt.Fprintf(out, "Transcribing %s ... please wait.\n", filepath.Base(mediaFile))
	transcript, err := p.Transcriber.TranscribeAudio(ctx, audioFile, requested)
	if err != nil {
		return result, fmt.Errorf("failed to transcribe audio: %w", err)
	}
	transcript.Text = JoinSegmentText(transcript.Segments)

	detected := ""
	if p.Detector != nil && transcript.Text != "" {
		detected = p.Detector.DetectLanguage(transcript.Text)
		logger.Info("detected transcription language", "language", detected)
	}
	if language == LanguageAuto {
		if detected != "" {
			transcript.Language = detected
			fmt.Fprintf(out, "Detected language: %s\n", detected)
		} else {
			transcript.Language = LanguageEnglish
			fmt.Fprintln(out, "Could not detect language. Defaulting to English.")
		}
	} else {
		transcript.Language = language
		if detected != "" && detected != language {
			logger.Warn("transcript language differs from the requested one", "requested", language, "detected", detected)
		}
	}
	result.Transcript = transcript

	jsonPath := SegmentsPath(mediaFile)
	if err := WriteTranscriptJSON(jsonPath, transcript); err != nil {
		return result, err
	}
	result.JSONFile = jsonPath
	fmt.Fprintf(out, "\nJSON segments saved to: %s\n", jsonPath)

	if p.Options.JSONOnly {
		fmt.Fprintln(out, "JSON-only mode enabled. Skipping text file generation.")
		return result, nil
	}

	chunks := SplitText(transcript.Text, p.Options.ChunkSize)
	parts, err := WriteTextParts(mediaFile, chunks)
	result.PartFiles = parts
	if err != nil {
		return result, err
	}

	p.printSummary(result)
	return result, nil
}

func (p *Processor) printSummary(result MediaResult) {
	out := p.out()
	fmt.Fprintln(out, "\nTranscription completed successfully!")
	fmt.Fprintf(out, "Total characters: %s\n", formatCount(CountCharacters(result.Transcript.Text)))
	fmt.Fprintf(out, "Files created (%d parts of ~%d chars):\n", len(result.PartFiles), p.Options.ChunkSize)
	for _, part := range result.PartFiles {
		fmt.Fprintf(out, "  - %s\n", filepath.Base(part))
	}
	fmt.Fprintf(out, "JSON file: %s\n", filepath.Base(result.JSONFile))
}

// ProcessDirectory transcribes every media file under dir. Files that
// already have a JSON transcript, files without audio, and files whose
// outputs would collide with an earlier file's are skipped.
func (p *Processor) ProcessDirectory(ctx context.Context, dir string) ([]MediaResult, error) {
	logger := p.logger()

	mediaFiles, err := p.findMedia(dir)
	if err != nil {
		return nil, err
	}

	var results []MediaResult
	owners := make(map[string]string, len(mediaFiles))
	for _, path := range mediaFiles {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		jsonPath := SegmentsPath(path)
		if owner, taken := owners[jsonPath]; taken {
			logger.Warn("media files share an output name, skipping", "file", path, "conflicts_with", owner, "output", jsonPath)
			results = append(results, MediaResult{MediaFile: path, Skipped: true})
			continue
		}
		owners[jsonPath] = path

		if _, err := os.Stat(jsonPath); err == nil {
			logger.Info("already transcribed, skipping", "file", path)
			results = append(results, MediaResult{MediaFile: path, JSONFile: jsonPath, Skipped: true})
			continue
		}

		result, err := p.ProcessMedia(ctx, path)
		if errors.Is(err, ErrNoAudio) {
			logger.Info("no audio stream, skipping", "file", path)
			result.Skipped = true
			results = append(results, result)
			continue
		}
		if err != nil {
			return results, fmt.Errorf("failed to process media file '%s': %w", path, err)
		}
		results = append(results, result)
	}

	return results, nil
}

// findMedia lists media files under dir in lexical order, leaving out the
// temp directory.
func (p *Processor) findMedia(dir string) ([]string, error) {
	tmpDir, _ := filepath.Abs(p.Options.TmpDir)

	var mediaFiles []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if abs, _ := filepath.Abs(path); abs == tmpDir {
				return filepath.SkipDir
			}
			return nil
		}
		if IsMediaFile(path) {
			mediaFiles = append(mediaFiles, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mediaFiles, nil
}
