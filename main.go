package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/HugeFrog24/transcripter/utils"
	"github.com/joho/godotenv"
)

const usage = "Usage: transcripter <media_file_or_directory> [--json-only]"

func main() {
	// Load environment variables from .env file if there is one
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// run executes one transcription run. Every failure is returned, so main
// owns the only exit path.
func run(args []string, stdin io.Reader, stdout io.Writer) error {
	mediaPath, jsonOnly, err := parseArgs(args)
	if err != nil {
		return errors.New(usage)
	}

	info, err := os.Stat(mediaPath)
	if err != nil {
		return fmt.Errorf("File not found: %s", mediaPath)
	}

	cfg, err := utils.LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger := utils.NewLogger(os.Stderr, cfg.LogLevel)

	if err := utils.EnsureDependencies(cfg); err != nil {
		return fmt.Errorf("missing dependency: %w", err)
	}

	// Create and clean the temp directory at startup
	if err := os.MkdirAll(cfg.TmpDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", cfg.TmpDir, err)
	}
	cleanupTmpDir(cfg.TmpDir)
	defer cleanupTmpDir(cfg.TmpDir)

	language := utils.ResolveLanguage(cfg.Language, stdin, stdout)

	// Create a context that is cancelled on interrupt signal
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(c)
	go func() {
		select {
		case <-c:
			fmt.Fprintln(stdout, "\nReceived interrupt signal, cleaning up...")
			cancel()
			cleanupTmpDir(cfg.TmpDir)
			os.Exit(1)
		case <-ctx.Done():
		}
	}()

	fmt.Fprintf(stdout, "\nUsing model: %s (%s mode)\n", cfg.Model, cfg.Mode)
	processor := newProcessor(cfg, language, jsonOnly, logger, stdout)

	if info.IsDir() {
		results, err := processor.ProcessDirectory(ctx, mediaPath)
		if err != nil {
			return fmt.Errorf("failed to transcribe directory %s: %w", mediaPath, err)
		}
		logger.Info("directory processed", "dir", mediaPath, "files", len(results))
		return nil
	}

	if _, err := processor.ProcessMedia(ctx, mediaPath); err != nil {
		return fmt.Errorf("failed to transcribe %s: %w", mediaPath, err)
	}
	return nil
}

// parseArgs returns the media path and whether --json-only was given. The
// flag may appear anywhere; the first other argument is the path.
func parseArgs(args []string) (string, bool, error) {
	var mediaPath string
	jsonOnly := false
	for _, arg := range args {
		if arg == "--json-only" {
			jsonOnly = true
			continue
		}
		if mediaPath == "" {
			mediaPath = arg
		}
	}
	if mediaPath == "" {
		return "", false, errors.New("missing media path")
	}
	return mediaPath, jsonOnly, nil
}

func cleanupTmpDir(tmpDir string) {
	files, err := os.ReadDir(tmpDir)
	if err != nil {
		log.Printf("Failed to read %s directory: %v", tmpDir, err)
		return
	}

	for _, file := range files {
		err := os.RemoveAll(filepath.Join(tmpDir, file.Name()))
		if err != nil {
			log.Printf("Failed to remove file %s: %v", file.Name(), err)
		}
	}
}
