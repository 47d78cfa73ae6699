package utils

import (
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/spf13/viper"
)

type Mode string

const (
	// ModeWindowed decodes fixed windows separately, one segment per window.
	ModeWindowed Mode = "windowed"
	// ModeVerbose sends large pieces and keeps the model's own segments.
	ModeVerbose Mode = "verbose"
)

const (
	defaultChunkSize      = 30000
	defaultSegmentSeconds = 30
	defaultPieceMinutes   = 10
)

type Config struct {
	APIKey          string
	BaseURL         string
	Model           string
	Mode            Mode
	Language        string
	ChunkSize       int
	SegmentDuration time.Duration
	PieceDuration   time.Duration
	TmpDir          string
	FFmpegPath      string
	LogLevel        string
}

// LoadConfig resolves settings from the environment. Everything except the
// OpenAI variables is read from TRANSCRIPTER_* keys.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("transcripter")
	v.AutomaticEnv()

	v.SetDefault("model", openai.Whisper1)
	v.SetDefault("mode", string(ModeWindowed))
	v.SetDefault("language", "")
	v.SetDefault("chunk_size", defaultChunkSize)
	v.SetDefault("segment_seconds", defaultSegmentSeconds)
	v.SetDefault("piece_minutes", defaultPieceMinutes)
	v.SetDefault("tmp_dir", ".tmp")
	v.SetDefault("ffmpeg", "ffmpeg")
	v.SetDefault("log_level", "info")

	if err := v.BindEnv("api_key", "OPENAI_API_KEY"); err != nil {
		return Config{}, fmt.Errorf("failed to bind OPENAI_API_KEY: %w", err)
	}
	if err := v.BindEnv("base_url", "OPENAI_BASE_URL"); err != nil {
		return Config{}, fmt.Errorf("failed to bind OPENAI_BASE_URL: %w", err)
	}

	cfg := Config{
		APIKey:          v.GetString("api_key"),
		BaseURL:         v.GetString("base_url"),
		Model:           v.GetString("model"),
		Mode:            Mode(strings.ToLower(v.GetString("mode"))),
		Language:        strings.ToLower(strings.TrimSpace(v.GetString("language"))),
		ChunkSize:       v.GetInt("chunk_size"),
		SegmentDuration: time.Duration(v.GetInt("segment_seconds")) * time.Second,
		PieceDuration:   time.Duration(v.GetInt("piece_minutes")) * time.Minute,
		TmpDir:          v.GetString("tmp_dir"),
		FFmpegPath:      v.GetString("ffmpeg"),
		LogLevel:        v.GetString("log_level"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Mode {
	case ModeWindowed, ModeVerbose:
	default:
		return fmt.Errorf("%w %q, expected %q or %q", ErrInvalidMode, c.Mode, ModeWindowed, ModeVerbose)
	}
	if !ValidLanguage(c.Language) {
		return fmt.Errorf("%w %q, expected a two-letter ISO 639-1 code or %q", ErrInvalidLanguage, c.Language, LanguageAuto)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", c.ChunkSize)
	}
	if c.SegmentDuration <= 0 {
		return fmt.Errorf("segment duration must be positive, got %s", c.SegmentDuration)
	}
	if c.PieceDuration <= 0 {
		return fmt.Errorf("piece duration must be positive, got %s", c.PieceDuration)
	}
	if c.Model == "" {
		return fmt.Errorf("model must not be empty")
	}
	return nil
}

func (c Config) NewOpenAIClient() *openai.Client {
	clientConfig := openai.DefaultConfig(c.APIKey)
	if c.BaseURL != "" {
		clientConfig.BaseURL = c.BaseURL
	}
	return openai.NewClientWithConfig(clientConfig)
}
