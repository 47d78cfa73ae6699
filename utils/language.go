package utils

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pemistahl/lingua-go"
)

const (
	LanguageEnglish = "en"
	LanguageItalian = "it"
	// LanguageAuto sends no language hint and takes the language detected
	// from the transcribed text.
	LanguageAuto = "auto"
)

// AskLanguage prompts for English or Italian. Anything other than a valid
// choice, including no input at all, selects English.
func AskLanguage(in io.Reader, out io.Writer) string {
	fmt.Fprintln(out, "\nSelect language for transcription:")
	fmt.Fprintln(out, "1) English")
	fmt.Fprintln(out, "2) Italian")
	fmt.Fprint(out, "Choose (1 or 2): ")

	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.TrimSpace(line) {
	case "2":
		return LanguageItalian
	case "1":
		return LanguageEnglish
	default:
		fmt.Fprintln(out, "Invalid choice. Defaulting to English.")
		return LanguageEnglish
	}
}

// ValidLanguage accepts an empty value (ask the user), LanguageAuto, or a
// lowercase two-letter ISO 639-1 code.
func ValidLanguage(code string) bool {
	if code == "" || code == LanguageAuto {
		return true
	}
	if len(code) != 2 {
		return false
	}
	for _, r := range code {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// ResolveLanguage uses the configured language when there is one and asks
// the user otherwise.
func ResolveLanguage(configured string, in io.Reader, out io.Writer) string {
	configured = strings.ToLower(strings.TrimSpace(configured))
	if configured != "" {
		return configured
	}
	return AskLanguage(in, out)
}

type LinguaDetector struct {
	detector lingua.LanguageDetector
}

func NewLinguaDetector() *LinguaDetector {
	return &LinguaDetector{
		detector: lingua.NewLanguageDetectorBuilder().FromAllLanguages().Build(),
	}
}

// DetectLanguage returns the lowercase ISO 639-1 code of text, or "" when
// the detector cannot decide.
func (d *LinguaDetector) DetectLanguage(text string) string {
	language, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return strings.ToLower(language.IsoCode639_1().String())
}
