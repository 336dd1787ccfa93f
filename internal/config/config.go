// Package config defines the explicit configuration object shared by the
// CLI and the TUI. Services receive a Config at construction; there is no
// ambient global state.
package config

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// Config contains all conversion settings.
type Config struct {
	TTS TTSConfig `yaml:"tts"`
	STT STTConfig `yaml:"stt"`
	PDF PDFConfig `yaml:"pdf"`
}

// TTSConfig controls speech synthesis.
type TTSConfig struct {
	Engine string  `yaml:"engine"`
	Rate   int     `yaml:"rate"`
	Volume float64 `yaml:"volume"`
	Voice  string  `yaml:"voice"`

	Espeak EspeakConfig `yaml:"espeak"`
	Piper  PiperConfig  `yaml:"piper"`
}

// EspeakConfig contains espeak-ng engine specific settings.
type EspeakConfig struct {
	Binary  string        `yaml:"binary"`
	Timeout time.Duration `yaml:"timeout"`
}

// PiperConfig contains Piper engine specific settings.
type PiperConfig struct {
	Binary  string        `yaml:"binary"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

// STTConfig controls speech recognition.
type STTConfig struct {
	Backend  string        `yaml:"backend"`
	Language string        `yaml:"language"`
	MicLimit time.Duration `yaml:"mic_limit"`

	Google  GoogleConfig  `yaml:"google"`
	Whisper WhisperConfig `yaml:"whisper"`
}

// GoogleConfig contains settings for the Google Web Speech backend.
// An empty endpoint or key selects the library defaults.
type GoogleConfig struct {
	Endpoint          string        `yaml:"endpoint"`
	Key               string        `yaml:"key"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerMinute int           `yaml:"requests_per_minute"`
}

// WhisperConfig contains settings for the whisper.cpp backend.
type WhisperConfig struct {
	Binary  string        `yaml:"binary"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

// PDFConfig controls generated PDF layout.
type PDFConfig struct {
	Font     string  `yaml:"font"`
	FontSize float64 `yaml:"font_size"`
	MarginMM float64 `yaml:"margin_mm"`
	Title    string  `yaml:"title"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		TTS: TTSConfig{
			Engine: "espeak",
			Rate:   180,
			Volume: 0.9,
			Espeak: EspeakConfig{
				Binary:  "espeak-ng",
				Timeout: 60 * time.Second,
			},
			Piper: PiperConfig{
				Binary:  "piper",
				Timeout: 120 * time.Second,
			},
		},
		STT: STTConfig{
			Backend:  "google",
			Language: "en-US",
			Google: GoogleConfig{
				Timeout:           30 * time.Second,
				RequestsPerMinute: 20,
			},
			Whisper: WhisperConfig{
				Binary:  "whisper-cli",
				Timeout: 300 * time.Second,
			},
		},
		PDF: PDFConfig{
			Font:     "Times",
			FontSize: 12,
			MarginMM: 18,
			Title:    "Transcription",
		},
	}
}

// Validate checks the configuration for values no service could work with.
// Rate and volume are not rejected here; the TTS service clamps them.
func (c Config) Validate() error {
	switch c.TTS.Engine {
	case "espeak", "piper", "mock":
	default:
		return fmt.Errorf("unknown TTS engine %q (supported: espeak, piper, mock)", c.TTS.Engine)
	}

	switch c.STT.Backend {
	case "google", "whisper":
	default:
		return fmt.Errorf("unknown STT backend %q (supported: google, whisper)", c.STT.Backend)
	}

	if _, err := language.Parse(c.STT.Language); err != nil {
		return fmt.Errorf("invalid STT language code %q: %w", c.STT.Language, err)
	}

	if c.STT.MicLimit < 0 {
		return fmt.Errorf("mic limit must not be negative, got %v", c.STT.MicLimit)
	}

	if c.TTS.Engine == "piper" && c.TTS.Piper.Model == "" {
		return fmt.Errorf("piper engine selected but no model configured")
	}

	if c.PDF.FontSize < 6 || c.PDF.FontSize > 72 {
		return fmt.Errorf("PDF font size must be between 6 and 72, got %g", c.PDF.FontSize)
	}
	if c.PDF.MarginMM < 0 || c.PDF.MarginMM > 80 {
		return fmt.Errorf("PDF margin must be between 0 and 80 mm, got %g", c.PDF.MarginMM)
	}

	if c.STT.Google.RequestsPerMinute < 1 {
		return fmt.Errorf("google requests_per_minute must be positive, got %d", c.STT.Google.RequestsPerMinute)
	}

	return nil
}
