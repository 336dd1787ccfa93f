package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// LoadFromViper builds a Config from the viper instance populated by the
// CLI (config file, env, bound flags). Unset keys keep their defaults.
func LoadFromViper() (Config, error) {
	cfg := Default()

	// TTS settings
	if viper.IsSet("tts.engine") {
		cfg.TTS.Engine = viper.GetString("tts.engine")
	}
	if viper.IsSet("tts.rate") {
		cfg.TTS.Rate = viper.GetInt("tts.rate")
	}
	if viper.IsSet("tts.volume") {
		cfg.TTS.Volume = viper.GetFloat64("tts.volume")
	}
	if viper.IsSet("tts.voice") {
		cfg.TTS.Voice = viper.GetString("tts.voice")
	}
	if viper.IsSet("tts.espeak.binary") {
		cfg.TTS.Espeak.Binary = viper.GetString("tts.espeak.binary")
	}
	if viper.IsSet("tts.espeak.timeout") {
		cfg.TTS.Espeak.Timeout = viper.GetDuration("tts.espeak.timeout")
	}
	if viper.IsSet("tts.piper.binary") {
		cfg.TTS.Piper.Binary = viper.GetString("tts.piper.binary")
	}
	if viper.IsSet("tts.piper.model") {
		cfg.TTS.Piper.Model = viper.GetString("tts.piper.model")
	}
	if viper.IsSet("tts.piper.timeout") {
		cfg.TTS.Piper.Timeout = viper.GetDuration("tts.piper.timeout")
	}

	// STT settings
	if viper.IsSet("stt.backend") {
		cfg.STT.Backend = viper.GetString("stt.backend")
	}
	if viper.IsSet("stt.language") {
		cfg.STT.Language = viper.GetString("stt.language")
	}
	if viper.IsSet("stt.mic_limit") {
		cfg.STT.MicLimit = viper.GetDuration("stt.mic_limit")
	}
	if viper.IsSet("stt.google.endpoint") {
		cfg.STT.Google.Endpoint = viper.GetString("stt.google.endpoint")
	}
	if viper.IsSet("stt.google.key") {
		cfg.STT.Google.Key = viper.GetString("stt.google.key")
	}
	if viper.IsSet("stt.google.timeout") {
		cfg.STT.Google.Timeout = viper.GetDuration("stt.google.timeout")
	}
	if viper.IsSet("stt.google.requests_per_minute") {
		cfg.STT.Google.RequestsPerMinute = viper.GetInt("stt.google.requests_per_minute")
	}
	if viper.IsSet("stt.whisper.binary") {
		cfg.STT.Whisper.Binary = viper.GetString("stt.whisper.binary")
	}
	if viper.IsSet("stt.whisper.model") {
		cfg.STT.Whisper.Model = viper.GetString("stt.whisper.model")
	}
	if viper.IsSet("stt.whisper.timeout") {
		cfg.STT.Whisper.Timeout = viper.GetDuration("stt.whisper.timeout")
	}

	// PDF settings
	if viper.IsSet("pdf.font") {
		cfg.PDF.Font = viper.GetString("pdf.font")
	}
	if viper.IsSet("pdf.font_size") {
		cfg.PDF.FontSize = viper.GetFloat64("pdf.font_size")
	}
	if viper.IsSet("pdf.margin_mm") {
		cfg.PDF.MarginMM = viper.GetFloat64("pdf.margin_mm")
	}
	if viper.IsSet("pdf.title") {
		cfg.PDF.Title = viper.GetString("pdf.title")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
