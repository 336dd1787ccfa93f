package main

import (
	"testing"

	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/config"
)

// Conversion settings are reachable from the environment through viper's
// key replacer (PDF_AUDIO_TTS_RATE -> tts.rate), wired in
// tryLoadConfigFromDefaultPlaces.
func TestEnvOverridesReachConfig(t *testing.T) {
	t.Setenv("PDF_AUDIO_TTS_RATE", "300")
	t.Setenv("PDF_AUDIO_STT_LANGUAGE", "de-DE")

	cfg, err := config.LoadFromViper()
	if err != nil {
		t.Fatalf("LoadFromViper() error = %v", err)
	}
	if cfg.TTS.Rate != 300 {
		t.Errorf("rate = %d, want 300", cfg.TTS.Rate)
	}
	if cfg.STT.Language != "de-DE" {
		t.Errorf("language = %q, want de-DE", cfg.STT.Language)
	}
}

func TestEnvOverrideReachesNestedKeys(t *testing.T) {
	t.Setenv("PDF_AUDIO_STT_WHISPER_MODEL", "/models/ggml-base.bin")

	cfg, err := config.LoadFromViper()
	if err != nil {
		t.Fatalf("LoadFromViper() error = %v", err)
	}
	if cfg.STT.Whisper.Model != "/models/ggml-base.bin" {
		t.Errorf("whisper model = %q, want /models/ggml-base.bin", cfg.STT.Whisper.Model)
	}
}
