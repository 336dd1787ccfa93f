package stt

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/text/language"

	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/audio"
	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/config"
)

// Whisper recognizes speech offline with a whisper.cpp CLI binary and a
// downloaded ggml model.
type Whisper struct {
	cfg      config.WhisperConfig
	language string
	logger   *log.Logger
}

// NewWhisper creates the whisper.cpp backend.
func NewWhisper(cfg config.WhisperConfig, lang string, logger *log.Logger) *Whisper {
	if cfg.Binary == "" {
		cfg.Binary = "whisper-cli"
	}
	return &Whisper{cfg: cfg, language: lang, logger: logger}
}

// Name returns the backend identifier.
func (w *Whisper) Name() string { return "whisper" }

// Available checks for the binary and the configured model file.
func (w *Whisper) Available() error {
	if _, err := exec.LookPath(w.cfg.Binary); err != nil {
		return fmt.Errorf("%s not found in PATH", w.cfg.Binary)
	}
	if w.cfg.Model == "" {
		return fmt.Errorf("no whisper model configured")
	}
	if _, err := os.Stat(w.cfg.Model); err != nil {
		return fmt.Errorf("whisper model %s: %w", w.cfg.Model, err)
	}
	return nil
}

// Transcribe writes the audio to a temp WAV file and runs whisper-cli
// over it. Whisper wants 16 kHz mono input, so the buffer is resampled
// when needed.
func (w *Whisper) Transcribe(ctx context.Context, pcm *audio.PCM) (string, error) {
	if err := pcm.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedAudio, err)
	}
	if pcm.Channels != 1 {
		return "", fmt.Errorf("%w: whisper needs mono audio", ErrUnsupportedAudio)
	}
	if pcm.SampleRate != 16000 {
		pcm = pcm.Resample(16000)
	}

	dir, err := os.MkdirTemp("", "pdf-audio-whisper-")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRecognition, err)
	}
	defer os.RemoveAll(dir) //nolint:errcheck

	wavPath := filepath.Join(dir, "input.wav")
	if err := audio.WriteWAVFile(pcm, wavPath); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRecognition, err)
	}

	args := []string{
		"-m", w.cfg.Model,
		"-f", wavPath,
		"--no-timestamps",
	}
	// Whisper takes a bare language subtag ("en"), not a BCP-47 region.
	if tag, err := language.Parse(w.language); err == nil {
		base, _ := tag.Base()
		args = append(args, "-l", base.String())
	}

	runCtx := ctx
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && w.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, w.cfg.Timeout)
		defer cancel()
	}

	w.logger.Debug("running whisper", "model", w.cfg.Model, "audio", wavPath)
	out, err := exec.CommandContext(runCtx, w.cfg.Binary, args...).Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok && len(ee.Stderr) > 0 {
			return "", fmt.Errorf("%w: whisper: %s", ErrRecognition, strings.TrimSpace(string(ee.Stderr)))
		}
		return "", fmt.Errorf("%w: whisper: %v", ErrRecognition, err)
	}

	text := strings.TrimSpace(string(out))
	if text == "" {
		return "", ErrNoSpeech
	}
	return text, nil
}
