package stt

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/audio"
	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/config"
)

// Capturer records audio from the default microphone. Satisfied by
// record.Recorder; tests substitute their own.
type Capturer interface {
	Record(ctx context.Context, limit time.Duration) (*audio.PCM, error)
}

// Service routes file and microphone input to a recognition backend.
type Service struct {
	rec    Recognizer
	logger *log.Logger
}

// NewBackend returns the recognizer selected by name. Selection happens
// once at startup; operations never dispatch on strings.
func NewBackend(name string, cfg config.STTConfig, logger *log.Logger) (Recognizer, error) {
	switch name {
	case "google":
		return NewGoogle(cfg.Google, cfg.Language, logger), nil
	case "whisper":
		return NewWhisper(cfg.Whisper, cfg.Language, logger), nil
	default:
		return nil, fmt.Errorf("unknown STT backend %q", name)
	}
}

// NewService wraps a recognizer, verifying it can run on this host.
func NewService(rec Recognizer, logger *log.Logger) (*Service, error) {
	if err := rec.Available(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBackendUnavailable, rec.Name(), err)
	}
	return &Service{rec: rec, logger: logger}, nil
}

// Backend returns the backend identifier.
func (s *Service) Backend() string { return s.rec.Name() }

// TranscribeFile transcribes a WAV audio file.
func (s *Service) TranscribeFile(ctx context.Context, path string) (string, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".wav" {
		return "", fmt.Errorf("%w: %s (only WAV input is supported)", ErrUnsupportedAudio, ext)
	}

	pcm, err := audio.ReadWAVFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedAudio, err)
	}

	s.logger.Debug("transcribing file", "path", path, "duration", pcm.Duration(), "backend", s.rec.Name())
	return s.rec.Transcribe(ctx, pcm)
}

// TranscribeMic records from the default microphone and transcribes the
// capture. limit bounds the recording; zero records until ctx is
// cancelled. Cancellation ends the recording, it does not abort the run:
// a capture stopped that way still goes through recognition.
func (s *Service) TranscribeMic(ctx context.Context, mic Capturer, limit time.Duration) (string, error) {
	pcm, err := mic.Record(ctx, limit)
	if err != nil {
		return "", err
	}

	if ctx.Err() != nil {
		ctx = context.WithoutCancel(ctx)
	}

	s.logger.Debug("transcribing capture", "duration", pcm.Duration(), "backend", s.rec.Name())
	return s.rec.Transcribe(ctx, pcm)
}
