// Package stt turns spoken audio into text. Recognizer is the capability
// set every recognition backend implements; the Service routes file and
// microphone input to whichever backend was selected at startup.
package stt

import (
	"context"
	"errors"

	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/audio"
)

// Recognizer is a speech recognition backend.
type Recognizer interface {
	// Transcribe converts PCM audio to text. Audio that contains no
	// discernible speech is an error (ErrNoSpeech), never an empty
	// success.
	Transcribe(ctx context.Context, pcm *audio.PCM) (string, error)

	// Available reports whether the backend can run on this host.
	Available() error

	// Name returns the backend identifier.
	Name() string
}

// Common errors for the STT layer.
var (
	ErrNoSpeech           = errors.New("no speech could be recognized")
	ErrBackendUnavailable = errors.New("STT backend is not available")
	ErrUnsupportedAudio   = errors.New("unsupported audio format")
	ErrRecognition        = errors.New("speech recognition failed")
)
