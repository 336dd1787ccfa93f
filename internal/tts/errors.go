package tts

import "errors"

// Common errors for the TTS layer.
var (
	ErrEngineNotAvailable = errors.New("TTS engine is not available on this host")
	ErrNoText             = errors.New("no text to speak")
	ErrSynthesisFailed    = errors.New("audio generation failed")
)
