// Package tts turns text into spoken audio. The Engine interface is the
// capability set every synthesis backend implements; the Service layers
// parameter handling, chunking and playback on top of whichever engine was
// selected at startup.
package tts

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/audio"
)

// Engine is a speech synthesis backend.
type Engine interface {
	// Initialize prepares the engine with the given parameters.
	Initialize(params Params) error

	// Synthesize converts text to PCM audio.
	Synthesize(ctx context.Context, text string) (*audio.PCM, error)

	// Voices returns the voices the engine can speak with.
	Voices() []Voice

	// Available reports whether the backend can run on this host.
	Available() error

	// Name returns the engine identifier.
	Name() string
}

// Voice describes a selectable engine voice.
type Voice struct {
	ID       string
	Name     string
	Language string
}

// Speech rate bounds in words per minute. Values outside are clamped, not
// rejected; both the CLI and the TUI rely on that.
const (
	MinRate = 80
	MaxRate = 450
)

// Params are the user-facing synthesis parameters.
type Params struct {
	Rate   int     // words per minute
	Volume float64 // 0.0 to 1.0
	Voice  string  // voice name or substring, empty = engine default
}

// Clamp forces rate and volume into their supported ranges. Clamping is
// logged but never an error.
func (p Params) Clamp(logger *log.Logger) Params {
	out := p
	if out.Rate < MinRate {
		out.Rate = MinRate
	} else if out.Rate > MaxRate {
		out.Rate = MaxRate
	}
	if out.Volume < 0 {
		out.Volume = 0
	} else if out.Volume > 1 {
		out.Volume = 1
	}
	if logger != nil && (out.Rate != p.Rate || out.Volume != p.Volume) {
		logger.Debug("clamped TTS parameters",
			"rate", p.Rate, "clampedRate", out.Rate,
			"volume", p.Volume, "clampedVolume", out.Volume)
	}
	return out
}
