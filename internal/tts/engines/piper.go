package engines

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"sync"

	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/audio"
	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/config"
	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/tts"
)

// piperSampleRate is what piper's medium-quality models emit.
const piperSampleRate = 22050

// Piper synthesizes speech with a local piper model. Higher quality than
// espeak-ng but needs a downloaded .onnx voice model.
type Piper struct {
	cfg config.PiperConfig

	mu     sync.Mutex
	params tts.Params
}

// NewPiper creates a piper engine.
func NewPiper(cfg config.PiperConfig) *Piper {
	if cfg.Binary == "" {
		cfg.Binary = "piper"
	}
	return &Piper{cfg: cfg}
}

// Name returns the engine identifier.
func (p *Piper) Name() string { return "piper" }

// Available checks for the piper binary and the configured model file.
func (p *Piper) Available() error {
	if _, err := exec.LookPath(p.cfg.Binary); err != nil {
		return fmt.Errorf("%s not found in PATH", p.cfg.Binary)
	}
	if p.cfg.Model == "" {
		return fmt.Errorf("no piper model configured")
	}
	if _, err := os.Stat(p.cfg.Model); err != nil {
		return fmt.Errorf("piper model %s: %w", p.cfg.Model, err)
	}
	return nil
}

// Initialize stores synthesis parameters for subsequent calls.
func (p *Piper) Initialize(params tts.Params) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.params = params
	return nil
}

// Synthesize pipes text through piper with raw PCM output.
func (p *Piper) Synthesize(ctx context.Context, text string) (*audio.PCM, error) {
	p.mu.Lock()
	params := p.params
	p.mu.Unlock()

	// Piper has no words-per-minute knob; it scales phoneme length
	// instead. 180 wpm is treated as the 1.0 baseline.
	lengthScale := 180.0 / float64(params.Rate)

	args := []string{
		"--model", p.cfg.Model,
		"--output-raw",
		"--length-scale", strconv.FormatFloat(lengthScale, 'f', 3, 64),
	}

	raw, err := runWithStdin(ctx, text, p.cfg.Timeout, p.cfg.Binary, args...)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("piper produced no audio")
	}
	if len(raw)%2 == 1 {
		raw = raw[:len(raw)-1]
	}
	return &audio.PCM{Data: raw, SampleRate: piperSampleRate, Channels: 1}, nil
}

// Voices reports the configured model as the single available voice.
// Piper voices are model files, one voice each.
func (p *Piper) Voices() []tts.Voice {
	if p.cfg.Model == "" {
		return nil
	}
	return []tts.Voice{{ID: p.cfg.Model, Name: p.cfg.Model, Language: ""}}
}
