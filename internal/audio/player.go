package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Player plays PCM buffers through the default output device using oto.
// oto allows a single context per process, so the player owns one context
// at a fixed sample rate and resamples incoming buffers to match.
type Player struct {
	context *oto.Context

	mu       sync.Mutex
	playing  bool
	closed   bool

	sampleRate int
	channels   int
}

// PlayerConfig contains configuration for the audio player.
type PlayerConfig struct {
	SampleRate int // output device rate
	Channels   int // 1 = mono, 2 = stereo
}

// DefaultPlayerConfig returns the default player configuration.
// Mono 22050 Hz matches what espeak-ng and piper emit.
func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		SampleRate: 22050,
		Channels:   1,
	}
}

// NewPlayer creates a player and waits for the audio device to come up.
// Fails when the host has no usable audio backend.
func NewPlayer(config PlayerConfig) (*Player, error) {
	if config.SampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", config.SampleRate)
	}
	if config.Channels != 1 && config.Channels != 2 {
		return nil, fmt.Errorf("channels must be 1 or 2, got %d", config.Channels)
	}

	op := &oto.NewContextOptions{
		SampleRate:   config.SampleRate,
		ChannelCount: config.Channels,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("unable to open audio device: %w", err)
	}
	<-readyChan

	return &Player{
		context:    ctx,
		sampleRate: config.SampleRate,
		channels:   config.Channels,
	}, nil
}

// Play blocks until the buffer has been played to completion or the
// context is cancelled. Cancellation stops playback immediately.
func (p *Player) Play(ctx context.Context, pcm *PCM) error {
	if err := pcm.Validate(); err != nil {
		return err
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return errors.New("player is closed")
	}
	if p.playing {
		p.mu.Unlock()
		return errors.New("player is busy")
	}
	p.playing = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.playing = false
		p.mu.Unlock()
	}()

	buf := pcm
	if pcm.SampleRate != p.sampleRate {
		buf = pcm.Resample(p.sampleRate)
	}
	if buf.Channels != p.channels {
		return fmt.Errorf("cannot play %d-channel audio on %d-channel device", buf.Channels, p.channels)
	}

	player := p.context.NewPlayer(bytes.NewReader(buf.Data))
	defer player.Close() //nolint:errcheck
	player.Play()

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// Close releases the output device. Further Play calls fail.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}
