package engines

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/audio"
	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/tts"
)

const mockSampleRate = 22050

// Mock is a deterministic engine for tests and dry runs. It produces
// silence sized to the requested speech rate, so timing-related behavior
// can be asserted without a real synthesizer.
type Mock struct {
	mu        sync.Mutex
	params    tts.Params
	spoken    []string
	failNext  error
	available error
}

// NewMock creates a mock engine.
func NewMock() *Mock {
	return &Mock{}
}

// Name returns the engine identifier.
func (m *Mock) Name() string { return "mock" }

// Available reports the error configured with SetAvailableError, if any.
func (m *Mock) Available() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.available
}

// SetAvailableError makes Available fail, simulating a missing backend.
func (m *Mock) SetAvailableError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.available = err
}

// FailNext makes the next Synthesize call return err.
func (m *Mock) FailNext(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = err
}

// Initialize stores the parameters for duration calculation.
func (m *Mock) Initialize(params tts.Params) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.params = params
	return nil
}

// Synthesize returns silence whose duration matches the word count at the
// configured rate, and records the text for assertions.
func (m *Mock) Synthesize(ctx context.Context, text string) (*audio.PCM, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("empty text")
	}
	m.spoken = append(m.spoken, text)

	rate := m.params.Rate
	if rate <= 0 {
		rate = 180
	}
	words := len(strings.Fields(text))
	seconds := float64(words) * 60.0 / float64(rate)
	frames := int(seconds * mockSampleRate)
	if frames < 1 {
		frames = 1
	}
	return &audio.PCM{
		Data:       make([]byte, frames*audio.BytesPerSample),
		SampleRate: mockSampleRate,
		Channels:   1,
	}, nil
}

// Voices returns a small fixed voice list.
func (m *Mock) Voices() []tts.Voice {
	return []tts.Voice{
		{ID: "mock-en", Name: "Mock English", Language: "en-US"},
		{ID: "mock-de", Name: "Mock German", Language: "de-DE"},
	}
}

// Spoken returns the texts synthesized so far.
func (m *Mock) Spoken() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.spoken...)
}
