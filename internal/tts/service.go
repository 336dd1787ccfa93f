package tts

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/sahilm/fuzzy"

	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/audio"
)

// chunkSize bounds how much text goes into a single synthesis call.
// Long documents are spoken chunk by chunk so the first audio starts
// quickly and engine subprocess limits are never hit.
const chunkSize = 1800

// Player plays PCM buffers. Satisfied by audio.Player; tests substitute
// their own.
type Player interface {
	Play(ctx context.Context, pcm *audio.PCM) error
}

// Service drives one synthesis engine: it clamps parameters, resolves the
// requested voice, chunks text, and either plays or saves the result.
type Service struct {
	engine Engine
	params Params
	logger *log.Logger
}

// NewService wires an engine with clamped parameters. When params.Voice is
// set it is resolved against the engine's voice list by fuzzy match; no
// match keeps the engine default (a warning, never an error).
func NewService(engine Engine, params Params, logger *log.Logger) (*Service, error) {
	if err := engine.Available(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrEngineNotAvailable, engine.Name(), err)
	}

	params = params.Clamp(logger)
	if params.Voice != "" {
		if id, ok := resolveVoice(params.Voice, engine.Voices()); ok {
			params.Voice = id
		} else {
			logger.Warn("voice not found, using engine default", "engine", engine.Name(), "voice", params.Voice)
			params.Voice = ""
		}
	}

	if err := engine.Initialize(params); err != nil {
		return nil, fmt.Errorf("unable to initialize %s engine: %w", engine.Name(), err)
	}

	return &Service{engine: engine, params: params, logger: logger}, nil
}

// voiceSource adapts a voice list for fuzzy matching on name.
type voiceSource []Voice

func (v voiceSource) String(i int) string { return v[i].Name }
func (v voiceSource) Len() int            { return len(v) }

// resolveVoice picks the voice best matching the pattern. Exact and
// case-insensitive substring matches win over fuzzy ones.
func resolveVoice(pattern string, voices []Voice) (string, bool) {
	lower := strings.ToLower(pattern)
	for _, v := range voices {
		if strings.Contains(strings.ToLower(v.Name), lower) || strings.EqualFold(v.ID, pattern) {
			return v.ID, true
		}
	}
	matches := fuzzy.FindFrom(pattern, voiceSource(voices))
	if len(matches) == 0 {
		return "", false
	}
	return voices[matches[0].Index].ID, true
}

// Params returns the effective (clamped, voice-resolved) parameters.
func (s *Service) Params() Params { return s.params }

// Engine returns the engine identifier.
func (s *Service) Engine() string { return s.engine.Name() }

// Speak synthesizes text chunk by chunk and plays each chunk through the
// player, blocking until playback finishes or ctx is cancelled.
func (s *Service) Speak(ctx context.Context, text string, player Player) error {
	chunks := splitChunks(text)
	if len(chunks) == 0 {
		return ErrNoText
	}

	s.logger.Debug("speaking", "engine", s.engine.Name(), "chunks", len(chunks), "rate", s.params.Rate)
	for i, chunk := range chunks {
		pcm, err := s.synthesize(ctx, chunk)
		if err != nil {
			return err
		}
		if err := player.Play(ctx, pcm); err != nil {
			return fmt.Errorf("playback failed at chunk %d/%d: %w", i+1, len(chunks), err)
		}
	}
	return nil
}

// SaveWAV renders the full text to a WAV file instead of playing it.
func (s *Service) SaveWAV(ctx context.Context, text, path string) error {
	chunks := splitChunks(text)
	if len(chunks) == 0 {
		return ErrNoText
	}

	var out *audio.PCM
	for _, chunk := range chunks {
		pcm, err := s.synthesize(ctx, chunk)
		if err != nil {
			return err
		}
		if out == nil {
			out = pcm
			continue
		}
		if pcm.SampleRate != out.SampleRate {
			pcm = pcm.Resample(out.SampleRate)
		}
		out.Data = append(out.Data, pcm.Data...)
	}

	s.logger.Debug("saving audio", "path", path, "duration", out.Duration())
	return audio.WriteWAVFile(out, path)
}

func (s *Service) synthesize(ctx context.Context, text string) (*audio.PCM, error) {
	pcm, err := s.engine.Synthesize(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w (%s): %v", ErrSynthesisFailed, s.engine.Name(), err)
	}
	if err := pcm.Validate(); err != nil {
		return nil, fmt.Errorf("%w (%s): %v", ErrSynthesisFailed, s.engine.Name(), err)
	}
	// Volume is applied uniformly here so every engine behaves the same.
	pcm.ApplyGain(s.params.Volume)
	return pcm, nil
}

// splitChunks breaks text into chunkSize pieces, preferring to cut at
// whitespace so words are not split across synthesis calls. A cut inside
// a word backs off to a rune boundary so no chunk carries invalid UTF-8.
func splitChunks(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var chunks []string
	for len(text) > chunkSize {
		cut := chunkSize
		if idx := strings.LastIndexAny(text[:chunkSize], " \t\n"); idx > chunkSize/2 {
			cut = idx
		} else {
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
		}
		chunks = append(chunks, strings.TrimSpace(text[:cut]))
		text = strings.TrimSpace(text[cut:])
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}
