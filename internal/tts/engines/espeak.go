package engines

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/audio"
	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/config"
	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/tts"
)

// Espeak synthesizes speech with the espeak-ng binary. It runs offline and
// ships with most Linux distributions, which makes it the default engine.
type Espeak struct {
	cfg config.EspeakConfig

	mu     sync.Mutex
	params tts.Params

	voicesOnce sync.Once
	voices     []tts.Voice
}

// NewEspeak creates an espeak-ng engine.
func NewEspeak(cfg config.EspeakConfig) *Espeak {
	if cfg.Binary == "" {
		cfg.Binary = "espeak-ng"
	}
	return &Espeak{cfg: cfg}
}

// Name returns the engine identifier.
func (e *Espeak) Name() string { return "espeak" }

// Available checks that the espeak-ng binary is on PATH.
func (e *Espeak) Available() error {
	if _, err := exec.LookPath(e.cfg.Binary); err != nil {
		return fmt.Errorf("%s not found in PATH", e.cfg.Binary)
	}
	return nil
}

// Initialize stores synthesis parameters for subsequent calls.
func (e *Espeak) Initialize(params tts.Params) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.params = params
	return nil
}

// Synthesize renders text to PCM by piping it through espeak-ng --stdout.
func (e *Espeak) Synthesize(ctx context.Context, text string) (*audio.PCM, error) {
	e.mu.Lock()
	params := e.params
	e.mu.Unlock()

	args := []string{"--stdout", "-s", strconv.Itoa(params.Rate)}
	if params.Voice != "" {
		args = append(args, "-v", params.Voice)
	}

	wav, err := runWithStdin(ctx, text, e.cfg.Timeout, e.cfg.Binary, args...)
	if err != nil {
		return nil, err
	}
	pcm, err := audio.DecodeWAV(wav)
	if err != nil {
		return nil, fmt.Errorf("unexpected espeak output: %w", err)
	}
	return pcm, nil
}

// Voices lists the voices reported by espeak-ng --voices. The list is
// queried once and cached; a failing query yields an empty list rather
// than an error, since voice selection is optional.
func (e *Espeak) Voices() []tts.Voice {
	e.voicesOnce.Do(func() {
		out, err := exec.Command(e.cfg.Binary, "--voices").Output()
		if err != nil {
			return
		}
		e.voices = parseEspeakVoices(string(out))
	})
	return e.voices
}

// parseEspeakVoices parses the tabular `espeak-ng --voices` output:
//
//	Pty Language       Age/Gender VoiceName          File                 Other Languages
//	 5  en-US           --/M      English (America)  gmw/en-US
func parseEspeakVoices(out string) []tts.Voice {
	lines := strings.Split(out, "\n")
	var voices []tts.Voice
	for i, line := range lines {
		if i == 0 { // header
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		lang := fields[1]
		file := fields[len(fields)-1]
		name := strings.Join(fields[3:len(fields)-1], " ")
		if name == "" {
			name = file
		}
		voices = append(voices, tts.Voice{
			ID:       lang, // espeak selects voices by language code (-v)
			Name:     name,
			Language: lang,
		})
	}
	return voices
}
