package tts_test

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/audio"
	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/tts"
	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/tts/engines"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

// fakePlayer records what it was asked to play.
type fakePlayer struct {
	played []*audio.PCM
	err    error
}

func (f *fakePlayer) Play(_ context.Context, pcm *audio.PCM) error {
	if f.err != nil {
		return f.err
	}
	f.played = append(f.played, pcm)
	return nil
}

func newService(t *testing.T, params tts.Params) (*tts.Service, *engines.Mock) {
	t.Helper()
	engine := engines.NewMock()
	svc, err := tts.NewService(engine, params, testLogger())
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return svc, engine
}

func TestParamsClamp(t *testing.T) {
	tests := []struct {
		name       string
		in         tts.Params
		wantRate   int
		wantVolume float64
	}{
		{"in range", tts.Params{Rate: 180, Volume: 0.9}, 180, 0.9},
		{"rate too low", tts.Params{Rate: 10, Volume: 0.5}, tts.MinRate, 0.5},
		{"rate too high", tts.Params{Rate: 9000, Volume: 0.5}, tts.MaxRate, 0.5},
		{"volume negative", tts.Params{Rate: 180, Volume: -1}, 180, 0},
		{"volume too high", tts.Params{Rate: 180, Volume: 7.5}, 180, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Clamp(testLogger())
			if got.Rate != tt.wantRate {
				t.Errorf("rate = %d, want %d", got.Rate, tt.wantRate)
			}
			if got.Volume != tt.wantVolume {
				t.Errorf("volume = %g, want %g", got.Volume, tt.wantVolume)
			}
		})
	}
}

func TestServiceClampsConsistently(t *testing.T) {
	svc, _ := newService(t, tts.Params{Rate: 9999, Volume: 3})
	p := svc.Params()
	if p.Rate != tts.MaxRate {
		t.Errorf("effective rate = %d, want %d", p.Rate, tts.MaxRate)
	}
	if p.Volume != 1 {
		t.Errorf("effective volume = %g, want 1", p.Volume)
	}
}

func TestServiceResolvesVoiceBySubstring(t *testing.T) {
	svc, _ := newService(t, tts.Params{Rate: 180, Volume: 1, Voice: "german"})
	if got := svc.Params().Voice; got != "mock-de" {
		t.Errorf("voice = %q, want mock-de", got)
	}
}

func TestServiceUnknownVoiceFallsBack(t *testing.T) {
	svc, _ := newService(t, tts.Params{Rate: 180, Volume: 1, Voice: "xqzzt"})
	if got := svc.Params().Voice; got != "" {
		t.Errorf("voice = %q, want engine default (empty)", got)
	}
}

func TestSpeakPlaysAllChunks(t *testing.T) {
	svc, engine := newService(t, tts.Params{Rate: 180, Volume: 1})
	player := &fakePlayer{}

	// Three chunks worth of text.
	text := strings.TrimSpace(strings.Repeat("some words to speak aloud ", 180))
	if err := svc.Speak(context.Background(), text, player); err != nil {
		t.Fatalf("Speak() error = %v", err)
	}
	if len(player.played) < 2 {
		t.Errorf("played %d chunks, want at least 2", len(player.played))
	}
	if len(engine.Spoken()) != len(player.played) {
		t.Errorf("synthesized %d chunks but played %d", len(engine.Spoken()), len(player.played))
	}
	// Chunks respect the size bound and never split a word.
	known := map[string]bool{"some": true, "words": true, "to": true, "speak": true, "aloud": true}
	for _, chunk := range engine.Spoken() {
		if len(chunk) > 1800 {
			t.Errorf("chunk length %d exceeds limit", len(chunk))
		}
		for _, w := range strings.Fields(chunk) {
			if !known[w] {
				t.Errorf("chunk contains split word %q", w)
			}
		}
	}
}

func TestSpeakKeepsChunksValidUTF8(t *testing.T) {
	svc, engine := newService(t, tts.Params{Rate: 180, Volume: 1})

	// Multi-byte runes with no whitespace force a mid-word cut; the cut
	// must land on a rune boundary.
	text := strings.Repeat("日本語テキスト", 200)
	if err := svc.Speak(context.Background(), text, &fakePlayer{}); err != nil {
		t.Fatalf("Speak() error = %v", err)
	}
	if len(engine.Spoken()) < 2 {
		t.Fatalf("synthesized %d chunks, want at least 2", len(engine.Spoken()))
	}
	for i, chunk := range engine.Spoken() {
		if !utf8.ValidString(chunk) {
			t.Errorf("chunk %d is not valid UTF-8", i)
		}
	}
}

func TestSpeakEmptyText(t *testing.T) {
	svc, _ := newService(t, tts.Params{Rate: 180, Volume: 1})
	err := svc.Speak(context.Background(), "   \n ", &fakePlayer{})
	if !errors.Is(err, tts.ErrNoText) {
		t.Errorf("Speak() error = %v, want ErrNoText", err)
	}
}

func TestSpeakSynthesisFailure(t *testing.T) {
	svc, engine := newService(t, tts.Params{Rate: 180, Volume: 1})
	engine.FailNext(errors.New("boom"))

	err := svc.Speak(context.Background(), "hello world", &fakePlayer{})
	if !errors.Is(err, tts.ErrSynthesisFailed) {
		t.Errorf("Speak() error = %v, want ErrSynthesisFailed", err)
	}
}

func TestSpeakPlaybackFailure(t *testing.T) {
	svc, _ := newService(t, tts.Params{Rate: 180, Volume: 1})
	player := &fakePlayer{err: errors.New("device gone")}

	if err := svc.Speak(context.Background(), "hello world", player); err == nil {
		t.Fatal("expected playback error")
	}
}

func TestSpeakCancelled(t *testing.T) {
	svc, _ := newService(t, tts.Params{Rate: 180, Volume: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := svc.Speak(ctx, "hello world", &fakePlayer{}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestNewServiceEngineUnavailable(t *testing.T) {
	engine := engines.NewMock()
	engine.SetAvailableError(errors.New("binary missing"))

	_, err := tts.NewService(engine, tts.Params{Rate: 180, Volume: 1}, testLogger())
	if !errors.Is(err, tts.ErrEngineNotAvailable) {
		t.Errorf("NewService() error = %v, want ErrEngineNotAvailable", err)
	}
}

func TestSaveWAV(t *testing.T) {
	svc, _ := newService(t, tts.Params{Rate: 180, Volume: 1})
	path := filepath.Join(t.TempDir(), "speech.wav")

	if err := svc.SaveWAV(context.Background(), "twelve words of text that should become one second of audio roughly", path); err != nil {
		t.Fatalf("SaveWAV() error = %v", err)
	}

	pcm, err := audio.ReadWAVFile(path)
	if err != nil {
		t.Fatalf("ReadWAVFile() error = %v", err)
	}
	if pcm.Duration() <= 0 {
		t.Error("saved audio has zero duration")
	}
}
