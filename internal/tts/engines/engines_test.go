package engines

import (
	"context"
	"errors"
	"testing"

	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/config"
	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/tts"
)

func TestNewSelectsEngine(t *testing.T) {
	cfg := config.Default().TTS

	tests := []struct {
		name string
		want string
	}{
		{"espeak", "espeak"},
		{"piper", "piper"},
		{"mock", "mock"},
	}
	for _, tt := range tests {
		engine, err := New(tt.name, cfg)
		if err != nil {
			t.Fatalf("New(%q) error = %v", tt.name, err)
		}
		if engine.Name() != tt.want {
			t.Errorf("New(%q).Name() = %q", tt.name, engine.Name())
		}
	}

	if _, err := New("festival", cfg); err == nil {
		t.Error("expected error for unknown engine")
	}
}

func TestParseEspeakVoices(t *testing.T) {
	out := `Pty Language       Age/Gender VoiceName          File                 Other Languages
 5  af              --/M      Afrikaans          gmw/af
 5  en-US           --/M      English (America)  gmw/en-US
 5  de              --/M      German             gmw/de
`
	voices := parseEspeakVoices(out)
	if len(voices) != 3 {
		t.Fatalf("parsed %d voices, want 3", len(voices))
	}
	if voices[1].ID != "en-US" {
		t.Errorf("voice ID = %q, want en-US", voices[1].ID)
	}
	if voices[1].Name != "English (America)" {
		t.Errorf("voice name = %q, want English (America)", voices[1].Name)
	}
	if voices[2].Language != "de" {
		t.Errorf("voice language = %q, want de", voices[2].Language)
	}
}

func TestParseEspeakVoicesGarbage(t *testing.T) {
	if got := parseEspeakVoices("header only\n\n   \n"); len(got) != 0 {
		t.Errorf("parsed %d voices from garbage, want 0", len(got))
	}
}

func TestMockSynthesizeDuration(t *testing.T) {
	m := NewMock()
	if err := m.Initialize(tts.Params{Rate: 120, Volume: 1}); err != nil {
		t.Fatal(err)
	}

	// 120 words at 120 wpm is one minute of audio.
	text := ""
	for i := 0; i < 120; i++ {
		text += "word "
	}
	pcm, err := m.Synthesize(context.Background(), text)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if got := pcm.Duration().Seconds(); got < 59 || got > 61 {
		t.Errorf("duration = %gs, want ~60s", got)
	}
}

func TestMockFailNext(t *testing.T) {
	m := NewMock()
	boom := errors.New("boom")
	m.FailNext(boom)

	if _, err := m.Synthesize(context.Background(), "hi"); !errors.Is(err, boom) {
		t.Errorf("error = %v, want injected failure", err)
	}
	// Failure is one-shot.
	if _, err := m.Synthesize(context.Background(), "hi"); err != nil {
		t.Errorf("second call error = %v, want nil", err)
	}
}

func TestPiperAvailableWithoutModel(t *testing.T) {
	p := NewPiper(config.PiperConfig{Binary: "piper"})
	if err := p.Available(); err == nil {
		t.Error("expected error when no model is configured")
	}
}
