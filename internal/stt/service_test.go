package stt

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/audio"
	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/config"
)

// fakeRecognizer returns a canned transcript or error.
type fakeRecognizer struct {
	text    string
	err     error
	avail   error
	lastPCM *audio.PCM
	ctxErr  error
}

func (f *fakeRecognizer) Transcribe(ctx context.Context, pcm *audio.PCM) (string, error) {
	f.lastPCM = pcm
	f.ctxErr = ctx.Err()
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func (f *fakeRecognizer) Available() error { return f.avail }
func (f *fakeRecognizer) Name() string     { return "fake" }

// fakeMic returns a canned capture.
type fakeMic struct {
	pcm   *audio.PCM
	err   error
	limit time.Duration
}

func (f *fakeMic) Record(_ context.Context, limit time.Duration) (*audio.PCM, error) {
	f.limit = limit
	return f.pcm, f.err
}

func writeTestWAV(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "clip.wav")
	pcm := &audio.PCM{Data: make([]byte, 3200), SampleRate: 16000, Channels: 1}
	if err := audio.WriteWAVFile(pcm, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewBackendSelection(t *testing.T) {
	cfg := config.Default().STT

	for name, want := range map[string]string{"google": "google", "whisper": "whisper"} {
		rec, err := NewBackend(name, cfg, testLogger())
		if err != nil {
			t.Fatalf("NewBackend(%q) error = %v", name, err)
		}
		if rec.Name() != want {
			t.Errorf("NewBackend(%q).Name() = %q", name, rec.Name())
		}
	}
	if _, err := NewBackend("sphinx", cfg, testLogger()); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestNewServiceUnavailableBackend(t *testing.T) {
	rec := &fakeRecognizer{avail: errors.New("model missing")}
	if _, err := NewService(rec, testLogger()); !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("NewService() error = %v, want ErrBackendUnavailable", err)
	}
}

func TestTranscribeFile(t *testing.T) {
	rec := &fakeRecognizer{text: "spoken words"}
	svc, err := NewService(rec, testLogger())
	if err != nil {
		t.Fatal(err)
	}

	path := writeTestWAV(t, t.TempDir())
	got, err := svc.TranscribeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("TranscribeFile() error = %v", err)
	}
	if got != "spoken words" {
		t.Errorf("transcript = %q", got)
	}
	if rec.lastPCM == nil || rec.lastPCM.SampleRate != 16000 {
		t.Error("recognizer did not receive the decoded audio")
	}
}

func TestTranscribeFileUnsupportedExtension(t *testing.T) {
	svc, _ := NewService(&fakeRecognizer{}, testLogger())

	_, err := svc.TranscribeFile(context.Background(), "clip.mp3")
	if !errors.Is(err, ErrUnsupportedAudio) {
		t.Errorf("TranscribeFile() error = %v, want ErrUnsupportedAudio", err)
	}
}

func TestTranscribeFileMissing(t *testing.T) {
	svc, _ := NewService(&fakeRecognizer{}, testLogger())

	_, err := svc.TranscribeFile(context.Background(), filepath.Join(t.TempDir(), "nope.wav"))
	if !errors.Is(err, ErrUnsupportedAudio) {
		t.Errorf("TranscribeFile() error = %v, want ErrUnsupportedAudio", err)
	}
}

func TestTranscribeFileNotAWAV(t *testing.T) {
	svc, _ := NewService(&fakeRecognizer{}, testLogger())

	dir := t.TempDir()
	path := filepath.Join(dir, "fake.wav")
	if err := os.WriteFile(path, []byte("mp3 data in disguise"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.TranscribeFile(context.Background(), path); !errors.Is(err, ErrUnsupportedAudio) {
		t.Errorf("TranscribeFile() error = %v, want ErrUnsupportedAudio", err)
	}
}

func TestTranscribeMic(t *testing.T) {
	rec := &fakeRecognizer{text: "from the microphone"}
	svc, _ := NewService(rec, testLogger())

	mic := &fakeMic{pcm: &audio.PCM{Data: make([]byte, 320), SampleRate: 16000, Channels: 1}}
	got, err := svc.TranscribeMic(context.Background(), mic, 5*time.Second)
	if err != nil {
		t.Fatalf("TranscribeMic() error = %v", err)
	}
	if got != "from the microphone" {
		t.Errorf("transcript = %q", got)
	}
	if mic.limit != 5*time.Second {
		t.Errorf("recorder limit = %v, want 5s", mic.limit)
	}
}

// stoppingMic ends the capture the way a user does: by cancelling the
// context mid-recording, then handing back what was recorded so far.
type stoppingMic struct {
	cancel context.CancelFunc
	pcm    *audio.PCM
}

func (m *stoppingMic) Record(context.Context, time.Duration) (*audio.PCM, error) {
	m.cancel()
	return m.pcm, nil
}

func TestTranscribeMicStoppedCaptureStillRecognized(t *testing.T) {
	rec := &fakeRecognizer{text: "cut short"}
	svc, _ := NewService(rec, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mic := &stoppingMic{
		cancel: cancel,
		pcm:    &audio.PCM{Data: make([]byte, 320), SampleRate: 16000, Channels: 1},
	}

	got, err := svc.TranscribeMic(ctx, mic, 0)
	if err != nil {
		t.Fatalf("TranscribeMic() error = %v", err)
	}
	if got != "cut short" {
		t.Errorf("transcript = %q", got)
	}
	if rec.ctxErr != nil {
		t.Errorf("recognition ran with a dead context: %v", rec.ctxErr)
	}
}

func TestTranscribeMicCaptureFails(t *testing.T) {
	svc, _ := NewService(&fakeRecognizer{}, testLogger())

	mic := &fakeMic{err: errors.New("no device")}
	if _, err := svc.TranscribeMic(context.Background(), mic, 0); err == nil {
		t.Fatal("expected capture error")
	}
}

func TestNoSpeechPropagates(t *testing.T) {
	rec := &fakeRecognizer{err: ErrNoSpeech}
	svc, _ := NewService(rec, testLogger())

	path := writeTestWAV(t, t.TempDir())
	if _, err := svc.TranscribeFile(context.Background(), path); !errors.Is(err, ErrNoSpeech) {
		t.Errorf("TranscribeFile() error = %v, want ErrNoSpeech", err)
	}
}
