package ui

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/audio"
	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/config"
	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/pdf"
	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/record"
	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/stt"
	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/tts"
	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/tts/engines"
)

// conversionDoneMsg reports the result of a conversion run. It is the only
// message the conversion goroutines produce.
type conversionDoneMsg struct {
	transcript string // set by recognition runs
	saved      string // path written, if any
	err        error
}

// The audio device can only be opened once per process, so every playback
// in the TUI shares one player.
var (
	playerOnce sync.Once
	player     *audio.Player
	playerErr  error
)

func sharedPlayer() (*audio.Player, error) {
	playerOnce.Do(func() {
		player, playerErr = audio.NewPlayer(audio.DefaultPlayerConfig())
	})
	return player, playerErr
}

// speakPDF extracts the text of a PDF and plays it, or renders it to a WAV
// file when savePath is set.
func speakPDF(ctx context.Context, conv config.Config, path, savePath string) tea.Cmd {
	return func() tea.Msg {
		text, err := pdf.Extract(path, pdf.PageRange{})
		if err != nil {
			return conversionDoneMsg{err: err}
		}
		if text == "" {
			log.Warn("No text extracted. Are you reading a scanned PDF?", "path", path)
			return conversionDoneMsg{}
		}

		svc, err := speechService(conv)
		if err != nil {
			return conversionDoneMsg{err: err}
		}

		if savePath != "" {
			if err := svc.SaveWAV(ctx, text, savePath); err != nil {
				return conversionDoneMsg{err: err}
			}
			return conversionDoneMsg{saved: savePath}
		}

		p, err := sharedPlayer()
		if err != nil {
			return conversionDoneMsg{err: err}
		}
		return conversionDoneMsg{err: svc.Speak(ctx, text, p)}
	}
}

// transcribe runs recognition over a WAV file, or over a fresh microphone
// recording when path is empty, and optionally writes the transcript to a
// PDF.
func transcribe(ctx context.Context, conv config.Config, path, outPath string, limit time.Duration) tea.Cmd {
	return func() tea.Msg {
		backend, err := stt.NewBackend(conv.STT.Backend, conv.STT, log.Default())
		if err != nil {
			return conversionDoneMsg{err: err}
		}
		svc, err := stt.NewService(backend, log.Default())
		if err != nil {
			return conversionDoneMsg{err: err}
		}

		var transcript string
		if path == "" {
			rec, err := record.NewRecorder(log.Default())
			if err != nil {
				return conversionDoneMsg{err: err}
			}
			transcript, err = svc.TranscribeMic(ctx, rec, limit)
			if err != nil {
				return conversionDoneMsg{err: err}
			}
		} else {
			transcript, err = svc.TranscribeFile(ctx, path)
			if err != nil {
				return conversionDoneMsg{err: err}
			}
		}

		msg := conversionDoneMsg{transcript: transcript}
		if outPath != "" {
			opts := pdf.WriteOptions{
				Font:     conv.PDF.Font,
				FontSize: conv.PDF.FontSize,
				MarginMM: conv.PDF.MarginMM,
				Title:    conv.PDF.Title,
			}
			if err := pdf.Write(transcript, outPath, opts); err != nil {
				return conversionDoneMsg{err: err}
			}
			msg.saved = outPath
		}
		return msg
	}
}

// speakText reads the given transcript back aloud.
func speakText(ctx context.Context, conv config.Config, text string) tea.Cmd {
	return func() tea.Msg {
		svc, err := speechService(conv)
		if err != nil {
			return conversionDoneMsg{err: err}
		}
		p, err := sharedPlayer()
		if err != nil {
			return conversionDoneMsg{err: err}
		}
		return conversionDoneMsg{err: svc.Speak(ctx, text, p)}
	}
}

func speechService(conv config.Config) (*tts.Service, error) {
	engine, err := engines.New(conv.TTS.Engine, conv.TTS)
	if err != nil {
		return nil, err
	}
	params := tts.Params{
		Rate:   conv.TTS.Rate,
		Volume: conv.TTS.Volume,
		Voice:  conv.TTS.Voice,
	}
	return tts.NewService(engine, params, log.Default())
}
