package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/audio"
	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/config"
	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/pdf"
	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/record"
	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/stt"
	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/tts"
	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/tts/engines"
	"github.com/mobinyousefi-cs/pdf-audio-converter/utils"
)

var (
	sttAudioPath string
	sttMic       bool
	sttLimit     int
	sttLang      string
	sttBackend   string
	sttOut       string
	sttTxt       string
	sttSpeakBack bool

	sttCmd = &cobra.Command{
		Use:     "stt",
		Short:   "Transcribe audio or the microphone into a PDF",
		Long:    paragraph(fmt.Sprintf("\nTranscribe a WAV file or a microphone recording and %s as a PDF, a text file, or plain stdout.", keyword("write the transcript"))),
		Example: paragraph("pdf-audio stt --audio meeting.wav --out meeting.pdf\npdf-audio stt --mic --limit 10 --speak-back"),
		Args:    cobra.NoArgs,
		RunE:    runSTT,
	}
)

func init() {
	sttCmd.Flags().StringVar(&sttAudioPath, "audio", "", "WAV file to transcribe")
	sttCmd.Flags().BoolVar(&sttMic, "mic", false, "record from the microphone")
	sttCmd.Flags().IntVar(&sttLimit, "limit", 0, "stop a microphone recording after this many seconds")
	sttCmd.Flags().StringVar(&sttLang, "lang", "", "language code for recognition (e.g. en-US)")
	sttCmd.Flags().StringVar(&sttBackend, "backend", "", "recognition backend (google or whisper)")
	sttCmd.Flags().StringVar(&sttOut, "out", "", "write the transcript to a PDF file")
	sttCmd.Flags().StringVar(&sttTxt, "txt", "", "write the transcript to a text file")
	sttCmd.Flags().BoolVar(&sttSpeakBack, "speak-back", false, "read the transcript back aloud")
	sttCmd.MarkFlagsMutuallyExclusive("audio", "mic")
	sttCmd.MarkFlagsOneRequired("audio", "mic")
}

func runSTT(cmd *cobra.Command, _ []string) error {
	cfg, err := sttConfig(cmd)
	if err != nil {
		return err
	}

	backend, err := stt.NewBackend(cfg.STT.Backend, cfg.STT, log.Default())
	if err != nil {
		return err
	}
	svc, err := stt.NewService(backend, log.Default())
	if err != nil {
		return err
	}

	var transcript string
	if sttMic {
		rec, err := record.NewRecorder(log.Default())
		if err != nil {
			return err
		}
		log.Info("Recording from microphone. Speak now.", "tool", rec.Tool())
		transcript, err = svc.TranscribeMic(cmd.Context(), rec, cfg.STT.MicLimit)
		if err != nil {
			return fmt.Errorf("unable to transcribe recording: %w", err)
		}
	} else {
		transcript, err = svc.TranscribeFile(cmd.Context(), utils.ExpandPath(sttAudioPath))
		if err != nil {
			return fmt.Errorf("unable to transcribe %s: %w", sttAudioPath, err)
		}
	}

	printTranscript(transcript)

	if sttOut != "" {
		out := utils.ExpandPath(sttOut)
		opts := pdf.WriteOptions{
			Font:     cfg.PDF.Font,
			FontSize: cfg.PDF.FontSize,
			MarginMM: cfg.PDF.MarginMM,
			Title:    cfg.PDF.Title,
		}
		if err := pdf.Write(transcript, out, opts); err != nil {
			return fmt.Errorf("unable to write PDF: %w", err)
		}
		log.Info("Wrote PDF", "path", out)
	}

	if sttTxt != "" {
		out := utils.ExpandPath(sttTxt)
		if err := os.WriteFile(out, []byte(transcript+"\n"), 0o644); err != nil { //nolint:gosec
			return fmt.Errorf("unable to write text file: %w", err)
		}
		log.Info("Wrote text", "path", out)
	}

	if sttSpeakBack {
		return speakBack(cmd, cfg, transcript)
	}
	return nil
}

func speakBack(cmd *cobra.Command, cfg config.Config, transcript string) error {
	engine, err := engines.New(cfg.TTS.Engine, cfg.TTS)
	if err != nil {
		return err
	}
	params := tts.Params{Rate: cfg.TTS.Rate, Volume: cfg.TTS.Volume, Voice: cfg.TTS.Voice}
	svc, err := tts.NewService(engine, params, log.Default())
	if err != nil {
		return err
	}
	player, err := audio.NewPlayer(audio.DefaultPlayerConfig())
	if err != nil {
		return fmt.Errorf("unable to open audio device: %w", err)
	}
	return svc.Speak(cmd.Context(), transcript, player)
}

// printTranscript writes the transcript to stdout, word-wrapped to the
// terminal width when stdout is a terminal.
func printTranscript(transcript string) {
	width := 80
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}
	}
	fmt.Println(wordwrap.String(transcript, width))
}

func sttConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.LoadFromViper()
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("backend") {
		cfg.STT.Backend = sttBackend
	}
	if cmd.Flags().Changed("lang") {
		cfg.STT.Language = sttLang
	}
	if cmd.Flags().Changed("limit") {
		cfg.STT.MicLimit = time.Duration(sttLimit) * time.Second
	}
	return cfg, cfg.Validate()
}
