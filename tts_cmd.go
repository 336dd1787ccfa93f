package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/audio"
	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/config"
	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/pdf"
	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/tts"
	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/tts/engines"
	"github.com/mobinyousefi-cs/pdf-audio-converter/utils"
)

var (
	ttsPDFPath string
	ttsStart   int
	ttsEnd     int
	ttsRate    int
	ttsVolume  float64
	ttsVoice   string
	ttsEngine  string
	ttsSave    string

	ttsCmd = &cobra.Command{
		Use:     "tts",
		Short:   "Read a PDF aloud, or render it to a WAV file",
		Long:    paragraph(fmt.Sprintf("\nExtract the text of a PDF and %s through the configured speech engine.", keyword("read it aloud"))),
		Example: paragraph("pdf-audio tts --pdf report.pdf\npdf-audio tts --pdf report.pdf --start 2 --end 5 --save report.wav"),
		Args:    cobra.NoArgs,
		RunE:    runTTS,
	}
)

func init() {
	ttsCmd.Flags().StringVar(&ttsPDFPath, "pdf", "", "PDF file to read")
	ttsCmd.Flags().IntVar(&ttsStart, "start", 0, "first page to read (1-based, 0 for first)")
	ttsCmd.Flags().IntVar(&ttsEnd, "end", 0, "last page to read (inclusive, 0 for last)")
	ttsCmd.Flags().IntVar(&ttsRate, "rate", 0, "speech rate in words per minute")
	ttsCmd.Flags().Float64Var(&ttsVolume, "volume", 0, "playback volume (0.0 to 1.0)")
	ttsCmd.Flags().StringVar(&ttsVoice, "voice", "", "voice name or language code")
	ttsCmd.Flags().StringVar(&ttsEngine, "engine", "", "speech engine (espeak or piper)")
	ttsCmd.Flags().StringVar(&ttsSave, "save", "", "write audio to a WAV file instead of playing it")
	_ = ttsCmd.MarkFlagRequired("pdf")
}

func runTTS(cmd *cobra.Command, _ []string) error {
	cfg, err := ttsConfig(cmd)
	if err != nil {
		return err
	}

	path := utils.ExpandPath(ttsPDFPath)
	text, err := pdf.Extract(path, pdf.PageRange{Start: ttsStart, End: ttsEnd})
	if err != nil {
		return fmt.Errorf("unable to extract text: %w", err)
	}
	if text == "" {
		log.Warn("No text extracted. Are you reading a scanned PDF?", "path", path)
		return nil
	}
	log.Debug("Extracted text", "path", path, "size", humanize.Bytes(uint64(len(text))))

	engine, err := engines.New(cfg.TTS.Engine, cfg.TTS)
	if err != nil {
		return err
	}
	params := tts.Params{Rate: cfg.TTS.Rate, Volume: cfg.TTS.Volume, Voice: cfg.TTS.Voice}
	svc, err := tts.NewService(engine, params, log.Default())
	if err != nil {
		return err
	}

	if ttsSave != "" {
		out := utils.ExpandPath(ttsSave)
		if err := svc.SaveWAV(cmd.Context(), text, out); err != nil {
			return fmt.Errorf("unable to save audio: %w", err)
		}
		log.Info("Wrote audio", "path", out)
		return nil
	}

	player, err := audio.NewPlayer(audio.DefaultPlayerConfig())
	if err != nil {
		return fmt.Errorf("unable to open audio device: %w", err)
	}
	return svc.Speak(cmd.Context(), text, player)
}

// ttsConfig loads the configuration and applies any flags the user changed
// on top of it.
func ttsConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.LoadFromViper()
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("engine") {
		cfg.TTS.Engine = ttsEngine
	}
	if cmd.Flags().Changed("rate") {
		cfg.TTS.Rate = ttsRate
	}
	if cmd.Flags().Changed("volume") {
		cfg.TTS.Volume = ttsVolume
	}
	if cmd.Flags().Changed("voice") {
		cfg.TTS.Voice = ttsVoice
	}
	return cfg, cfg.Validate()
}
