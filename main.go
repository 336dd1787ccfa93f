// Package main provides the entry point for the pdf-audio CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/config"
	"github.com/mobinyousefi-cs/pdf-audio-converter/ui"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string

	rootCmd = &cobra.Command{
		Use:   "pdf-audio",
		Short: "Turn PDFs into speech and speech into PDFs",
		Long: paragraph(
			fmt.Sprintf("\nTurn PDFs into %s and speech back into PDFs. Run without a subcommand to use the interactive interface.", keyword("spoken audio")),
		),
		SilenceErrors: false,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return runTUI()
		},
	}
)

func runTUI() error {
	// Read environment to get debugging stuff
	uiCfg, err := env.ParseAs[ui.Config]()
	if err != nil {
		return fmt.Errorf("error parsing config: %v", err)
	}

	cfg, err := config.LoadFromViper()
	if err != nil {
		return err
	}

	if _, err := ui.NewProgram(uiCfg, cfg).Run(); err != nil {
		return fmt.Errorf("unable to run tui program: %w", err)
	}
	return nil
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	// Ctrl+C cancels the command's context instead of killing the process,
	// so an unlimited microphone recording ends in transcription rather
	// than being discarded.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	err = rootCmd.ExecuteContext(ctx)
	cancel()
	_ = closer()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))

	viper.SetDefault("tts.engine", "espeak")
	viper.SetDefault("tts.rate", 180)
	viper.SetDefault("tts.volume", 0.9)
	viper.SetDefault("stt.backend", "google")
	viper.SetDefault("stt.language", "en-US")
	viper.SetDefault("pdf.font", "Times")
	viper.SetDefault("pdf.font_size", 12)
	viper.SetDefault("pdf.margin_mm", 18)

	rootCmd.AddCommand(ttsCmd, sttCmd, configCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "pdf-audio")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not load find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "pdf-audio")}, dirs...)
	}

	if c := os.Getenv("PDF_AUDIO_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("pdf-audio")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("pdf_audio")
	// Maps nested keys to env vars: tts.rate becomes PDF_AUDIO_TTS_RATE.
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "pdf-audio.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
