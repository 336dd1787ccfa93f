package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/x/editor"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultConfig = `# Speech synthesis settings
tts:
  # speech engine: espeak, piper, or mock
  engine: "espeak"
  # words per minute (clamped to 80-450)
  rate: 180
  # volume from 0.0 to 1.0
  volume: 0.9
  # voice name or language code, empty for the engine default
  voice: ""

  espeak:
    binary: "espeak-ng"
    timeout: "60s"

  piper:
    binary: "piper"
    # model: "/path/to/voice.onnx"
    timeout: "120s"

# Speech recognition settings
stt:
  # recognition backend: google or whisper
  backend: "google"
  # BCP-47 language code
  language: "en-US"
  # stop microphone recordings after this duration, 0s for unlimited
  mic_limit: "0s"

  google:
    # key: "your-api-key-here"
    timeout: "30s"
    requests_per_minute: 20

  whisper:
    binary: "whisper-cli"
    # model: "/path/to/ggml-base.bin"
    timeout: "300s"

# Generated PDF layout
pdf:
  font: "Times"
  font_size: 12
  margin_mm: 18
  title: "Transcription"
`

var configCmd = &cobra.Command{
	Use:     "config",
	Hidden:  false,
	Short:   "Edit the pdf-audio config file",
	Long:    paragraph(fmt.Sprintf("\n%s the pdf-audio config file. We’ll use EDITOR to determine which editor to use. If the config file doesn't exist, it will be created.", keyword("Edit"))),
	Example: paragraph("pdf-audio config\npdf-audio config --config path/to/config.yml"),
	Args:    cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		if err := ensureConfigFile(); err != nil {
			return err
		}

		c, err := editor.Cmd("pdf-audio", configFile)
		if err != nil {
			return fmt.Errorf("unable to set config file: %w", err)
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("unable to run command: %w", err)
		}

		fmt.Println("Wrote config file to:", configFile)
		return nil
	},
}

func ensureConfigFile() error {
	if configFile == "" {
		configFile = viper.GetViper().ConfigFileUsed()
		if err := os.MkdirAll(filepath.Dir(configFile), 0o755); err != nil { //nolint:gosec
			return fmt.Errorf("could not write configuration file: %w", err)
		}
	}

	if ext := path.Ext(configFile); ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("'%s' is not a supported configuration type: use '%s' or '%s'", ext, ".yaml", ".yml")
	}

	if _, err := os.Stat(configFile); errors.Is(err, fs.ErrNotExist) {
		// File doesn't exist yet, create all necessary directories and
		// write the default config file
		if err := os.MkdirAll(filepath.Dir(configFile), 0o700); err != nil {
			return fmt.Errorf("unable create directory: %w", err)
		}

		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("unable to create config file: %w", err)
		}
		defer func() { _ = f.Close() }()

		if _, err := f.WriteString(defaultConfig); err != nil {
			return fmt.Errorf("unable to write config file: %w", err)
		}
	} else if err != nil { // some other error occurred
		return fmt.Errorf("unable to stat config file: %w", err)
	}
	return nil
}
