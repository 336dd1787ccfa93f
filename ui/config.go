package ui

// Config contains TUI-specific configuration.
type Config struct {
	HomeDir string `env:"HOME"`

	// Directory scanned for input files. Defaults to the working directory.
	Path string `env:"PDF_AUDIO_PATH"`

	// Show hidden and ignored files in the file pickers.
	ShowAllFiles bool `env:"PDF_AUDIO_SHOW_ALL_FILES"`
}
