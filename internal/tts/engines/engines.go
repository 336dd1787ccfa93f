// Package engines provides the speech synthesis backends: espeak-ng and
// piper as subprocess wrappers, plus a deterministic mock for tests.
package engines

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/config"
	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/tts"
)

// New returns the engine selected by name. Selection happens once at
// startup; operations never dispatch on strings.
func New(name string, cfg config.TTSConfig) (tts.Engine, error) {
	switch name {
	case "espeak":
		return NewEspeak(cfg.Espeak), nil
	case "piper":
		return NewPiper(cfg.Piper), nil
	case "mock":
		return NewMock(), nil
	default:
		return nil, fmt.Errorf("unknown TTS engine %q", name)
	}
}

// runWithStdin executes a command feeding input on stdin. Stdin is wired
// before the process starts; attaching it afterwards races with the child
// reading an empty pipe.
func runWithStdin(ctx context.Context, input string, timeout time.Duration, name string, args ...string) ([]byte, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("%s timed out after %v", name, timeout)
	}
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s failed: %w: %s", name, err, msg)
		}
		return nil, fmt.Errorf("%s failed: %w", name, err)
	}
	return stdout.Bytes(), nil
}
