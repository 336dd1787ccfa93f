// Package record captures microphone audio by shelling out to whichever
// capture tool the host has. There is no portable microphone API in pure
// Go; arecord, sox and ffmpeg cover the realistic desktop setups.
package record

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mobinyousefi-cs/pdf-audio-converter/internal/audio"
)

// ErrNoCaptureTool is returned when no supported recording tool is
// installed.
var ErrNoCaptureTool = errors.New("no microphone capture tool found (need arecord, sox or ffmpeg)")

// captureRate is what the recognizers want: 16 kHz mono.
const captureRate = 16000

// Recorder captures from the default microphone.
type Recorder struct {
	tool   string
	logger *log.Logger
}

// NewRecorder probes for a capture tool, preferring arecord.
func NewRecorder(logger *log.Logger) (*Recorder, error) {
	for _, tool := range []string{"arecord", "sox", "ffmpeg"} {
		if _, err := exec.LookPath(tool); err == nil {
			logger.Debug("using capture tool", "tool", tool)
			return &Recorder{tool: tool, logger: logger}, nil
		}
	}
	return nil, ErrNoCaptureTool
}

// Tool returns the capture tool in use.
func (r *Recorder) Tool() string { return r.tool }

// Record captures 16 kHz mono PCM from the default microphone. limit
// bounds the recording duration; zero records until ctx is cancelled.
func (r *Recorder) Record(ctx context.Context, limit time.Duration) (*audio.PCM, error) {
	if limit > 0 {
		var cancel context.CancelFunc
		// Small grace period so the tool's own duration flag fires first.
		ctx, cancel = context.WithTimeout(ctx, limit+2*time.Second)
		defer cancel()
	}

	args := r.args(limit)
	r.logger.Debug("recording", "tool", r.tool, "limit", limit)

	cmd := exec.CommandContext(ctx, r.tool, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	// An unlimited recording only ends by cancellation; the tool dying
	// to a signal is the expected outcome, not a failure.
	if err != nil && !(ctx.Err() != nil && stdout.Len() > 0) {
		if msg := stderr.String(); msg != "" {
			return nil, fmt.Errorf("%s failed: %w: %s", r.tool, err, msg)
		}
		return nil, fmt.Errorf("%s failed: %w", r.tool, err)
	}

	pcm, err := audio.DecodeWAV(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("capture produced no usable audio: %w", err)
	}
	return pcm, nil
}

// args builds the capture command line for the probed tool. All variants
// emit a WAV stream on stdout at 16 kHz mono.
func (r *Recorder) args(limit time.Duration) []string {
	seconds := int(limit.Round(time.Second) / time.Second)
	switch r.tool {
	case "arecord":
		args := []string{"-q", "-f", "S16_LE", "-r", strconv.Itoa(captureRate), "-c", "1", "-t", "wav"}
		if seconds > 0 {
			args = append(args, "-d", strconv.Itoa(seconds))
		}
		return append(args, "-")
	case "sox":
		args := []string{"-q", "-d", "-t", "wav", "-r", strconv.Itoa(captureRate), "-c", "1", "-b", "16", "-"}
		if seconds > 0 {
			args = append(args, "trim", "0", strconv.Itoa(seconds))
		}
		return args
	default: // ffmpeg
		args := []string{"-hide_banner", "-loglevel", "error", "-f", "alsa", "-i", "default",
			"-ar", strconv.Itoa(captureRate), "-ac", "1"}
		if seconds > 0 {
			args = append(args, "-t", strconv.Itoa(seconds))
		}
		return append(args, "-f", "wav", "-")
	}
}
