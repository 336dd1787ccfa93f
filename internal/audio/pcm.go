// Package audio holds the PCM plumbing shared by the TTS engines, the
// microphone recorder, the speech recognizers and the playback path.
// Everything in this project speaks 16-bit little-endian PCM.
package audio

import (
	"errors"
	"fmt"
	"time"
)

// BytesPerSample is the size of one 16-bit sample.
const BytesPerSample = 2

// PCM is a chunk of signed 16-bit little-endian audio.
type PCM struct {
	Data       []byte
	SampleRate int
	Channels   int
}

// Duration returns the playback length of the buffer.
func (p *PCM) Duration() time.Duration {
	if p == nil || p.SampleRate <= 0 || p.Channels <= 0 {
		return 0
	}
	frames := len(p.Data) / (BytesPerSample * p.Channels)
	return time.Duration(frames) * time.Second / time.Duration(p.SampleRate)
}

// Empty reports whether the buffer carries no audio.
func (p *PCM) Empty() bool {
	return p == nil || len(p.Data) == 0
}

// Validate checks that the buffer is aligned and its format is sane.
func (p *PCM) Validate() error {
	if p.Empty() {
		return errors.New("empty PCM data")
	}
	if p.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate %d", p.SampleRate)
	}
	if p.Channels != 1 && p.Channels != 2 {
		return fmt.Errorf("channels must be 1 or 2, got %d", p.Channels)
	}
	if len(p.Data)%(BytesPerSample*p.Channels) != 0 {
		return fmt.Errorf("PCM data length %d is not frame aligned", len(p.Data))
	}
	return nil
}

// ApplyGain scales every sample by gain, clipping at the int16 range.
// gain 1.0 is a no-op; 0.0 silences the buffer.
func (p *PCM) ApplyGain(gain float64) {
	if p.Empty() || gain == 1.0 {
		return
	}
	for i := 0; i+1 < len(p.Data); i += 2 {
		s := int16(uint16(p.Data[i]) | uint16(p.Data[i+1])<<8)
		v := float64(s) * gain
		if v > 32767 {
			v = 32767
		} else if v < -32768 {
			v = -32768
		}
		out := int16(v)
		p.Data[i] = byte(uint16(out))
		p.Data[i+1] = byte(uint16(out) >> 8)
	}
}

// Resample converts the buffer to the target sample rate using
// nearest-sample selection. Good enough for speech; we never resample
// music here.
func (p *PCM) Resample(rate int) *PCM {
	if p.Empty() || rate <= 0 || rate == p.SampleRate {
		return p
	}
	frameSize := BytesPerSample * p.Channels
	frames := len(p.Data) / frameSize
	outFrames := int(int64(frames) * int64(rate) / int64(p.SampleRate))
	out := make([]byte, outFrames*frameSize)
	for i := 0; i < outFrames; i++ {
		src := int(int64(i) * int64(p.SampleRate) / int64(rate))
		if src >= frames {
			src = frames - 1
		}
		copy(out[i*frameSize:(i+1)*frameSize], p.Data[src*frameSize:(src+1)*frameSize])
	}
	return &PCM{Data: out, SampleRate: rate, Channels: p.Channels}
}
