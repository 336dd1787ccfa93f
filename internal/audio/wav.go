package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// WAV container errors.
var (
	ErrNotWAV            = errors.New("not a RIFF/WAVE file")
	ErrUnsupportedFormat = errors.New("unsupported WAV format (need 16-bit PCM)")
)

// EncodeWAV wraps a PCM buffer in a minimal RIFF/WAVE container.
func EncodeWAV(p *PCM) []byte {
	var buf bytes.Buffer
	dataLen := uint32(len(p.Data))
	byteRate := uint32(p.SampleRate * p.Channels * BytesPerSample)
	blockAlign := uint16(p.Channels * BytesPerSample)

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, 36+dataLen) //nolint:errcheck
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))            //nolint:errcheck
	binary.Write(&buf, binary.LittleEndian, uint16(1))             //nolint:errcheck // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(p.Channels))    //nolint:errcheck
	binary.Write(&buf, binary.LittleEndian, uint32(p.SampleRate))  //nolint:errcheck
	binary.Write(&buf, binary.LittleEndian, byteRate)              //nolint:errcheck
	binary.Write(&buf, binary.LittleEndian, blockAlign)            //nolint:errcheck
	binary.Write(&buf, binary.LittleEndian, uint16(8*BytesPerSample)) //nolint:errcheck

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataLen) //nolint:errcheck
	buf.Write(p.Data)

	return buf.Bytes()
}

// DecodeWAV parses a RIFF/WAVE container holding 16-bit PCM. Chunks other
// than fmt and data are skipped, so files with LIST/INFO metadata decode
// fine.
func DecodeWAV(data []byte) (*PCM, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, ErrNotWAV
	}

	var (
		pcm        PCM
		haveFormat bool
	)
	rest := data[12:]
	for len(rest) >= 8 {
		id := string(rest[0:4])
		size := binary.LittleEndian.Uint32(rest[4:8])
		body := rest[8:]
		if uint32(len(body)) < size {
			// Tools recording to a pipe (arecord, sox) cannot seek back
			// to patch the data size and leave a placeholder. Take what
			// is actually there for the data chunk only.
			if id != "data" {
				return nil, fmt.Errorf("%w: truncated %q chunk", ErrNotWAV, id)
			}
			size = uint32(len(body))
		}
		chunk := body[:size]

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, fmt.Errorf("%w: short fmt chunk", ErrNotWAV)
			}
			format := binary.LittleEndian.Uint16(chunk[0:2])
			channels := binary.LittleEndian.Uint16(chunk[2:4])
			rate := binary.LittleEndian.Uint32(chunk[4:8])
			bits := binary.LittleEndian.Uint16(chunk[14:16])
			if format != 1 || bits != 16 {
				return nil, fmt.Errorf("%w: format=%d bits=%d", ErrUnsupportedFormat, format, bits)
			}
			pcm.Channels = int(channels)
			pcm.SampleRate = int(rate)
			haveFormat = true
		case "data":
			pcm.Data = chunk
		}

		// chunks are word aligned
		advance := 8 + int(size)
		if size%2 == 1 {
			advance++
		}
		if advance > len(rest) {
			break
		}
		rest = rest[advance:]
	}

	if !haveFormat {
		return nil, fmt.Errorf("%w: missing fmt chunk", ErrNotWAV)
	}
	if len(pcm.Data) == 0 {
		return nil, fmt.Errorf("%w: missing data chunk", ErrNotWAV)
	}
	// Drop a trailing partial frame from interrupted captures.
	if frame := BytesPerSample * pcm.Channels; frame > 0 && len(pcm.Data)%frame != 0 {
		pcm.Data = pcm.Data[:len(pcm.Data)-len(pcm.Data)%frame]
	}
	if err := pcm.Validate(); err != nil {
		return nil, err
	}
	return &pcm, nil
}

// ReadWAVFile loads and decodes a WAV file from disk.
func ReadWAVFile(path string) (*PCM, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read audio file: %w", err)
	}
	return DecodeWAV(data)
}

// WriteWAVFile encodes the buffer and writes it atomically: the file only
// appears once the full container has been flushed.
func WriteWAVFile(p *PCM, path string) error {
	if err := p.Validate(); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, EncodeWAV(p), 0o644); err != nil {
		return fmt.Errorf("unable to write audio file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp) //nolint:errcheck
		return fmt.Errorf("unable to write audio file: %w", err)
	}
	return nil
}
