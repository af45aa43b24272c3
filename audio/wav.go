package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const wavHeaderSize = 44

// Format describes PCM samples inside a WAV container.
type Format struct {
	SampleRate  int
	SampleWidth int
	Channels    int
}

func encodeWAV(pcm []byte, f Format) []byte {
	out := make([]byte, wavHeaderSize+len(pcm))
	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(36+len(pcm)))
	copy(out[8:12], "WAVE")
	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(out[20:22], 1)  // PCM format
	binary.LittleEndian.PutUint16(out[22:24], uint16(f.Channels))
	binary.LittleEndian.PutUint32(out[24:28], uint32(f.SampleRate))
	blockAlign := f.Channels * f.SampleWidth
	binary.LittleEndian.PutUint32(out[28:32], uint32(f.SampleRate*blockAlign))
	binary.LittleEndian.PutUint16(out[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:36], uint16(f.SampleWidth*8))
	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], uint32(len(pcm)))
	copy(out[wavHeaderSize:], pcm)
	return out
}

// ParseWAV reads a canonical PCM WAV file back into Data. Chunks other than
// fmt and data are skipped.
func ParseWAV(b []byte) (Data, error) {
	if len(b) < 12 || string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" {
		return Data{}, errors.New("wav: invalid header")
	}
	var (
		d         Data
		fmtParsed bool
	)
	rest := b[12:]
	for len(rest) >= 8 {
		id := string(rest[0:4])
		size := int(binary.LittleEndian.Uint32(rest[4:8]))
		rest = rest[8:]
		if size > len(rest) {
			return Data{}, fmt.Errorf("wav: chunk %q truncated", id)
		}
		switch id {
		case "fmt ":
			if size < 16 {
				return Data{}, errors.New("wav: invalid fmt chunk")
			}
			if f := binary.LittleEndian.Uint16(rest[0:2]); f != 1 {
				return Data{}, fmt.Errorf("wav: unsupported audio format %d", f)
			}
			d.Channels = int(binary.LittleEndian.Uint16(rest[2:4]))
			d.SampleRate = int(binary.LittleEndian.Uint32(rest[4:8]))
			d.SampleWidth = int(binary.LittleEndian.Uint16(rest[14:16])) / 8
			fmtParsed = true
		case "data":
			if !fmtParsed {
				return Data{}, errors.New("wav: data before fmt chunk")
			}
			d.Frames = rest[:size]
			return d, d.validate()
		}
		if size%2 == 1 && size < len(rest) {
			size++
		}
		rest = rest[size:]
	}
	return Data{}, errors.New("wav: data chunk missing")
}
