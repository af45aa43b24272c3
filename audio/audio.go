package audio

import (
	"errors"
	"fmt"
	"time"
)

// Source is captured audio that can render itself as a WAV file.
type Source interface {
	WAV(sampleRate, sampleWidth int) ([]byte, error)
}

// Data is raw little-endian PCM as captured by the host. 8-bit samples are
// unsigned, wider samples are signed. Frames of multi-channel audio are
// interleaved.
type Data struct {
	Frames      []byte
	SampleRate  int
	SampleWidth int // bytes per sample, 1 to 4
	Channels    int // 0 is treated as mono
}

// ErrInvalidFormat reports unusable rate, width or channel values.
var ErrInvalidFormat = errors.New("audio: invalid format")

func (d Data) channels() int {
	if d.Channels <= 0 {
		return 1
	}
	return d.Channels
}

func (d Data) validate() error {
	if d.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidFormat, d.SampleRate)
	}
	if d.SampleWidth < 1 || d.SampleWidth > 4 {
		return fmt.Errorf("%w: sample width %d", ErrInvalidFormat, d.SampleWidth)
	}
	if frame := d.SampleWidth * d.channels(); len(d.Frames)%frame != 0 {
		return fmt.Errorf("%w: %d bytes is not a whole number of %d-byte frames", ErrInvalidFormat, len(d.Frames), frame)
	}
	return nil
}

// Duration is the playback length of the captured frames.
func (d Data) Duration() time.Duration {
	bytesPerSecond := d.SampleRate * d.SampleWidth * d.channels()
	if bytesPerSecond <= 0 {
		return 0
	}
	return time.Duration(float64(len(d.Frames)) / float64(bytesPerSecond) * float64(time.Second))
}

// WAV renders the audio as a mono PCM WAV file at the given sample rate and
// width. Zero values keep the captured rate or width.
func (d Data) WAV(sampleRate, sampleWidth int) ([]byte, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	if sampleRate == 0 {
		sampleRate = d.SampleRate
	}
	if sampleWidth == 0 {
		sampleWidth = d.SampleWidth
	}
	if sampleRate < 0 || sampleWidth < 1 || sampleWidth > 4 {
		return nil, fmt.Errorf("%w: target %d Hz / %d bytes", ErrInvalidFormat, sampleRate, sampleWidth)
	}

	samples := decode(d.Frames, d.SampleWidth)
	samples = downmix(samples, d.channels())
	samples = resample(samples, d.SampleRate, sampleRate)

	return encodeWAV(encode(samples, sampleWidth), Format{
		SampleRate:  sampleRate,
		SampleWidth: sampleWidth,
		Channels:    1,
	}), nil
}
