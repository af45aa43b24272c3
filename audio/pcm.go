package audio

import "encoding/binary"

// Samples are carried as int32 scaled to the full 32-bit range so widths
// convert by shifting.

func decode(frames []byte, width int) []int32 {
	out := make([]int32, len(frames)/width)
	for i := range out {
		b := frames[i*width : (i+1)*width]
		switch width {
		case 1:
			out[i] = (int32(b[0]) - 128) << 24
		case 2:
			out[i] = int32(int16(binary.LittleEndian.Uint16(b))) << 16
		case 3:
			out[i] = int32(uint32(b[0])<<8 | uint32(b[1])<<16 | uint32(b[2])<<24)
		case 4:
			out[i] = int32(binary.LittleEndian.Uint32(b))
		}
	}
	return out
}

func encode(samples []int32, width int) []byte {
	out := make([]byte, len(samples)*width)
	for i, s := range samples {
		b := out[i*width : (i+1)*width]
		switch width {
		case 1:
			b[0] = byte((s >> 24) + 128)
		case 2:
			binary.LittleEndian.PutUint16(b, uint16(s>>16))
		case 3:
			v := uint32(s)
			b[0], b[1], b[2] = byte(v>>8), byte(v>>16), byte(v>>24)
		case 4:
			binary.LittleEndian.PutUint32(b, uint32(s))
		}
	}
	return out
}

func downmix(samples []int32, channels int) []int32 {
	if channels == 1 {
		return samples
	}
	out := make([]int32, len(samples)/channels)
	for i := range out {
		var sum int64
		for c := 0; c < channels; c++ {
			sum += int64(samples[i*channels+c])
		}
		out[i] = int32(sum / int64(channels))
	}
	return out
}

// resample converts between rates with linear interpolation.
func resample(samples []int32, from, to int) []int32 {
	if from == to || len(samples) == 0 {
		return samples
	}
	n := int(int64(len(samples)) * int64(to) / int64(from))
	out := make([]int32, n)
	step := float64(from) / float64(to)
	last := len(samples) - 1
	for i := range out {
		pos := float64(i) * step
		j := int(pos)
		if j >= last {
			out[i] = samples[last]
			continue
		}
		frac := pos - float64(j)
		a, b := float64(samples[j]), float64(samples[j+1])
		out[i] = int32(a + (b-a)*frac)
	}
	return out
}
