package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
)

const (
	// SampleRate is the rate every decoded clip is resampled to.
	SampleRate = 44100

	// maxWAVSize bounds what we accept from a synthesizer (50 MB).
	maxWAVSize = 50 * 1024 * 1024
)

var errNotWAV = errors.New("wav: not a RIFF/WAVE file")

// wavFormat is the part of the fmt chunk we care about.
type wavFormat struct {
	channels      int
	sampleRate    int
	bitsPerSample int
}

func (f wavFormat) bytesPerSample() int { return f.bitsPerSample / 8 }
func (f wavFormat) frameSize() int      { return f.bytesPerSample() * f.channels }

// LoadWAV reads a WAV file from disk and decodes it like DecodeWAV.
func LoadWAV(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}
	return DecodeWAV(data)
}

// DecodeWAV converts a WAV file into stereo 16-bit signed LE PCM at
// SampleRate. PCM format only (format code 1), 8/16/24-bit, mono or
// stereo. Other rates are resampled by linear interpolation.
//
// espeak writes a data chunk size of 0xFFFFFFFF when streaming to
// stdout; a size running past the end is clamped to what is present.
func DecodeWAV(data []byte) ([]byte, error) {
	if len(data) > maxWAVSize {
		return nil, fmt.Errorf("wav: too large (%d bytes, max %d)", len(data), maxWAVSize)
	}
	if len(data) < 44 {
		return nil, fmt.Errorf("wav: too short (%d bytes)", len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, errNotWAV
	}

	f, err := parseFormat(data)
	if err != nil {
		return nil, err
	}

	off, size, err := findChunk(data, "data")
	if err != nil {
		return nil, err
	}
	if size < 0 || off+size > len(data) {
		size = len(data) - off
	}
	raw := data[off : off+size]

	frames := len(raw) / f.frameSize()
	if frames == 0 {
		return nil, fmt.Errorf("wav: no audio data")
	}

	// Interleaved stereo float samples; mono is duplicated to both sides.
	samples := make([]float64, frames*2)
	step := f.bytesPerSample()
	for i := 0; i < frames; i++ {
		at := i * f.frameSize()
		left := decodeSample(raw[at:], f.bitsPerSample)
		right := left
		if f.channels == 2 {
			right = decodeSample(raw[at+step:], f.bitsPerSample)
		}
		samples[i*2] = left
		samples[i*2+1] = right
	}

	if f.sampleRate != SampleRate {
		samples = resampleLinear(samples, f.sampleRate, SampleRate)
	}

	pcm := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(clamp16(s)))
	}
	return pcm, nil
}

func parseFormat(data []byte) (wavFormat, error) {
	off, size, err := findChunk(data, "fmt ")
	if err != nil {
		return wavFormat{}, err
	}
	if size < 16 || off+16 > len(data) {
		return wavFormat{}, fmt.Errorf("wav: fmt chunk too short")
	}
	chunk := data[off : off+16]

	if code := binary.LittleEndian.Uint16(chunk[0:2]); code != 1 {
		return wavFormat{}, fmt.Errorf("wav: unsupported format %d (only PCM)", code)
	}
	f := wavFormat{
		channels:      int(binary.LittleEndian.Uint16(chunk[2:4])),
		sampleRate:    int(binary.LittleEndian.Uint32(chunk[4:8])),
		bitsPerSample: int(binary.LittleEndian.Uint16(chunk[14:16])),
	}
	if f.channels != 1 && f.channels != 2 {
		return wavFormat{}, fmt.Errorf("wav: unsupported channel count %d", f.channels)
	}
	switch f.bitsPerSample {
	case 8, 16, 24, 32:
	default:
		return wavFormat{}, fmt.Errorf("wav: unsupported bit depth %d", f.bitsPerSample)
	}
	if f.sampleRate <= 0 {
		return wavFormat{}, fmt.Errorf("wav: invalid sample rate %d", f.sampleRate)
	}
	return f, nil
}

// findChunk returns the offset and declared size of the first chunk
// with the given ID. Chunks are word-aligned.
func findChunk(data []byte, id string) (int, int, error) {
	off := 12
	for off+8 <= len(data) {
		size := int(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		if string(data[off:off+4]) == id {
			return off + 8, size, nil
		}
		off += 8 + size + size%2
	}
	return 0, 0, fmt.Errorf("wav: %q chunk not found", id)
}

// decodeSample returns the sample at the start of b scaled to [-1, 1].
func decodeSample(b []byte, bits int) float64 {
	switch bits {
	case 8:
		// unsigned, 128 is silence
		return (float64(b[0]) - 128) / 128
	case 16:
		return float64(int16(binary.LittleEndian.Uint16(b))) / 32768
	case 24:
		v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
		if v&0x800000 != 0 {
			v -= 1 << 24
		}
		return float64(v) / 8388608
	case 32:
		return float64(int32(binary.LittleEndian.Uint32(b))) / 2147483648
	}
	return 0
}

// resampleLinear converts interleaved stereo samples between rates.
func resampleLinear(in []float64, from, to int) []float64 {
	n := len(in) / 2
	ratio := float64(from) / float64(to)
	outFrames := int(math.Ceil(float64(n) / ratio))
	out := make([]float64, outFrames*2)
	for i := 0; i < outFrames; i++ {
		pos := float64(i) * ratio
		j := int(pos)
		frac := pos - float64(j)
		for c := 0; c < 2; c++ {
			switch {
			case j+1 < n:
				out[i*2+c] = in[j*2+c]*(1-frac) + in[(j+1)*2+c]*frac
			case j < n:
				out[i*2+c] = in[j*2+c]
			}
		}
	}
	return out
}

func clamp16(f float64) int16 {
	s := f * 32767
	switch {
	case s > 32767:
		return 32767
	case s < -32768:
		return -32768
	}
	return int16(s)
}
