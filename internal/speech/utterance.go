package speech

import "math"

// Phrase is the only thing boolflag ever says.
const Phrase = "boolean flag"

const (
	DefaultRate   = 1.1
	DefaultPitch  = 1.0
	DefaultVolume = 100

	// baseWPM is the espeak and say default speaking rate, i.e. rate 1.0.
	baseWPM = 175
)

// Utterance is one speech request. A fresh one is built per activation.
type Utterance struct {
	Text   string
	Rate   float64 // 1.0 = platform default speed
	Pitch  float64 // 1.0 = platform default pitch
	Voice  *Voice  // nil = platform default voice
	Volume int     // 0-100, scales playback only
}

// NewUtterance returns the chant with the fixed rate and pitch.
func NewUtterance(v *Voice, volume int) Utterance {
	return Utterance{
		Text:   Phrase,
		Rate:   DefaultRate,
		Pitch:  DefaultPitch,
		Voice:  v,
		Volume: volume,
	}
}

// wordsPerMinute maps a relative rate to the espeak/say -s/-r value.
func wordsPerMinute(rate float64) int {
	if rate <= 0 {
		rate = 1
	}
	return int(math.Round(baseWPM * rate))
}

// espeakPitch maps a relative pitch to espeak's 0-99 scale (50 = default).
func espeakPitch(pitch float64) int {
	if pitch <= 0 {
		pitch = 1
	}
	p := int(math.Round(50 * pitch))
	if p > 99 {
		return 99
	}
	return p
}

// sapiRate maps a relative rate to System.Speech's -10..10 scale.
func sapiRate(rate float64) int {
	if rate <= 0 {
		rate = 1
	}
	r := int(math.Round((rate - 1) * 10))
	if r < -10 {
		return -10
	}
	if r > 10 {
		return 10
	}
	return r
}

// volumeScale converts 0-100 into the player's 0.0-1.0 multiplier.
func volumeScale(volume int) float64 {
	if volume < 0 {
		return 1
	}
	if volume > 100 {
		volume = 100
	}
	return float64(volume) / 100.0
}
