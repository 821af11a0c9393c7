package audio

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

var (
	otoCtx     *oto.Context
	otoOnce    sync.Once
	otoInitErr error
)

// pollInterval is how often a playing clip checks for completion or
// cancellation.
const pollInterval = 5 * time.Millisecond

func getContext() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   SampleRate,
			ChannelCount: 2,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		otoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return otoCtx, otoInitErr
}

// PlayWAV decodes a WAV file and plays it. See Play.
func PlayWAV(ctx context.Context, wav []byte, volume float64) error {
	pcm, err := DecodeWAV(wav)
	if err != nil {
		return err
	}
	return Play(ctx, pcm, volume)
}

// Play plays stereo 16-bit LE PCM at SampleRate through the shared
// device, blocking until it ends. Cancelling ctx stops playback at once
// and returns ctx.Err(). volume is a multiplier from 0.0 to 1.0.
func Play(ctx context.Context, pcm []byte, volume float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	out, err := getContext()
	if err != nil {
		return fmt.Errorf("initializing audio: %w", err)
	}

	player := out.NewPlayer(bytes.NewReader(pcm))
	player.SetVolume(clampVolume(volume))
	player.Play()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			player.Close()
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return player.Close()
}

func clampVolume(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
