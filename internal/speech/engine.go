package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/Mavwarf/boolflag/internal/audio"
)

// ErrUnavailable is returned when no speech backend exists on this system.
var ErrUnavailable = errors.New("speech not available")

// backend is a platform text-to-speech program.
type backend interface {
	Name() string
	// Voices lists the installed voices.
	Voices(ctx context.Context) ([]Voice, error)
	// Render synthesizes u and returns a WAV file.
	Render(ctx context.Context, u Utterance) ([]byte, error)
	// VoiceDirs are directories whose contents change when voices are
	// installed or removed.
	VoiceDirs() []string
}

// playFunc plays a WAV file, returning early when ctx is cancelled.
type playFunc func(ctx context.Context, wav []byte, volume float64) error

// Options configure New.
type Options struct {
	// Backend forces a specific program ("espeak-ng", "espeak", "say",
	// "sapi"). Empty means auto-detect.
	Backend string
	// Log receives render and playback errors. Nil discards them.
	Log io.Writer
}

// Engine owns the speech queue. Speak always supersedes whatever is
// queued or playing, so only the most recent utterance is ever heard.
// A nil *Engine, or one without a backend, is a silent no-op.
type Engine struct {
	b    backend
	play playFunc
	log  io.Writer

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	done   chan struct{} // closed when the current job returns

	cache renderCache

	vmu       sync.Mutex
	voices    []Voice
	listeners []func([]Voice)
}

// New detects a platform backend. When none is installed the returned
// engine reports Available() == false and every call is a no-op.
func New(opts Options) *Engine {
	return newEngine(detectBackend(opts.Backend), audio.PlayWAV, opts.Log)
}

func newEngine(b backend, play playFunc, log io.Writer) *Engine {
	return &Engine{b: b, play: play, log: log}
}

// Available reports whether a speech backend was found.
func (e *Engine) Available() bool {
	return e != nil && e.b != nil
}

// Backend returns the backend name, or "" when unavailable.
func (e *Engine) Backend() string {
	if !e.Available() {
		return ""
	}
	return e.b.Name()
}

// Speak cancels any pending or playing utterance and starts u. It does
// not wait for playback.
func (e *Engine) Speak(u Utterance) {
	if !e.Available() {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	e.mu.Lock()
	if e.cancel != nil {
		e.cancel()
	}
	prev := e.done
	e.gen++
	gen := e.gen
	e.cancel = cancel
	e.done = done
	e.mu.Unlock()

	go e.run(ctx, gen, prev, done, u)
}

func (e *Engine) run(ctx context.Context, gen uint64, prev, done chan struct{}, u Utterance) {
	// done closes only after every earlier job has returned, so waiting
	// on the newest job waits for the whole queue.
	defer func() {
		if prev != nil {
			<-prev
		}
		close(done)
	}()
	defer e.finish(gen)

	wav, err := e.render(ctx, u)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		e.logf("render %q: %v", u.Text, err)
		return
	}

	// The superseded job stops at its next poll; wait so the two never
	// share the device.
	if prev != nil {
		select {
		case <-prev:
		case <-ctx.Done():
			return
		}
	}
	if ctx.Err() != nil {
		return
	}

	if err := e.play(ctx, wav, volumeScale(u.Volume)); err != nil && ctx.Err() == nil {
		e.logf("play %q: %v", u.Text, err)
	}
}

// render returns the cached WAV for u or asks the backend for one.
func (e *Engine) render(ctx context.Context, u Utterance) ([]byte, error) {
	hash := renderHash(e.b.Name(), u)
	if wav, ok := e.cache.lookup(hash); ok {
		return wav, nil
	}
	wav, err := e.b.Render(ctx, u)
	if err != nil || ctx.Err() != nil {
		return nil, err
	}
	e.cache.add(hash, wav)
	return wav, nil
}

// finish releases the job's context if it is still the current one.
func (e *Engine) finish(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gen == gen && e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

// Cancel discards everything queued or playing.
func (e *Engine) Cancel() {
	if !e.Available() {
		return
	}
	e.mu.Lock()
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.mu.Unlock()
}

// Wait blocks until the most recent utterance has finished or was
// cancelled, or until ctx is done.
func (e *Engine) Wait(ctx context.Context) error {
	if !e.Available() {
		return nil
	}
	e.mu.Lock()
	done := e.done
	e.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Voices returns the last loaded voice list. It is empty until Load has
// completed at least once.
func (e *Engine) Voices() []Voice {
	if e == nil {
		return nil
	}
	e.vmu.Lock()
	defer e.vmu.Unlock()
	return slices.Clone(e.voices)
}

// OnVoicesChanged registers fn to be called with the new list whenever
// the voice list changes. fn may run on any goroutine.
func (e *Engine) OnVoicesChanged(fn func([]Voice)) {
	if e == nil || fn == nil {
		return
	}
	e.vmu.Lock()
	e.listeners = append(e.listeners, fn)
	e.vmu.Unlock()
}

// Load queries the backend for its voices. Listeners are notified when
// the list differs from the previous one.
func (e *Engine) Load(ctx context.Context) error {
	if !e.Available() {
		return ErrUnavailable
	}
	voices, err := e.b.Voices(ctx)
	if err != nil {
		return fmt.Errorf("listing voices: %w", err)
	}

	e.vmu.Lock()
	if slices.Equal(voices, e.voices) && e.voices != nil {
		e.vmu.Unlock()
		return nil
	}
	if voices == nil {
		voices = []Voice{}
	}
	e.voices = voices
	listeners := slices.Clone(e.listeners)
	e.vmu.Unlock()

	// A reinstalled voice may sound different under the same name.
	e.cache.clear()

	for _, fn := range listeners {
		fn(slices.Clone(voices))
	}
	return nil
}

func (e *Engine) logf(format string, args ...any) {
	if e.log == nil {
		return
	}
	fmt.Fprintf(e.log, "speech: "+format+"\n", args...)
}
