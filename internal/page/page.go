// Package page holds the state behind the flag: the click counter and
// the voice the chant is spoken with. Every frontend (terminal, tray)
// drives the same Page.
package page

import (
	"sync"

	"github.com/Mavwarf/boolflag/internal/speech"
)

// Speaker is the speech capability a Page needs. *speech.Engine
// implements it; nil means speech is unavailable.
type Speaker interface {
	Speak(u speech.Utterance)
	Voices() []speech.Voice
	OnVoicesChanged(fn func([]speech.Voice))
}

// Options configure a Page.
type Options struct {
	// PreferredVoice, when installed, is used instead of the automatic
	// choice.
	PreferredVoice string
	// Volume is the playback volume 0-100.
	Volume int
	// OnActivate runs after each activation with the new count.
	OnActivate func(clicks int)
	// OnVoiceChange runs after every voice selection, including the
	// first one made in New.
	OnVoiceChange func(v speech.Voice, ok bool)
}

// Page is one session of the flag. Nothing on it is persisted.
type Page struct {
	sp   Speaker
	opts Options

	mu       sync.Mutex
	clicks   int
	voice    *speech.Voice
	notified bool // a voice-list notification has been applied
}

// New creates a Page and subscribes it to voice list changes. The
// subscription comes first so a list published while New runs is never
// missed.
func New(sp Speaker, opts Options) *Page {
	p := &Page{sp: sp, opts: opts}
	if sp != nil {
		sp.OnVoicesChanged(func(voices []speech.Voice) { p.selectVoice(voices, true) })
		p.selectVoice(sp.Voices(), false)
	}
	return p
}

// Activate counts the click and chants.
func (p *Page) Activate() {
	p.mu.Lock()
	p.clicks++
	clicks := p.clicks
	var v *speech.Voice
	if p.voice != nil {
		cp := *p.voice
		v = &cp
	}
	p.mu.Unlock()

	if p.sp != nil {
		p.sp.Speak(speech.NewUtterance(v, p.opts.Volume))
	}
	if p.opts.OnActivate != nil {
		p.opts.OnActivate(clicks)
	}
}

// Key codes that activate the flag.
const (
	KeySpace = ' '
	KeyEnter = '\r'
	KeyLF    = '\n'
)

// HandleKey activates the flag for Space or Enter and reports whether
// the key was consumed. Consumed keys must not reach the terminal.
func (p *Page) HandleKey(k byte) bool {
	switch k {
	case KeySpace, KeyEnter, KeyLF:
		p.Activate()
		return true
	}
	return false
}

// Clicks returns the number of activations this session.
func (p *Page) Clicks() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clicks
}

// Voice returns the selected voice, or false when the platform default
// will be used.
func (p *Page) Voice() (speech.Voice, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.voice == nil {
		return speech.Voice{}, false
	}
	return *p.voice, true
}

// selectVoice applies the preference order to voices. The initial
// selection from New yields to any notification that already landed.
func (p *Page) selectVoice(voices []speech.Voice, notification bool) {
	v, ok := speech.FindVoice(voices, p.opts.PreferredVoice)
	if !ok {
		v, ok = speech.SelectVoice(voices)
	}

	p.mu.Lock()
	if !notification && p.notified {
		p.mu.Unlock()
		return
	}
	if notification {
		p.notified = true
	}
	if ok {
		p.voice = &v
	} else {
		p.voice = nil
	}
	p.mu.Unlock()

	if p.opts.OnVoiceChange != nil {
		p.opts.OnVoiceChange(v, ok)
	}
}
