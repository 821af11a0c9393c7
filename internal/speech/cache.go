package speech

import (
	"crypto/sha256"
	"fmt"
	"sync"
)

// maxCachedRenders bounds the cache; one entry per voice is the
// common case.
const maxCachedRenders = 8

// renderCache keeps rendered WAVs so repeated chants skip the backend.
// Entries live for the process only.
type renderCache struct {
	mu      sync.Mutex
	entries map[string][]byte // hash -> wav
	order   []string          // oldest first
}

// renderHash returns a truncated SHA-256 of everything that changes the
// rendered audio (16 hex chars). Volume is applied at playback and is
// not part of it.
func renderHash(backend string, u Utterance) string {
	voice := ""
	if u.Voice != nil {
		voice = u.Voice.id()
	}
	h := sha256.Sum256(fmt.Appendf(nil, "%s\x00%s\x00%s\x00%g\x00%g", backend, voice, u.Text, u.Rate, u.Pitch))
	return fmt.Sprintf("%x", h[:8])
}

func (c *renderCache) lookup(hash string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	wav, ok := c.entries[hash]
	return wav, ok
}

// add stores wav, evicting the oldest entry when full.
func (c *renderCache) add(hash string, wav []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = make(map[string][]byte)
	}
	if _, ok := c.entries[hash]; ok {
		return
	}
	if len(c.order) >= maxCachedRenders {
		delete(c.entries, c.order[0])
		c.order = c.order[1:]
	}
	c.entries[hash] = wav
	c.order = append(c.order, hash)
}

// clear drops every entry. Called when the installed voices change.
func (c *renderCache) clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.entries)
	c.entries = nil
	c.order = nil
	return n
}
