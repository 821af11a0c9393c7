package main

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/energye/systray"

	"github.com/Mavwarf/boolflag/internal/config"
	"github.com/Mavwarf/boolflag/internal/icon"
	"github.com/Mavwarf/boolflag/internal/page"
	"github.com/Mavwarf/boolflag/internal/speech"
)

const iconSize = 64

// tray is the flag as a system tray icon. Clicking the icon or the
// "Boolean flag" menu item presses the flag.
type tray struct {
	page      *page.Page
	available bool

	mu        sync.Mutex
	voiceItem *systray.MenuItem
	pending   string // voice label chosen before the menu exists
}

func newTray(eng *speech.Engine, cfg config.Config) *tray {
	t := &tray{available: eng.Available()}
	t.page = page.New(eng, page.Options{
		PreferredVoice: cfg.Voice,
		Volume:         cfg.Volume,
		OnActivate:     func(clicks int) { systray.SetTooltip(tooltip(clicks)) },
		OnVoiceChange:  t.voiceChanged,
	})
	return t
}

// run blocks until Quit is selected.
func (t *tray) run() {
	// The hidden window systray creates and its message loop must share
	// a thread.
	runtime.LockOSThread()
	systray.Run(t.onReady, func() {})
}

func (t *tray) onReady() {
	png, err := icon.PNG(iconSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "boolflag-tray: icon: %v\n", err)
	} else {
		systray.SetIcon(icon.ToICO(png, iconSize))
	}
	systray.SetTooltip(tooltip(0))
	systray.SetOnClick(func(menu systray.IMenu) { t.page.Activate() })
	systray.SetOnRClick(func(menu systray.IMenu) { menu.ShowMenu() })

	mFlag := systray.AddMenuItem("Boolean flag", "Say \"boolean flag\"")
	mFlag.Click(func() { t.page.Activate() })

	t.mu.Lock()
	t.voiceItem = systray.AddMenuItem(t.voiceLabel(), "Voice used for the chant")
	t.voiceItem.Disable()
	t.mu.Unlock()

	systray.AddSeparator()

	mQuit := systray.AddMenuItem("Quit", "Exit boolflag-tray")
	mQuit.Click(func() { systray.Quit() })
}

func (t *tray) voiceChanged(v speech.Voice, ok bool) {
	label := voiceLabel(v, ok, t.available)
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.voiceItem == nil {
		t.pending = label
		return
	}
	t.voiceItem.SetTitle(label)
}

// voiceLabel must be called with t.mu held.
func (t *tray) voiceLabel() string {
	if t.pending != "" {
		return t.pending
	}
	v, ok := t.page.Voice()
	return voiceLabel(v, ok, t.available)
}

func tooltip(clicks int) string {
	return fmt.Sprintf("Boolean flag - Clicks: %d", clicks)
}

func voiceLabel(v speech.Voice, ok, available bool) string {
	switch {
	case !available:
		return "Voice: no speech engine"
	case !ok:
		return "Voice: default"
	}
	return "Voice: " + v.Name
}
