// Package tui renders the flag in a terminal: raw mode, a redraw loop,
// and keyboard and mouse activation.
package tui

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/Mavwarf/boolflag/internal/chickens"
	"github.com/Mavwarf/boolflag/internal/page"
)

// ErrNotTerminal is returned by Run when stdin is not a terminal.
var ErrNotTerminal = errors.New("not a terminal")

const (
	frameInterval = 50 * time.Millisecond
	pressDuration = 150 * time.Millisecond
	burstSize     = 6

	enterScreen = "\033[?1049h\033[?25l\033[2J"
	leaveScreen = "\033[?25h\033[?1049l"
)

// Options configure the terminal page.
type Options struct {
	// Chickens enables the falling chicken animation.
	Chickens bool
	// Note is the advisory line under the counter. It should call out
	// that speech depends on a local speech engine.
	Note string
}

// Run takes over the terminal until the user quits or ctx is done.
func Run(ctx context.Context, p *page.Page, in, out *os.File, opts Options) error {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return ErrNotTerminal
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer term.Restore(fd, oldState)

	io.WriteString(out, enterScreen+mouseOn)
	defer io.WriteString(out, mouseOff+leaveScreen)

	size := func() (int, int) {
		w, h, err := term.GetSize(int(out.Fd()))
		if err != nil || w <= 0 || h <= 0 {
			return 80, 24
		}
		return w, h
	}
	return loop(ctx, p, readInput(in), size, out, opts)
}

// loop redraws every frameInterval and dispatches input. It returns nil
// on q, Ctrl+C, Ctrl+D, end of input or ctx cancellation.
func loop(ctx context.Context, p *page.Page, events <-chan event, size func() (int, int), out io.Writer, opts Options) error {
	w, h := size()
	field := chickens.New(w, h, nil)
	var pressedUntil time.Time
	var target rect

	activated := func() {
		pressedUntil = time.Now().Add(pressDuration)
		if opts.Chickens {
			field.Burst(burstSize)
		}
	}

	draw := func() error {
		if nw, nh := size(); nw != w || nh != h {
			w, h = nw, nh
			field.Resize(w, h)
			io.WriteString(out, "\033[2J")
		}
		v := view{
			width:   w,
			height:  h,
			clicks:  p.Clicks(),
			pressed: time.Now().Before(pressedUntil),
			note:    opts.Note,
		}
		if opts.Chickens {
			v.background = field.Render()
		}
		var frame string
		frame, target = render(v)
		_, err := io.WriteString(out, frame)
		return err
	}

	if err := draw(); err != nil {
		return err
	}

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch {
			case ev.click:
				if target.contains(ev.x, ev.y) {
					p.Activate()
					activated()
				}
			case ev.key == 'q' || ev.key == 'Q' || ev.key == keyCtrlC || ev.key == keyCtrlD:
				return nil
			case p.HandleKey(ev.key):
				activated()
			}
			if err := draw(); err != nil {
				return err
			}
		case <-ticker.C:
			field.Step()
			if err := draw(); err != nil {
				return err
			}
		}
	}
}
