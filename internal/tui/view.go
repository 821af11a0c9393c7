package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// rect is a cell rectangle; x,y inclusive, x+w,y+h exclusive.
type rect struct{ x, y, w, h int }

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// view is everything one frame needs.
type view struct {
	width, height int
	clicks        int
	pressed       bool
	note          string
	background    []string // chicken rows, may be nil
}

var (
	flagUp = []string{
		"╭────────────────────────────╮",
		"│                            │",
		"│     B O O L E A N  flag    │",
		"│                            │",
		"╰────────────────────────────╯",
	}
	flagDown = []string{
		"┏━━━━━━━━━━━━━━━━━━━━━━━━━━━━┓",
		"┃                            ┃",
		"┃     B O O L E A N  flag    ┃",
		"┃                            ┃",
		"┗━━━━━━━━━━━━━━━━━━━━━━━━━━━━┛",
	}
)

// render lays out a frame and returns it with the flag's click target.
// Rows carrying text hide the chickens behind them.
func render(v view) (string, rect) {
	fg := []string{
		"◎ Boolean Flag",
		"",
		"Press Space or Enter, or click the flag, to chant “boolean flag”.",
		"",
	}
	flagTop := len(fg)
	art := flagUp
	if v.pressed {
		// pressed flag sinks one row, like the button on the web page
		fg = append(fg, "")
		art = flagDown
	}
	fg = append(fg, art...)
	if !v.pressed {
		fg = append(fg, "")
	}
	fg = append(fg,
		"",
		fmt.Sprintf("Clicks: %d", v.clicks),
		v.note,
		"",
		"q to quit",
	)

	top := max((v.height-len(fg))/2, 0)
	flagW := utf8.RuneCountInString(flagUp[0])
	target := rect{
		x: max((v.width-flagW)/2, 0),
		y: top + flagTop,
		w: flagW,
		h: len(flagUp) + 1,
	}

	var b strings.Builder
	b.WriteString("\033[H")
	for y := 0; y < v.height; y++ {
		i := y - top
		switch {
		case i >= 0 && i < len(fg) && fg[i] != "":
			b.WriteString(center(fg[i], v.width))
		case y < len(v.background):
			b.WriteString(v.background[y])
		}
		b.WriteString("\033[K")
		if y < v.height-1 {
			b.WriteString("\r\n")
		}
	}
	return b.String(), target
}

// center pads s on the left so it sits in the middle of width cells.
// Text is assumed to be one cell per rune.
func center(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return strings.Repeat(" ", (width-n)/2) + s
}
