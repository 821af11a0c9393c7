package tui

import (
	"bytes"
	"io"
	"strconv"
)

// event is either a key press or a left click at a 0-based cell.
type event struct {
	key   byte
	click bool
	x, y  int
}

const (
	keyCtrlC = 3
	keyCtrlD = 4
	keyEsc   = 0x1b
)

// Mouse reporting: button events (1000) in SGR encoding (1006).
const (
	mouseOn  = "\033[?1000h\033[?1006h"
	mouseOff = "\033[?1006l\033[?1000l"
)

// maxPending caps how much of an unfinished escape sequence is carried
// into the next read.
const maxPending = 32

// readInput forwards raw terminal input as events until r fails. An
// escape sequence split across reads is completed by the next read.
func readInput(r io.Reader) <-chan event {
	ch := make(chan event, 16)
	go func() {
		defer close(ch)
		buf := make([]byte, 256)
		var pending []byte
		for {
			n, err := r.Read(buf)
			evs, rest := splitInput(append(pending, buf[:n]...))
			for _, ev := range evs {
				ch <- ev
			}
			pending = nil
			if len(rest) <= maxPending {
				pending = append(pending, rest...)
			}
			if err != nil {
				return
			}
		}
	}()
	return ch
}

// parseInput splits a chunk of raw input into events. Escape sequences
// other than SGR left-button presses are dropped, as is an unfinished
// sequence at the end.
func parseInput(b []byte) []event {
	evs, _ := splitInput(b)
	return evs
}

// splitInput is parseInput that also returns an unfinished CSI sequence
// at the end of b.
func splitInput(b []byte) ([]event, []byte) {
	var out []event
	for len(b) > 0 {
		if b[0] != keyEsc || len(b) == 1 {
			out = append(out, event{key: b[0]})
			b = b[1:]
			continue
		}
		if b[1] != '[' {
			// Alt+key or a lone escape followed by a key.
			out = append(out, event{key: keyEsc})
			b = b[1:]
			continue
		}
		n, complete := sequenceLen(b)
		if !complete {
			return out, b
		}
		if ev, ok := parseSGRMouse(b[:n]); ok {
			out = append(out, ev)
		}
		b = b[n:]
	}
	return out, nil
}

// sequenceLen returns the length of the CSI sequence at the start of b,
// up to and including its final byte (0x40-0x7e). complete is false when
// b ends before the final byte.
func sequenceLen(b []byte) (n int, complete bool) {
	for i := 2; i < len(b); i++ {
		if b[i] == '<' || b[i] == ';' || b[i] == '?' || (b[i] >= '0' && b[i] <= '9') {
			continue
		}
		if b[i] >= 0x40 && b[i] <= 0x7e {
			return i + 1, true
		}
		return i, true
	}
	return len(b), false
}

// parseSGRMouse decodes "ESC [ < btn ; x ; y M". Only left-button
// presses count; releases (m), motion and wheel are ignored.
func parseSGRMouse(seq []byte) (event, bool) {
	if len(seq) < 9 || !bytes.HasPrefix(seq, []byte("\033[<")) || seq[len(seq)-1] != 'M' {
		return event{}, false
	}
	parts := bytes.Split(seq[3:len(seq)-1], []byte(";"))
	if len(parts) != 3 {
		return event{}, false
	}
	var nums [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(string(p))
		if err != nil {
			return event{}, false
		}
		nums[i] = v
	}
	if nums[0] != 0 {
		return event{}, false
	}
	return event{click: true, x: nums[1] - 1, y: nums[2] - 1}, true
}
