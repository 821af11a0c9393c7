package tui

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Mavwarf/boolflag/internal/page"
	"github.com/Mavwarf/boolflag/internal/speech"
)

func TestParseInputKeys(t *testing.T) {
	got := parseInput([]byte(" \rq"))
	if len(got) != 3 || got[0].key != ' ' || got[1].key != '\r' || got[2].key != 'q' {
		t.Errorf("events = %+v", got)
	}
}

func TestParseInputMouse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []event
	}{
		{"left press", "\033[<0;12;5M", []event{{click: true, x: 11, y: 4}}},
		{"release ignored", "\033[<0;12;5m", nil},
		{"right button ignored", "\033[<2;3;3M", nil},
		{"wheel ignored", "\033[<64;3;3M", nil},
		{"arrow key dropped", "\033[A", nil},
		{"press then key", "\033[<0;1;1M ", []event{{click: true}, {key: ' '}}},
		{"lone escape", "\033", []event{{key: keyEsc}}},
		{"alt key", "\033x", []event{{key: keyEsc}, {key: 'x'}}},
		{"truncated", "\033[<0;1", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseInput([]byte(tt.in))
			if len(got) != len(tt.want) {
				t.Fatalf("events = %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("event %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestReadInputJoinsSplitSequence(t *testing.T) {
	r := io.MultiReader(
		strings.NewReader("\033[<0;40"),
		strings.NewReader(";10M"),
		strings.NewReader(" "),
	)
	var got []event
	for ev := range readInput(r) {
		got = append(got, ev)
	}
	want := []event{{click: true, x: 39, y: 9}, {key: ' '}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("events = %+v, want %+v", got, want)
	}
}

func TestSplitInputKeepsUnfinishedSequence(t *testing.T) {
	evs, rest := splitInput([]byte("q\033[<0;1"))
	if len(evs) != 1 || evs[0].key != 'q' {
		t.Errorf("events = %+v", evs)
	}
	if string(rest) != "\033[<0;1" {
		t.Errorf("rest = %q", rest)
	}
}

func TestRenderLayout(t *testing.T) {
	frame, target := render(view{width: 80, height: 24, clicks: 7, note: "Speech needs espeak-ng."})

	rows := strings.Split(frame, "\r\n")
	if len(rows) != 24 {
		t.Fatalf("rows = %d, want 24", len(rows))
	}
	for _, want := range []string{"Boolean Flag", "Clicks: 7", "Speech needs espeak-ng.", "B O O L E A N  flag"} {
		if !strings.Contains(frame, want) {
			t.Errorf("frame is missing %q", want)
		}
	}
	if target.w != 30 || target.x != 25 {
		t.Errorf("target = %+v", target)
	}
	// The flag's middle row is inside the target.
	mid := target.y + 2
	if !strings.Contains(rows[mid], "B O O L E A N") {
		t.Errorf("row %d = %q, want the flag label", mid, rows[mid])
	}
}

func TestRenderPressedSinks(t *testing.T) {
	up, _ := render(view{width: 80, height: 24})
	down, _ := render(view{width: 80, height: 24, pressed: true})

	row := func(frame, s string) int {
		for i, r := range strings.Split(frame, "\r\n") {
			if strings.Contains(r, s) {
				return i
			}
		}
		return -1
	}
	if a, b := row(up, "B O O L E A N"), row(down, "B O O L E A N"); b != a+1 {
		t.Errorf("label row: up %d, pressed %d", a, b)
	}
	if !strings.Contains(down, "┏") {
		t.Error("pressed flag should use the heavy border")
	}
}

func TestRenderShowsChickensBehindText(t *testing.T) {
	bg := make([]string, 24)
	for i := range bg {
		bg[i] = "chickenrow"
	}
	frame, _ := render(view{width: 80, height: 24, background: bg})
	rows := strings.Split(frame, "\r\n")
	if !strings.HasPrefix(rows[0], "\033[Hchickenrow") {
		t.Errorf("row 0 = %q", rows[0])
	}
	if n := strings.Count(frame, "chickenrow"); n >= 24 {
		t.Errorf("background shows on %d rows; text rows should hide it", n)
	}
}

func TestRenderTinyTerminal(t *testing.T) {
	frame, _ := render(view{width: 10, height: 3})
	if n := len(strings.Split(frame, "\r\n")); n != 3 {
		t.Errorf("rows = %d, want 3", n)
	}
}

type fakeSpeaker struct {
	mu     sync.Mutex
	spoken int
}

func (f *fakeSpeaker) Speak(speech.Utterance) {
	f.mu.Lock()
	f.spoken++
	f.mu.Unlock()
}
func (f *fakeSpeaker) Voices() []speech.Voice                 { return nil }
func (f *fakeSpeaker) OnVoicesChanged(fn func([]speech.Voice)) {}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func runLoop(t *testing.T, evs ...event) (*page.Page, *fakeSpeaker, string) {
	t.Helper()
	sp := &fakeSpeaker{}
	p := page.New(sp, page.Options{})
	events := make(chan event, len(evs))
	for _, ev := range evs {
		events <- ev
	}
	close(events)

	var out syncBuffer
	size := func() (int, int) { return 80, 24 }
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := loop(ctx, p, events, size, &out, Options{Chickens: true, Note: "note"}); err != nil {
		t.Fatalf("loop: %v", err)
	}
	return p, sp, out.String()
}

func TestLoopKeysActivate(t *testing.T) {
	p, sp, out := runLoop(t, event{key: ' '}, event{key: '\r'}, event{key: 'x'}, event{key: ' '})
	if p.Clicks() != 3 || sp.spoken != 3 {
		t.Errorf("clicks = %d, spoken = %d, want 3", p.Clicks(), sp.spoken)
	}
	if !strings.Contains(out, "Clicks: 3") {
		t.Error("final frame should show Clicks: 3")
	}
}

func TestLoopClickOnFlag(t *testing.T) {
	_, target := render(view{width: 80, height: 24})
	p, _, _ := runLoop(t,
		event{click: true, x: target.x + 3, y: target.y + 2},
		event{click: true, x: 0, y: 0}, // outside the flag
	)
	if p.Clicks() != 1 {
		t.Errorf("clicks = %d, want 1", p.Clicks())
	}
}

func TestLoopQuitKeys(t *testing.T) {
	for _, k := range []byte{'q', 'Q', keyCtrlC, keyCtrlD} {
		p, _, _ := runLoop(t, event{key: k}, event{key: ' '})
		if p.Clicks() != 0 {
			t.Errorf("key %q should quit before the space, clicks = %d", k, p.Clicks())
		}
	}
}

func TestLoopStopsOnContext(t *testing.T) {
	p := page.New(nil, page.Options{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- loop(ctx, p, make(chan event), func() (int, int) { return 40, 10 }, &syncBuffer{}, Options{})
	}()
	time.Sleep(3 * frameInterval)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("loop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop")
	}
}
