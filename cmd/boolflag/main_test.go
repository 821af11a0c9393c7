package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Mavwarf/boolflag/internal/config"
	"github.com/Mavwarf/boolflag/internal/page"
	"github.com/Mavwarf/boolflag/internal/speech"
)

func TestResolveVolumeCLIOverride(t *testing.T) {
	cfg := config.Config{Volume: 80}
	if got := resolveVolume(50, cfg); got != 50 {
		t.Errorf("resolveVolume(50, cfg) = %d, want 50", got)
	}
}

func TestResolveVolumeFallsBackToConfig(t *testing.T) {
	cfg := config.Config{Volume: 80}
	if got := resolveVolume(-1, cfg); got != 80 {
		t.Errorf("resolveVolume(-1, cfg) = %d, want 80", got)
	}
}

func TestResolveVolumeZeroIsAnOverride(t *testing.T) {
	cfg := config.Config{Volume: 80}
	if got := resolveVolume(0, cfg); got != 0 {
		t.Errorf("resolveVolume(0, cfg) = %d, want 0", got)
	}
}

func TestParseArgs(t *testing.T) {
	f, rest, err := parseArgs([]string{"say", "-v", "40", "--voice", "Karen", "--backend", "espeak-ng", "--verbose", "--no-chickens"})
	if err != nil {
		t.Fatal(err)
	}
	if len(rest) != 1 || rest[0] != "say" {
		t.Errorf("rest = %v, want [say]", rest)
	}
	if f.volume != 40 || f.voice != "Karen" || f.backend != "espeak-ng" || !f.verbose || !f.noChickens {
		t.Errorf("flags = %+v", f)
	}
}

func TestParseArgsDefaults(t *testing.T) {
	f, rest, err := parseArgs(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(rest) != 0 || f.volume != -1 || f.configPath != "" {
		t.Errorf("flags = %+v, rest = %v", f, rest)
	}
}

func TestParseArgsErrors(t *testing.T) {
	tests := [][]string{
		{"--volume"},
		{"--volume", "loud"},
		{"-v", "101"},
		{"-v", "-1"},
		{"--config"},
		{"--voice"},
		{"--listen"},
		{"--backend"},
	}
	for _, args := range tests {
		if _, _, err := parseArgs(args); err == nil {
			t.Errorf("parseArgs(%q) should fail", args)
		}
	}
}

func TestApplyFlags(t *testing.T) {
	cfg := config.Default()
	cfg.Voice = "Lee"

	got := applyFlags(cfg, flags{volume: -1})
	if got != cfg {
		t.Errorf("no flags changed the config: %+v", got)
	}

	got = applyFlags(cfg, flags{volume: 10, voice: "Karen", listen: "127.0.0.1:9000", verbose: true, noChickens: true})
	if got.Volume != 10 || got.Voice != "Karen" || got.Listen != "127.0.0.1:9000" || !got.Verbose || got.Chickens {
		t.Errorf("applyFlags = %+v", got)
	}
}

func TestPrintVoicesMarksChosen(t *testing.T) {
	voices := []speech.Voice{
		{Name: "Alex", Lang: "en_US"},
		{Name: "Karen", Lang: "en_AU"},
	}
	chosen, _ := speech.SelectVoice(voices)

	var buf bytes.Buffer
	if err := printVoices(&buf, "say", voices, chosen, true, false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Backend: say") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "* Karen") || strings.Contains(out, "* Alex") {
		t.Errorf("Karen should be marked:\n%s", out)
	}
}

func TestPrintVoicesEmpty(t *testing.T) {
	var buf bytes.Buffer
	printVoices(&buf, "espeak-ng", nil, speech.Voice{}, false, false)
	if !strings.Contains(buf.String(), "No voices installed") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestPrintVoicesJSON(t *testing.T) {
	voices := []speech.Voice{
		{Name: "english", Lang: "en", ID: "en"},
		{Name: "English (Australia)", Lang: "en-au", ID: "en-au"},
	}
	var buf bytes.Buffer
	if err := printVoices(&buf, "espeak-ng", voices, voices[1], true, true); err != nil {
		t.Fatal(err)
	}
	var rows []struct {
		Name     string `json:"name"`
		Selected bool   `json:"selected"`
	}
	if err := json.Unmarshal(buf.Bytes(), &rows); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if len(rows) != 2 || rows[0].Selected || !rows[1].Selected {
		t.Errorf("rows = %+v", rows)
	}
}

func TestRunLinesCountsEachLine(t *testing.T) {
	p := page.New(nil, page.Options{})
	var out bytes.Buffer
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := runLines(ctx, p, strings.NewReader("\n\nanything\n"), &out); err != nil {
		t.Fatal(err)
	}
	if p.Clicks() != 3 {
		t.Errorf("clicks = %d, want 3", p.Clicks())
	}
	if !strings.HasSuffix(out.String(), "Clicks: 3\n") {
		t.Errorf("output = %q", out.String())
	}
}

// fakeQueue records the order of speech calls.
type fakeQueue struct {
	mu    sync.Mutex
	calls []string
}

func (q *fakeQueue) record(call string) {
	q.mu.Lock()
	q.calls = append(q.calls, call)
	q.mu.Unlock()
}

func (q *fakeQueue) Speak(speech.Utterance)                  { q.record("speak") }
func (q *fakeQueue) Voices() []speech.Voice                  { return nil }
func (q *fakeQueue) OnVoicesChanged(fn func([]speech.Voice)) {}
func (q *fakeQueue) Wait(ctx context.Context) error          { q.record("wait"); return nil }
func (q *fakeQueue) Cancel()                                 { q.record("cancel") }

func TestRunPipedLetsLastChantFinish(t *testing.T) {
	q := &fakeQueue{}
	p := page.New(q, page.Options{})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var out bytes.Buffer
	if err := runPiped(ctx, p, q, strings.NewReader("\n"), &out); err != nil {
		t.Fatal(err)
	}
	want := []string{"speak", "wait", "cancel"}
	if strings.Join(q.calls, ",") != strings.Join(want, ",") {
		t.Errorf("calls = %v, want %v", q.calls, want)
	}
	if out.String() != "Clicks: 1\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunPipedInterruptSkipsWait(t *testing.T) {
	q := &fakeQueue{}
	p := page.New(q, page.Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := runPiped(ctx, p, q, strings.NewReader(""), &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}
	for _, c := range q.calls {
		if c == "wait" {
			t.Errorf("calls = %v, interrupt should not wait", q.calls)
		}
	}
	if n := len(q.calls); n == 0 || q.calls[n-1] != "cancel" {
		t.Errorf("calls = %v, want a final cancel", q.calls)
	}
}
