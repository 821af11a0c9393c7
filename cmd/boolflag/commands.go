package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Mavwarf/boolflag/internal/config"
	"github.com/Mavwarf/boolflag/internal/page"
	"github.com/Mavwarf/boolflag/internal/speech"
	"github.com/Mavwarf/boolflag/internal/tui"
	"github.com/Mavwarf/boolflag/internal/web"
)

const (
	terminalNote  = "Your terminal might need a speech engine installed."
	noSpeechNote  = "No speech engine found; install espeak-ng to hear the flag."
	noEngineError = "no speech engine found (tried: espeak-ng, espeak, say, sapi)"
)

// startSpeech loads the voice list in the background and keeps it
// current until ctx is done. The page picks up the list through its
// subscription, so nothing here blocks on the backend.
func startSpeech(ctx context.Context, eng *speech.Engine, verbose bool) {
	if !eng.Available() {
		return
	}
	go func() {
		if err := eng.Load(ctx); err != nil && verbose {
			fmt.Fprintf(os.Stderr, "boolflag: %v\n", err)
		}
	}()
	go func() {
		if err := eng.Watch(ctx); err != nil && verbose {
			fmt.Fprintf(os.Stderr, "boolflag: %v\n", err)
		}
	}()
}

func pageOptions(cfg config.Config) page.Options {
	return page.Options{
		PreferredVoice: cfg.Voice,
		Volume:         cfg.Volume,
	}
}

func runPage(ctx context.Context, cfg config.Config) error {
	eng := newEngine(cfg)
	p := page.New(eng, pageOptions(cfg))
	startSpeech(ctx, eng, cfg.Verbose)

	note := terminalNote
	if !eng.Available() {
		note = noSpeechNote
	}

	err := tui.Run(ctx, p, os.Stdin, os.Stdout, tui.Options{Chickens: cfg.Chickens, Note: note})
	if errors.Is(err, tui.ErrNotTerminal) {
		return runPiped(ctx, p, eng, os.Stdin, os.Stdout)
	}
	eng.Cancel()
	return err
}

// speechQueue is the part of *speech.Engine that outlives the input.
type speechQueue interface {
	Wait(ctx context.Context) error
	Cancel()
}

// runPiped runs the line page and, when input simply ends, lets the
// last chant finish. An interrupt still cuts it off.
func runPiped(ctx context.Context, p *page.Page, q speechQueue, in io.Reader, out io.Writer) error {
	err := runLines(ctx, p, in, out)
	if err == nil && ctx.Err() == nil {
		err = q.Wait(ctx)
		if ctx.Err() != nil {
			err = nil
		}
	}
	q.Cancel()
	return err
}

// runLines is the page for piped input: every line is an Enter press.
func runLines(ctx context.Context, p *page.Page, in io.Reader, out io.Writer) error {
	lines := make(chan struct{})
	errc := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- struct{}{}:
			case <-ctx.Done():
				return
			}
		}
		errc <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-lines:
			p.HandleKey(page.KeyEnter)
			fmt.Fprintf(out, "Clicks: %d\n", p.Clicks())
		case err := <-errc:
			return err
		}
	}
}

func runSay(ctx context.Context, cfg config.Config) error {
	eng := newEngine(cfg)
	if !eng.Available() {
		return errors.New(noEngineError)
	}
	if err := eng.Load(ctx); err != nil && cfg.Verbose {
		fmt.Fprintf(os.Stderr, "boolflag: %v\n", err)
	}
	p := page.New(eng, pageOptions(cfg))
	if v, ok := p.Voice(); ok && cfg.Verbose {
		fmt.Fprintf(os.Stderr, "boolflag: voice %s (%s)\n", v.Name, v.Lang)
	}
	p.Activate()
	return eng.Wait(ctx)
}

// voiceListing is one row of "boolflag voices --json".
type voiceListing struct {
	speech.Voice
	Selected bool `json:"selected"`
}

func runVoices(ctx context.Context, cfg config.Config, asJSON bool) error {
	eng := newEngine(cfg)
	if !eng.Available() {
		return errors.New(noEngineError)
	}
	if err := eng.Load(ctx); err != nil {
		return err
	}
	p := page.New(eng, pageOptions(cfg))
	chosen, ok := p.Voice()
	return printVoices(os.Stdout, eng.Backend(), eng.Voices(), chosen, ok, asJSON)
}

func printVoices(w io.Writer, backend string, voices []speech.Voice, chosen speech.Voice, ok, asJSON bool) error {
	if asJSON {
		rows := make([]voiceListing, len(voices))
		for i, v := range voices {
			rows[i] = voiceListing{Voice: v, Selected: ok && v == chosen}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	fmt.Fprintf(w, "Backend: %s\n", backend)
	if len(voices) == 0 {
		fmt.Fprintln(w, "No voices installed; the engine default will be used.")
		return nil
	}
	for _, v := range voices {
		mark := " "
		if ok && v == chosen {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %-30s %s\n", mark, v.Name, v.Lang)
	}
	return nil
}

func runServe(ctx context.Context, cfg config.Config, open bool) error {
	return web.Serve(ctx, cfg.Listen, open, os.Stdout)
}
