package speech

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces bursts of file events from a voice install.
const watchDebounce = 250 * time.Millisecond

// Watch reloads the voice list whenever the backend's voice directories
// change, until ctx is done. It returns nil immediately when there is
// nothing to watch.
func (e *Engine) Watch(ctx context.Context) error {
	if !e.Available() {
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("voice watcher: %w", err)
	}
	defer w.Close()

	watched := 0
	for _, dir := range e.b.VoiceDirs() {
		if err := w.Add(dir); err == nil {
			watched++
		}
	}
	if watched == 0 {
		return nil
	}

	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-w.Events:
			if !ok {
				return nil
			}
			timer.Reset(watchDebounce)
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			e.logf("voice watcher: %v", err)
		case <-fire:
			fire = nil
			if err := e.Load(ctx); err != nil {
				e.logf("%v", err)
			}
		}
	}
}
