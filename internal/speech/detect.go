package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Indirections for tests.
var (
	lookPath   = exec.LookPath
	runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		cmd := command(ctx, name, args...)
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		out, err := cmd.Output()
		if err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				return nil, fmt.Errorf("%s failed: %w\n%s", name, err, bytes.TrimSpace(stderr.Bytes()))
			}
			return nil, fmt.Errorf("%s failed: %w", name, err)
		}
		return out, nil
	}
)

// detectBackend returns the named backend, or the first installed one
// for this OS when override is empty or "auto". Nil means speech is
// unavailable.
func detectBackend(override string) backend {
	if override != "" && override != "auto" {
		return newBackend(override)
	}
	for _, name := range candidates() {
		if b := newBackend(name); b != nil {
			return b
		}
	}
	return nil
}

func newBackend(name string) backend {
	switch name {
	case "espeak-ng", "espeak":
		if path, err := lookPath(name); err == nil {
			return &espeak{name: name, bin: path}
		}
	case "say":
		if path, err := lookPath("say"); err == nil {
			return &say{bin: path}
		}
	case "sapi":
		if path, err := lookPath("powershell"); err == nil {
			return &sapi{bin: path}
		}
	}
	return nil
}

// Backends lists the names accepted by Options.Backend.
func Backends() []string {
	return []string{"auto", "espeak-ng", "espeak", "say", "sapi"}
}
