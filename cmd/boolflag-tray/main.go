package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/Mavwarf/boolflag/internal/config"
	"github.com/Mavwarf/boolflag/internal/speech"
)

func main() {
	configPath := ""
	volume := -1

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config", "-c":
			if i+1 < len(args) {
				configPath = args[i+1]
				i++
			}
		case "--volume", "-v":
			if i+1 < len(args) {
				v, err := strconv.Atoi(args[i+1])
				if err != nil || v < 0 || v > 100 {
					fmt.Fprintf(os.Stderr, "boolflag-tray: volume must be a number between 0 and 100\n")
					os.Exit(1)
				}
				volume = v
				i++
			}
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "boolflag-tray: %v\n", err)
		os.Exit(1)
	}
	if volume >= 0 {
		cfg.Volume = volume
	}

	opts := speech.Options{Backend: cfg.Backend}
	if cfg.Verbose {
		opts.Log = os.Stderr
	}
	eng := speech.New(opts)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := newTray(eng, cfg)
	if eng.Available() {
		go func() {
			if err := eng.Load(ctx); err != nil && cfg.Verbose {
				fmt.Fprintf(os.Stderr, "boolflag-tray: %v\n", err)
			}
		}()
		go eng.Watch(ctx)
	}

	// Blocks until Quit.
	t.run()
	eng.Cancel()
}
