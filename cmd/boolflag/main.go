package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strconv"

	"github.com/Mavwarf/boolflag/internal/config"
	"github.com/Mavwarf/boolflag/internal/speech"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// flags holds command-line overrides. Zero values mean "use config".
type flags struct {
	volume     int
	configPath string
	voice      string
	listen     string
	backend    string
	verbose    bool
	noChickens bool
	open       bool
	jsonOut    bool
}

func main() {
	f, rest, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cmd := ""
	if len(rest) > 0 {
		cmd = rest[0]
	}

	switch cmd {
	case "help", "-h", "--help":
		printUsage()
		return
	case "version", "-V", "--version":
		printVersion()
		return
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg = applyFlags(cfg, f)
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch cmd {
	case "":
		err = runPage(ctx, cfg)
	case "say":
		err = runSay(ctx, cfg)
	case "voices":
		err = runVoices(ctx, cfg, f.jsonOut)
	case "serve":
		err = runServe(ctx, cfg, f.open)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", cmd)
		fmt.Fprintf(os.Stderr, "Run 'boolflag help' for usage.\n")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseArgs pulls options out of args and returns the remaining words.
func parseArgs(args []string) (flags, []string, error) {
	f := flags{volume: -1}
	var rest []string

	value := func(i int, name, what string) (string, error) {
		if i+1 >= len(args) {
			return "", fmt.Errorf("%s requires %s", name, what)
		}
		return args[i+1], nil
	}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--volume", "-v":
			s, err := value(i, args[i], "a value (0-100)")
			if err != nil {
				return f, nil, err
			}
			v, err := strconv.Atoi(s)
			if err != nil || v < 0 || v > 100 {
				return f, nil, fmt.Errorf("volume must be a number between 0 and 100")
			}
			f.volume = v
			i++
		case "--config", "-c":
			s, err := value(i, args[i], "a file path")
			if err != nil {
				return f, nil, err
			}
			f.configPath = s
			i++
		case "--voice":
			s, err := value(i, args[i], "a voice name")
			if err != nil {
				return f, nil, err
			}
			f.voice = s
			i++
		case "--listen":
			s, err := value(i, args[i], "an address")
			if err != nil {
				return f, nil, err
			}
			f.listen = s
			i++
		case "--backend":
			s, err := value(i, args[i], "a backend name")
			if err != nil {
				return f, nil, err
			}
			f.backend = s
			i++
		case "--verbose":
			f.verbose = true
		case "--no-chickens":
			f.noChickens = true
		case "--open":
			f.open = true
		case "--json":
			f.jsonOut = true
		default:
			rest = append(rest, args[i])
		}
	}
	return f, rest, nil
}

// applyFlags layers command-line overrides on top of the config file.
// Priority: CLI flag > config > default.
func applyFlags(cfg config.Config, f flags) config.Config {
	cfg.Volume = resolveVolume(f.volume, cfg)
	if f.voice != "" {
		cfg.Voice = f.voice
	}
	if f.listen != "" {
		cfg.Listen = f.listen
	}
	if f.backend != "" {
		cfg.Backend = f.backend
	}
	if f.verbose {
		cfg.Verbose = true
	}
	if f.noChickens {
		cfg.Chickens = false
	}
	return cfg
}

// resolveVolume returns the CLI volume if set (>= 0), otherwise the
// config volume.
func resolveVolume(cliVolume int, cfg config.Config) int {
	if cliVolume >= 0 {
		return cliVolume
	}
	return cfg.Volume
}

func newEngine(cfg config.Config) *speech.Engine {
	opts := speech.Options{Backend: cfg.Backend}
	if cfg.Verbose {
		opts.Log = os.Stderr
	}
	return speech.New(opts)
}

func printVersion() {
	fmt.Printf("boolflag %s (%s) %s/%s\n", version, buildDate, runtime.GOOS, runtime.GOARCH)
}

func printUsage() {
	fmt.Printf("boolflag %s - A flag that says \"boolean flag\" when you press it\n", version)
	fmt.Println(`
Usage:
  boolflag [options]             Show the flag in the terminal
  boolflag say [options]         Say "boolean flag" once and exit
  boolflag voices [--json]       List installed voices; * marks the chosen one
  boolflag serve [--open]        Serve the flag as a web page

Options:
  --volume, -v <0-100>   Override volume (default: config or 100)
  --config, -c <path>    Path to boolflag-config.json
  --voice <name>         Prefer this voice over the automatic choice
  --backend <name>       Force a speech engine (espeak-ng, espeak, say, sapi)
  --listen <addr>        Address for serve (default: 127.0.0.1:8812)
  --no-chickens          Turn off the chickens
  --verbose              Report speech errors on stderr

Commands:
  version, -V            Show version and build date
  help, -h, --help       Show this help message

Config resolution:
  1. --config <path>                          (explicit)
  2. boolflag-config.json next to binary      (portable)
  3. ~/.config/boolflag/boolflag-config.json  (user default)

Keys in the terminal:
  Space, Enter           Press the flag
  Mouse click            Press the flag
  q, Ctrl+C              Quit`)
}
