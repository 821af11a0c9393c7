// boolflag-app shows the browser page in a native window. The page
// speaks through the webview's own speech synthesis.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"github.com/Mavwarf/boolflag/internal/web"
)

const (
	defaultWidth  = 720
	defaultHeight = 560
	minSize       = 320
)

// window holds the window geometry from the command line.
type window struct {
	width, height int
}

func main() {
	w, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "boolflag-app: %v\n", err)
		os.Exit(1)
	}

	err = wails.Run(&options.App{
		Title:     "Boolean Flag",
		Width:     w.width,
		Height:    w.height,
		MinWidth:  minSize,
		MinHeight: minSize,
		AssetServer: &assetserver.Options{
			Handler: web.Handler(),
		},
		BackgroundColour: &options.RGBA{R: 245, G: 255, B: 249, A: 255}, // #f5fff9
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "boolflag-app: %v\n", err)
		os.Exit(1)
	}
}

func parseArgs(args []string) (window, error) {
	w := window{width: defaultWidth, height: defaultHeight}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--width", "-W", "--height", "-H":
			if i+1 >= len(args) {
				return w, fmt.Errorf("%s requires a number of pixels", args[i])
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n < minSize {
				return w, fmt.Errorf("%s must be a number of at least %d", args[i], minSize)
			}
			if args[i] == "--width" || args[i] == "-W" {
				w.width = n
			} else {
				w.height = n
			}
			i++
		default:
			return w, fmt.Errorf("unknown argument %q", args[i])
		}
	}
	return w, nil
}
