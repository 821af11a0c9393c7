// mkicon writes the boolflag icon as a PNG.
// Usage: go run ./cmd/mkicon [-size N] <output.png>
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Mavwarf/boolflag/internal/icon"
)

func main() {
	size := 256
	args := os.Args[1:]
	if len(args) == 3 && args[0] == "-size" {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 16 {
			fmt.Fprintf(os.Stderr, "mkicon: invalid size %q\n", args[1])
			os.Exit(1)
		}
		size = n
		args = args[2:]
	}
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: mkicon [-size N] <output.png>\n")
		os.Exit(1)
	}

	data, err := icon.PNG(size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mkicon: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(args[0], data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "mkicon: %v\n", err)
		os.Exit(1)
	}
}
