// Package chickens animates the decorative chickens that rain down
// whenever the flag is activated. Nothing here is interactive.
package chickens

import (
	"math/rand/v2"
	"strings"
)

// Glyph is drawn for every chicken. It is two terminal cells wide.
const Glyph = "🐔"

const glyphWidth = 2

// MaxBirds caps how many chickens are on screen at once.
const MaxBirds = 64

type bird struct {
	x     int
	y     float64
	speed float64 // rows per Step
}

// Field is a width×height grid of falling chickens.
type Field struct {
	w, h  int
	rng   *rand.Rand
	birds []bird
}

// New returns an empty field. rng may be nil for a randomly seeded one.
func New(width, height int, rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	f := &Field{rng: rng}
	f.Resize(width, height)
	return f
}

// Resize changes the field dimensions, dropping chickens that no longer fit.
func (f *Field) Resize(width, height int) {
	f.w, f.h = max(width, 0), max(height, 0)
	kept := f.birds[:0]
	for _, b := range f.birds {
		if b.x+glyphWidth <= f.w && int(b.y) < f.h {
			kept = append(kept, b)
		}
	}
	f.birds = kept
}

// Burst drops n new chickens from random columns along the top row.
func (f *Field) Burst(n int) {
	if f.w < glyphWidth || f.h == 0 {
		return
	}
	for i := 0; i < n && len(f.birds) < MaxBirds; i++ {
		f.birds = append(f.birds, bird{
			x:     f.rng.IntN(f.w - glyphWidth + 1),
			y:     -f.rng.Float64() * 2,
			speed: 0.35 + f.rng.Float64()*0.65,
		})
	}
}

// Step advances every chicken and removes the ones that landed.
func (f *Field) Step() {
	kept := f.birds[:0]
	for _, b := range f.birds {
		b.y += b.speed
		if int(b.y) < f.h {
			kept = append(kept, b)
		}
	}
	f.birds = kept
}

// Len returns the number of chickens still falling.
func (f *Field) Len() int { return len(f.birds) }

// Render returns one string per row. Rows are padded to the field width
// in terminal cells; where chickens overlap the first one wins.
func (f *Field) Render() []string {
	grid := make([][]string, f.h)
	for y := range grid {
		grid[y] = make([]string, f.w)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}
	for _, b := range f.birds {
		y := int(b.y)
		if b.y < 0 || y >= f.h {
			continue
		}
		row := grid[y]
		if row[b.x] != " " || row[b.x+1] != " " {
			continue
		}
		row[b.x] = Glyph
		row[b.x+1] = "" // covered by the wide glyph
	}

	rows := make([]string, f.h)
	for y, row := range grid {
		rows[y] = strings.Join(row, "")
	}
	return rows
}
