// Package icon draws the boolflag app icon: a green pill-shaped flag on
// a pale mint disc.
package icon

import (
	"image"
	"image/color"
	"math"
)

var (
	discColor  = color.RGBA{0xec, 0xfd, 0xf5, 0xff}
	flagStart  = color.RGBA{0x0f, 0x76, 0x6e, 0xff}
	flagMiddle = color.RGBA{0x22, 0xc5, 0x5e, 0xff}
	flagEnd    = color.RGBA{0xa3, 0xe6, 0x35, 0xff}
)

// Draw renders the icon at size×size pixels.
func Draw(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	s := float64(size)
	c := s / 2

	// pill: 200×130 inside a 260 disc, as proportions of the disc
	pillW, pillH := s*200/260, s*130/260
	radius := pillH / 2
	left, top := c-pillW/2, c-pillH/2

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5

			if a := coverage(math.Hypot(px-c, py-c), c); a > 0 {
				blend(img, x, y, discColor, a)
			}

			// distance to the pill's centre segment
			cx := math.Max(left+radius, math.Min(px, left+pillW-radius))
			if a := coverage(math.Hypot(px-cx, py-c), radius); a > 0 {
				// 135° gradient across the pill
				t := ((px - left) + (py - top)) / (pillW + pillH)
				blend(img, x, y, gradient(t), a)
			}
		}
	}
	return img
}

// coverage anti-aliases a circle edge over one pixel.
func coverage(dist, radius float64) float64 {
	return math.Max(0, math.Min(1, radius-dist+0.5))
}

func gradient(t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	if t < 0.4 {
		return lerp(flagStart, flagMiddle, t/0.4)
	}
	return lerp(flagMiddle, flagEnd, (t-0.4)/0.6)
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5) }
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), 0xff}
}

// blend paints c over the pixel with alpha a.
func blend(img *image.RGBA, x, y int, c color.RGBA, a float64) {
	dst := img.RGBAAt(x, y)
	over := func(s, d uint8) uint8 { return uint8(float64(s)*a + float64(d)*(1-a) + 0.5) }
	img.SetRGBA(x, y, color.RGBA{
		R: over(c.R, dst.R),
		G: over(c.G, dst.G),
		B: over(c.B, dst.B),
		A: over(0xff, dst.A),
	})
}
