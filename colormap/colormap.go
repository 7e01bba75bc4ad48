// Package colormap maps escape iteration counts to display colors.
package colormap

import (
	"image/color"
	"math"
)

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

var RGBModel = color.ModelFunc(rgbConvert)

func rgbConvert(c color.Color) color.Color {
	if _, ok := c.(RGB); ok {
		return c
	}

	rc := color.RGBAModel.Convert(c).(color.RGBA)
	return RGB{R: rc.R, G: rc.G, B: rc.B}
}

func (c RGB) RGBA() (uint32, uint32, uint32, uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}.RGBA()
}

// Colormap holds one color per iteration count. The last entry is the
// color of points that never escaped.
type Colormap []RGB

// MaxIteration returns the iteration cap the colormap was built for.
func (m Colormap) MaxIteration() int {
	return len(m) - 1
}

// At returns the color for an escape count, counts above the cap map to the sentinel.
func (m Colormap) At(n int) RGB {
	if n >= len(m) {
		return m[len(m)-1]
	}
	return m[n]
}

// Palette converts the colormap to a color.Palette.
func (m Colormap) Palette() color.Palette {
	pal := make(color.Palette, len(m))
	for i, c := range m {
		pal[i] = c
	}
	return pal
}

// Build returns a colormap of maxIteration+1 entries. Hue turns a degree every
// four iterations and value approaches 1 as the count grows.
func Build(maxIteration int) Colormap {
	m := make(Colormap, maxIteration+1)
	for i := range maxIteration {
		fi := float32(i)
		m[i] = HSVToRGB(fi/4, 1, fi/(fi+8))
	}
	m[maxIteration] = RGB{}
	return m
}

// HSVToRGB converts a hue in degrees, saturation and value in [0,1] to RGB.
func HSVToRGB(h, s, v float32) RGB {
	if s == 0 {
		g := toByte(v)
		return RGB{R: g, G: g, B: g}
	}

	h /= 60
	fl := float32(math.Floor(float64(h)))
	f := h - fl
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	sector := int(fl) % 6
	if sector < 0 {
		sector += 6
	}

	var r, g, b float32
	switch sector {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}

	return RGB{R: toByte(r), G: toByte(g), B: toByte(b)}
}

func toByte(v float32) uint8 {
	c := v * 255
	if c < 0 {
		c = 0
	}
	if c > 255 {
		c = 255
	}
	return uint8(c)
}
