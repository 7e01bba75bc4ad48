package raster

import (
	"image"

	"mandelbench/colormap"
)

// bytes per pixel: r, g, b, a uint8 = 4
const bpp = 4

type Raster struct {
	// Pix holds the pixels in R, G, B, A order. The pixel at (x, y) starts at
	// Pix[4*(Width*y+x)].
	Pix    []uint8
	Width  int
	Height int
}

func New(width, height int) *Raster {
	return &Raster{
		Pix:    make([]uint8, width*height*bpp),
		Width:  width,
		Height: height,
	}
}

// SetPixel writes c with an opaque alpha at (x, y) of a raster width pixels
// wide. Coordinates are not checked, out of range writes panic or land on
// another pixel.
func SetPixel(pix []uint8, width, x, y int, c colormap.RGB) {
	off := bpp * (width*y + x)
	p := pix[off : off+bpp : off+bpp]
	p[0] = c.R
	p[1] = c.G
	p[2] = c.B
	p[3] = 0xFF
}

func (r *Raster) Set(x, y int, c colormap.RGB) {
	SetPixel(r.Pix, r.Width, x, y, c)
}

// Reset clears every pixel to transparent black.
func (r *Raster) Reset() {
	clear(r.Pix)
}

// Image returns an image sharing the raster's pixels.
func (r *Raster) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    r.Pix,
		Stride: bpp * r.Width,
		Rect:   image.Rect(0, 0, r.Width, r.Height),
	}
}
