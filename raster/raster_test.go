package raster

import (
	"image/color"
	"testing"

	"mandelbench/colormap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPixelOrigin(t *testing.T) {
	r := New(2048, 4)
	SetPixel(r.Pix, 2048, 0, 0, colormap.RGB{R: 10, G: 20, B: 30})

	assert.Equal(t, []uint8{10, 20, 30, 255}, r.Pix[:4])
	for i, b := range r.Pix[4:] {
		if b != 0 {
			t.Fatalf("byte %d modified: %d", i+4, b)
		}
	}
}

func TestSetPixelOffset(t *testing.T) {
	r := New(3, 2)
	r.Set(2, 1, colormap.RGB{R: 1, G: 2, B: 3})

	off := 4 * (3*1 + 2)
	assert.Equal(t, []uint8{1, 2, 3, 255}, r.Pix[off:off+4])
	assert.Equal(t, color.RGBA{1, 2, 3, 255}, r.Image().RGBAAt(2, 1))
}

func TestSetPixelOutOfRangePanics(t *testing.T) {
	r := New(2, 2)
	assert.Panics(t, func() { r.Set(0, 2, colormap.RGB{}) })
}

func TestReset(t *testing.T) {
	r := New(2, 2)
	r.Set(1, 1, colormap.RGB{R: 9})
	r.Reset()
	assert.Equal(t, make([]uint8, 16), r.Pix)
}

func TestImageSharesBuffer(t *testing.T) {
	r := New(5, 3)
	img := r.Image()
	require.Equal(t, 5, img.Bounds().Dx())
	require.Equal(t, 3, img.Bounds().Dy())

	r.Set(4, 2, colormap.RGB{G: 200})
	assert.Equal(t, color.RGBA{0, 200, 0, 255}, img.RGBAAt(4, 2))
}
