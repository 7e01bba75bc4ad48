package codec

import (
	"bytes"
	"image"
	"image/png"
	"sync"

	"mandelbench/raster"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// PNG is the default lossless codec.
type PNG struct {
	// Level defaults to png.DefaultCompression.
	Level png.CompressionLevel
}

func (PNG) Name() string { return "png" }

func (c PNG) Encode(pix []uint8, width, height int) ([]byte, error) {
	return encode(c.Name(), pix, width, height, func(buf *bytes.Buffer, img image.Image) error {
		enc := png.Encoder{
			CompressionLevel: c.Level,
			BufferPool:       pngPool,
		}
		return enc.Encode(buf, img)
	})
}

func (c PNG) Decode(data []byte) (*raster.Raster, error) {
	return decode(c.Name(), data, func(r *bytes.Reader) (image.Image, error) {
		return png.Decode(r)
	})
}

type BMP struct{}

func (BMP) Name() string { return "bmp" }

func (c BMP) Encode(pix []uint8, width, height int) ([]byte, error) {
	return encode(c.Name(), pix, width, height, func(buf *bytes.Buffer, img image.Image) error {
		return bmp.Encode(buf, img)
	})
}

func (c BMP) Decode(data []byte) (*raster.Raster, error) {
	return decode(c.Name(), data, func(r *bytes.Reader) (image.Image, error) {
		return bmp.Decode(r)
	})
}

type TIFF struct{}

func (TIFF) Name() string { return "tiff" }

func (c TIFF) Encode(pix []uint8, width, height int) ([]byte, error) {
	return encode(c.Name(), pix, width, height, func(buf *bytes.Buffer, img image.Image) error {
		return tiff.Encode(buf, img, &tiff.Options{Compression: tiff.Deflate})
	})
}

func (c TIFF) Decode(data []byte) (*raster.Raster, error) {
	return decode(c.Name(), data, func(r *bytes.Reader) (image.Image, error) {
		return tiff.Decode(r)
	})
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
