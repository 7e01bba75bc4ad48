// Package codec turns rasters into image files and back.
package codec

import (
	"bytes"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"mandelbench/raster"

	"golang.org/x/image/draw"
)

type Code int

const (
	CodeBufferSize Code = iota + 1
	CodeEncode
	CodeDecode
	CodeFormat
)

func (c Code) String() string {
	switch c {
	case CodeBufferSize:
		return "buffer size mismatch"
	case CodeEncode:
		return "encode failed"
	case CodeDecode:
		return "decode failed"
	case CodeFormat:
		return "unsupported format"
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// Error is returned by codecs when a buffer cannot be encoded or decoded.
type Error struct {
	Code Code
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d: %s: %v", e.Code, e.Msg, e.Err)
	}
	return fmt.Sprintf("%d: %s", e.Code, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

type Codec interface {
	// Name is the format name, also used as the preferred file extension.
	Name() string
	// Encode compresses a width x height RGBA buffer.
	Encode(pix []uint8, width, height int) ([]byte, error)
	Decode(data []byte) (*raster.Raster, error)
}

var codecs = map[string]Codec{
	".png":  PNG{},
	".bmp":  BMP{},
	".tif":  TIFF{},
	".tiff": TIFF{},
}

// ForPath picks a codec from the extension of path.
func ForPath(path string) (Codec, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if c, ok := codecs[ext]; ok {
		return c, nil
	}
	return nil, &Error{Code: CodeFormat, Msg: fmt.Sprintf("no codec for extension %q", ext)}
}

// ImagePath expands a template taking a variant name and a run index, such as "./%s_%02d.png".
func ImagePath(template, name string, run int) string {
	return fmt.Sprintf(template, name, run)
}

func wrap(pix []uint8, width, height int) (*image.RGBA, error) {
	if width < 1 || height < 1 || len(pix) != width*height*4 {
		return nil, &Error{
			Code: CodeBufferSize,
			Msg:  fmt.Sprintf("buffer of %d bytes does not hold %dx%d RGBA pixels", len(pix), width, height),
		}
	}

	return &image.RGBA{
		Pix:    pix,
		Stride: 4 * width,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}

type encodeFunc func(buf *bytes.Buffer, img image.Image) error

func encode(name string, pix []uint8, width, height int, enc encodeFunc) ([]byte, error) {
	img, err := wrap(pix, width, height)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := enc(&buf, img); err != nil {
		return nil, &Error{Code: CodeEncode, Msg: "could not encode " + name, Err: err}
	}
	return buf.Bytes(), nil
}

type decodeFunc func(r *bytes.Reader) (image.Image, error)

func decode(name string, data []byte, dec decodeFunc) (*raster.Raster, error) {
	img, err := dec(bytes.NewReader(data))
	if err != nil {
		return nil, &Error{Code: CodeDecode, Msg: "could not decode " + name, Err: err}
	}

	b := img.Bounds()
	r := raster.New(b.Dx(), b.Dy())
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == 4*b.Dx() {
		copy(r.Pix, rgba.Pix)
		return r, nil
	}

	draw.Draw(r.Image(), r.Image().Bounds(), img, b.Min, draw.Src)
	return r, nil
}
