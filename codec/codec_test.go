package codec

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mandelbench/colormap"
	"mandelbench/raster"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRaster(width, height int) *raster.Raster {
	r := raster.New(width, height)
	m := colormap.Build(width * height)
	for y := range height {
		for x := range width {
			r.Set(x, y, m[y*width+x])
		}
	}
	return r
}

func TestSaveRoundTrip(t *testing.T) {
	for _, c := range []Codec{PNG{}, BMP{}, TIFF{}} {
		t.Run(c.Name(), func(t *testing.T) {
			src := testRaster(17, 9)
			path := filepath.Join(t.TempDir(), "frame."+c.Name())

			require.NoError(t, Save(path, src, c))

			got, err := Load(path, c)
			require.NoError(t, err)
			assert.Equal(t, src.Width, got.Width)
			assert.Equal(t, src.Height, got.Height)
			assert.Equal(t, src.Pix, got.Pix)
		})
	}
}

func TestSaveEncodeFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.png")
	r := &raster.Raster{Pix: make([]uint8, 10), Width: 4, Height: 4}

	err := Save(path, r, PNG{})
	var cerr *Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, CodeBufferSize, cerr.Code)
	assert.NotEmpty(t, cerr.Msg)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "frame.png")
	assert.Error(t, Save(path, testRaster(2, 2), PNG{}))
}

func TestDecodeGarbage(t *testing.T) {
	_, err := PNG{}.Decode([]byte("garbage"))
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, CodeDecode, cerr.Code)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestForPath(t *testing.T) {
	tests := map[string]string{
		"./gpu_00.png":   "png",
		"out/x.BMP":      "bmp",
		"frame_%02d.tif": "tiff",
		"a.tiff":         "tiff",
	}
	for path, want := range tests {
		c, err := ForPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, c.Name(), path)
	}

	_, err := ForPath("image.webp")
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, CodeFormat, cerr.Code)
}

func TestImagePath(t *testing.T) {
	assert.Equal(t, "./gpu_03.png", ImagePath("./%s_%02d.png", "gpu", 3))
	assert.Equal(t, "./serial_12.png", ImagePath("./%s_%02d.png", "serial", 12))
}

func TestErrorString(t *testing.T) {
	err := &Error{Code: CodeEncode, Msg: "could not encode png"}
	assert.Equal(t, "2: could not encode png", err.Error())
	assert.Equal(t, "encode failed", CodeEncode.String())
}
