package colormap

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHSVToRGBSectorBoundaries(t *testing.T) {
	tests := []struct {
		hue  float32
		want RGB
	}{
		{0, RGB{255, 0, 0}},
		{60, RGB{255, 255, 0}},
		{120, RGB{0, 255, 0}},
		{180, RGB{0, 255, 255}},
		{240, RGB{0, 0, 255}},
		{300, RGB{255, 0, 255}},
		{360, RGB{255, 0, 0}},
		{480, RGB{0, 255, 0}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HSVToRGB(tt.hue, 1, 1), "hue %v", tt.hue)
	}
}

func TestHSVToRGBInterpolates(t *testing.T) {
	// Half way through sector 0 green is at half intensity.
	assert.Equal(t, RGB{255, 127, 0}, HSVToRGB(30, 1, 1))
	assert.Equal(t, RGB{127, 0, 0}, HSVToRGB(0, 1, 0.5))
}

func TestHSVToRGBGrey(t *testing.T) {
	assert.Equal(t, RGB{127, 127, 127}, HSVToRGB(200, 0, 0.5))
}

func TestHSVToRGBClamps(t *testing.T) {
	assert.Equal(t, RGB{255, 0, 0}, HSVToRGB(0, 1, 2))
	assert.Equal(t, RGB{0, 0, 0}, HSVToRGB(0, 1, -1))
}

func TestBuild(t *testing.T) {
	for _, maxIter := range []int{1, 8, 100, 2000} {
		m := Build(maxIter)
		require.Len(t, m, maxIter+1)
		assert.Equal(t, maxIter, m.MaxIteration())
		assert.Equal(t, RGB{}, m[maxIter])
	}

	m := Build(2000)
	// Zero iterations yield zero value.
	assert.Equal(t, RGB{}, m[0])
	// i=8: hue 2, value 0.5.
	assert.Equal(t, HSVToRGB(2, 1, 0.5), m[8])
	// Brightness grows with the count.
	assert.Less(t, m[4].R, m[40].R)
}

func TestBuildWrapsHue(t *testing.T) {
	m := Build(3000)
	// 1440 counts make a full turn, both land in sector 0 with red at maximum value.
	assert.Equal(t, m[1440].G, uint8(0))
	assert.Equal(t, m[1440].B, uint8(0))
	assert.Greater(t, m[1440].R, uint8(250))
}

func TestAt(t *testing.T) {
	m := Build(10)
	assert.Equal(t, m[3], m.At(3))
	assert.Equal(t, RGB{}, m.At(10))
	assert.Equal(t, RGB{}, m.At(42))
}

func TestRGBColor(t *testing.T) {
	c := RGB{10, 20, 30}
	got := color.RGBAModel.Convert(c).(color.RGBA)
	assert.Equal(t, color.RGBA{10, 20, 30, 255}, got)
	assert.Equal(t, c, RGBModel.Convert(color.RGBA{10, 20, 30, 255}))
	assert.Len(t, Build(4).Palette(), 5)
}

func TestRIFFRoundTrip(t *testing.T) {
	m := Build(300)

	var buf bytes.Buffer
	n, err := m.WriteRIFF(&buf)
	require.NoError(t, err)
	assert.EqualValues(t, 301, n)
	assert.Equal(t, "RIFF", buf.String()[:4])

	got, err := ReadRIFF(bytes.NewReader(buf.Bytes()), 300)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestReadRIFFRejects(t *testing.T) {
	var buf bytes.Buffer
	_, err := Build(10).WriteRIFF(&buf)
	require.NoError(t, err)

	_, err = ReadRIFF(bytes.NewReader(buf.Bytes()), 20)
	assert.ErrorContains(t, err, "need 21")

	bad := Build(10)
	bad[10] = RGB{1, 2, 3}
	buf.Reset()
	_, err = bad.WriteRIFF(&buf)
	require.NoError(t, err)
	_, err = ReadRIFF(bytes.NewReader(buf.Bytes()), 10)
	assert.ErrorContains(t, err, "black")

	_, err = ReadRIFF(bytes.NewReader([]byte("not a riff file")), 10)
	assert.Error(t, err)
}
