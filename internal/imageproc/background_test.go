package imageproc

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// shirt draws a dark square with a light hole on a white background, plus a
// single dark speck in the corner.
func shirt() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 48, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 48; x++ {
			img.Set(x, y, color.White)
		}
	}
	for y := 14; y < 34; y++ {
		for x := 14; x < 34; x++ {
			img.Set(x, y, color.NRGBA{R: 20, G: 30, B: 60, A: 255})
		}
	}
	for y := 22; y < 26; y++ {
		for x := 22; x < 26; x++ {
			img.Set(x, y, color.White)
		}
	}
	img.Set(1, 1, color.Black)
	return img
}

func alphaAt(img image.Image, x, y int) uint8 {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA).A
}

func TestRemoveBackground(t *testing.T) {
	out, err := RemoveBackground(bytes.NewReader(encodePNG(t, shirt())))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 48, 48), img.Bounds())

	assert.Equal(t, uint8(255), alphaAt(img, 16, 16), "subject stays opaque")
	assert.Equal(t, uint8(255), alphaAt(img, 23, 23), "hole inside the subject is filled")
	assert.Equal(t, uint8(0), alphaAt(img, 1, 1), "small specks are dropped")
	assert.Equal(t, uint8(0), alphaAt(img, 47, 47))
	assert.Equal(t, uint8(0), alphaAt(img, 0, 24))
}

func TestRemoveBackgroundKeepsColor(t *testing.T) {
	out, err := RemoveBackground(bytes.NewReader(encodePNG(t, shirt())))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	c := color.NRGBAModel.Convert(img.At(20, 20)).(color.NRGBA)
	assert.Equal(t, color.NRGBA{R: 20, G: 30, B: 60, A: 255}, c)
}

func TestRemoveBackgroundBlankImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for i := range img.Pix {
		img.Pix[i] = 255
	}

	_, err := RemoveBackground(bytes.NewReader(encodePNG(t, img)))
	assert.ErrorIs(t, err, ErrNoForeground)
}

func TestRemoveBackgroundGarbage(t *testing.T) {
	_, err := RemoveBackground(bytes.NewReader([]byte("definitely not an image")))
	assert.ErrorIs(t, err, ErrDecode)
}

func TestOtsuSplitsBimodalHistogram(t *testing.T) {
	pixels := append(bytes.Repeat([]byte{10}, 50), bytes.Repeat([]byte{200}, 50)...)
	th := otsu(pixels)
	assert.GreaterOrEqual(t, th, uint8(10))
	assert.Less(t, th, uint8(200))
}

func TestLargestRegionUsesEightConnectivity(t *testing.T) {
	m := newMask(5, 5)
	// diagonal line of three plus a separate pair
	m.bits[0*5+0] = true
	m.bits[1*5+1] = true
	m.bits[2*5+2] = true
	m.bits[4*5+3] = true
	m.bits[4*5+4] = true

	got := m.largestRegion()
	require.NotNil(t, got)
	assert.Equal(t, 3, got.count())
	assert.True(t, got.at(1, 1))
	assert.False(t, got.at(4, 4))
}

func TestFillHoles(t *testing.T) {
	m := newMask(5, 5)
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			m.bits[y*5+x] = !(x == 2 && y == 2)
		}
	}
	m.fillHoles()
	assert.True(t, m.at(2, 2))
	assert.False(t, m.at(0, 0))
	assert.Equal(t, 9, m.count())
}

func TestErodeIgnoresImageBorder(t *testing.T) {
	m := newMask(4, 4)
	for i := range m.bits {
		m.bits[i] = true
	}
	assert.Equal(t, 16, m.erode(1).count())

	m.bits[0] = false
	eroded := m.erode(1)
	assert.False(t, eroded.at(1, 1))
	assert.True(t, eroded.at(3, 3))
}
