package services_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"wardrobe/internal/imageproc"
	"wardrobe/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareOnWhite(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			c := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			if x >= 8 && x < 24 && y >= 8 && y < 24 {
				c = color.NRGBA{R: 40, G: 20, B: 10, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImageService_RemoveBackground(t *testing.T) {
	service := services.NewImageService()

	out, err := service.RemoveBackground(squareOnWhite(t))
	require.NoError(t, err)
	assert.Equal(t, "image/png", out.ContentType)
	assert.True(t, strings.HasSuffix(out.Filename, ".png"))
	assert.Len(t, out.Filename, 36+len(".png"))

	_, err = png.Decode(bytes.NewReader(out.Data))
	assert.NoError(t, err)
}

func TestImageService_RemoveBackgroundErrors(t *testing.T) {
	service := services.NewImageService()

	_, err := service.RemoveBackground([]byte("not an image"))
	assert.ErrorIs(t, err, imageproc.ErrDecode)

	var blank bytes.Buffer
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	require.NoError(t, png.Encode(&blank, img))
	_, err = service.RemoveBackground(blank.Bytes())
	assert.ErrorIs(t, err, imageproc.ErrNoForeground)
}
