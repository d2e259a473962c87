// Package imageproc cuts clothing items out of product photos.
//
// The approach assumes a subject that is darker than its background: Otsu
// thresholding on a blurred grayscale copy picks the foreground, the largest
// connected region is kept with its holes filled, and a few morphological passes
// smooth the edge before the mask becomes the alpha channel.
package imageproc

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

var (
	ErrNoForeground = errors.New("no foreground detected")
	ErrDecode       = errors.New("unsupported or corrupt image")
)

const (
	// sigma OpenCV derives for a 5x5 Gaussian. imaging.Blur sizes its own kernel
	// from sigma (radius ceil(3*sigma), so 9x9); the extra taps carry little weight.
	blurSigma        = 1.1
	kernelRadius     = 2 // 5x5 square structuring element
	dilateIterations = 2
)

// RemoveBackground decodes an image, makes its background transparent and returns
// the result as PNG.
func RemoveBackground(r io.Reader) ([]byte, error) {
	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	out, err := Cutout(src)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Cutout returns a copy of src whose alpha channel is the foreground mask.
func Cutout(src image.Image) (*image.NRGBA, error) {
	blurred := imaging.Blur(imaging.Grayscale(src), blurSigma)
	w, h := blurred.Bounds().Dx(), blurred.Bounds().Dy()
	if w == 0 || h == 0 {
		return nil, ErrNoForeground
	}

	lum := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		row := blurred.Pix[y*blurred.Stride:]
		for x := 0; x < w; x++ {
			lum[y*w+x] = row[x*4]
		}
	}

	// inverted binary threshold: dark pixels are foreground
	t := otsu(lum)
	m := newMask(w, h)
	for i, v := range lum {
		m.bits[i] = v <= t
	}

	m = m.largestRegion()
	if m == nil {
		return nil, ErrNoForeground
	}
	m.fillHoles()
	m = m.dilate(kernelRadius).erode(kernelRadius) // close
	m = m.erode(kernelRadius).dilate(kernelRadius) // open
	for i := 0; i < dilateIterations; i++ {
		m = m.dilate(kernelRadius)
	}

	dst := imaging.Clone(src)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := uint8(0)
			if m.at(x, y) {
				a = 255
			}
			dst.Pix[y*dst.Stride+x*4+3] = a
		}
	}
	return dst, nil
}

// otsu returns the threshold that maximizes the between-class variance of pixels.
func otsu(pixels []uint8) uint8 {
	var hist [256]int
	for _, p := range pixels {
		hist[p]++
	}

	total := len(pixels)
	var sum float64
	for i, c := range hist {
		sum += float64(i * c)
	}

	var (
		sumB      float64
		weightB   int
		best      float64
		threshold int
	)
	for t := 0; t < 256; t++ {
		weightB += hist[t]
		if weightB == 0 {
			continue
		}
		weightF := total - weightB
		if weightF == 0 {
			break
		}
		sumB += float64(t * hist[t])
		meanB := sumB / float64(weightB)
		meanF := (sum - sumB) / float64(weightF)
		between := float64(weightB) * float64(weightF) * (meanB - meanF) * (meanB - meanF)
		if between > best {
			best = between
			threshold = t
		}
	}
	return uint8(threshold)
}
