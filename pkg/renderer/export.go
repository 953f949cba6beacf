package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/nfnt/resize"

	"github.com/df07/go-bounce-raytracer/pkg/core"
)

// ColorToRGBA converts a linear color to RGBA with gamma correction and clamping
func ColorToRGBA(c core.Color, gamma float64) color.RGBA {
	if gamma > 0 {
		c = c.GammaCorrect(gamma)
	}
	c = c.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255 * c.R),
		G: uint8(255 * c.G),
		B: uint8(255 * c.B),
		A: 255,
	}
}

// ToImage converts a row-major pixel array to an RGBA image
func ToImage(pixels [][]core.Color, gamma float64) *image.RGBA {
	height := len(pixels)
	width := 0
	if height > 0 {
		width = len(pixels[0])
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y, row := range pixels {
		for x, c := range row {
			img.SetRGBA(x, y, ColorToRGBA(c, gamma))
		}
	}
	return img
}

// TileImage converts the pixels inside bounds to an image whose origin is the
// tile's top-left corner
func TileImage(pixels [][]core.Color, bounds image.Rectangle, gamma float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, ColorToRGBA(pixels[y][x], gamma))
		}
	}
	return img
}

// Downsample resizes a supersampled render to the output size
func Downsample(img *image.RGBA, width, height int) *image.RGBA {
	resized := resize.Resize(uint(width), uint(height), img, resize.Lanczos3)
	if rgba, ok := resized.(*image.RGBA); ok {
		return rgba
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(out, out.Bounds(), resized, resized.Bounds().Min, draw.Src)
	return out
}

// EncodePNG writes img as a PNG
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
