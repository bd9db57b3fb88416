package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
)

// Image converts f to an 8-bit grayscale image scaled against scale.
func Image(f *Field, scale float64) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, f.Cols, f.Rows))
	for r := 0; r < f.Rows; r++ {
		for c := 0; c < f.Cols; c++ {
			img.SetGray(c, r, color.Gray{Y: uint8(level(f.At(c, r), scale, 255))})
		}
	}
	return img
}

// WritePNG encodes f as a grayscale PNG.
func WritePNG(w io.Writer, f *Field, scale float64) error {
	return png.Encode(w, Image(f, scale))
}
