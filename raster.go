package main

import (
	"fmt"
	"image"
)

// Raster is a read-only grid of 8-bit brightness samples in row-major order.
// 0 is the darkest value, 255 is white (no burn).
type Raster struct {
	Width  int
	Height int
	Pix    []uint8
}

func NewRaster(width, height int, pix []uint8) (*Raster, error) {
	r := &Raster{Width: width, Height: height, Pix: pix}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// RasterFromGray copies a grayscale image into a Raster, dropping any stride
// padding and bounds offset.
func RasterFromGray(img *image.Gray) (*Raster, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pix := make([]uint8, 0, width*height)
	for y := 0; y < height; y++ {
		start := img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		pix = append(pix, img.Pix[start:start+width]...)
	}
	return NewRaster(width, height, pix)
}

func (r *Raster) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: nil raster", ErrInvalidRaster)
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidRaster, r.Width, r.Height)
	}
	if len(r.Pix) != r.Width*r.Height {
		return fmt.Errorf("%w: %d samples for %dx%d", ErrInvalidRaster, len(r.Pix), r.Width, r.Height)
	}
	return nil
}

func (r *Raster) At(x, y int) uint8 {
	return r.Pix[y*r.Width+x]
}
