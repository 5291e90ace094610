package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// LoadRaster reads an image file and prepares it for engraving: scaled so
// that one pixel is pixelSize mm wide and the row is outWidth mm long,
// flattened onto white and reduced to grayscale.
func LoadRaster(filePath string, outWidth, pixelSize float64) (*Raster, error) {
	if !(pixelSize > 0) {
		return nil, fmt.Errorf("%w: pixel size %v must be positive", ErrInvalidMotion, pixelSize)
	}
	width := int(outWidth / pixelSize)
	if width <= 0 {
		return nil, fmt.Errorf("%w: output width %vmm is narrower than one %vmm pixel", ErrInvalidRaster, outWidth, pixelSize)
	}

	ext := strings.ToLower(filepath.Ext(filePath))

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var img image.Image
	r := bytes.NewReader(data)
	switch ext {
	case ".svg":
		img, err = loadSVG(data, width)
	case ".png":
		img, err = png.Decode(r)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(r)
	case ".gif":
		img, err = gif.Decode(r)
	case ".bmp":
		img, err = bmp.Decode(r)
	case ".tif", ".tiff":
		img, err = tiff.Decode(r)
	case ".webp":
		img, err = webp.Decode(r)
	default:
		return nil, errors.New("unsupported image format: " + ext)
	}

	if err != nil {
		return nil, err
	}

	return toRaster(img, width)
}

// toRaster scales src to the given pixel width, keeping the aspect ratio,
// composites it over white and converts it to gray.
func toRaster(src image.Image, width int) (*Raster, error) {
	bounds := src.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidRaster)
	}

	height := bounds.Dy() * width / bounds.Dx()
	if height <= 0 {
		return nil, fmt.Errorf("%w: image scales to %dx%d pixels", ErrInvalidRaster, width, height)
	}

	flat := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(flat, flat.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(flat, flat.Bounds(), src, bounds, draw.Over, nil)

	gray := image.NewGray(flat.Bounds())
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			gray.SetGray(x, y, color.Gray{Y: luma(flat.RGBAAt(x, y))})
		}
	}

	return RasterFromGray(gray)
}

func luma(c color.RGBA) uint8 {
	return uint8((299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000)
}
