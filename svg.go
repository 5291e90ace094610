package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
)

// loadSVG renders the drawing at the requested pixel width on a white
// canvas so that thin strokes survive without a second resampling pass.
func loadSVG(data []byte, width int) (image.Image, error) {
	svgIcon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	viewBoxW := float64(svgIcon.ViewBox.W)
	viewBoxH := float64(svgIcon.ViewBox.H)
	if viewBoxW <= 0 || viewBoxH <= 0 {
		return nil, errors.New("svg has no usable viewBox")
	}

	height := int(viewBoxH * float64(width) / viewBoxW)
	if height < 1 {
		height = 1
	}
	svgIcon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	scanner.SetClip(img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)

	svgIcon.Draw(raster, 1.0)
	return img, nil
}
