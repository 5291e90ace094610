package main

import "errors"

var (
	ErrInvalidRaster = errors.New("invalid raster")
	ErrInvalidPower  = errors.New("invalid power settings")
	ErrInvalidMotion = errors.New("invalid motion settings")
)
