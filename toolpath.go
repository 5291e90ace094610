package main

import (
	"fmt"
	"math"
)

// LaserMode selects the instruction that enables the laser at the start of
// the program.
type LaserMode int

const (
	ConstantPower LaserMode = iota // M3
	DynamicPower                   // M4
)

// Optimization toggles the motion heuristics applied by Compile.
type Optimization uint8

const (
	// OptRapids turns non-burning travel into G0 moves when the hop is at
	// least MinRapidDistance long.
	OptRapids Optimization = 1 << iota
	// OptSkipEmptyRows drops rows that never burn and keeps the scan
	// direction for the next row.
	OptSkipEmptyRows
	// OptTrimEdges shortens the idle travel that closes a row to one pixel.
	OptTrimEdges

	OptAll = OptRapids | OptSkipEmptyRows | OptTrimEdges
)

type MotionConfig struct {
	PixelSize        float64 // mm per column and per row
	FeedRate         float64 // mm/min
	MinRapidDistance float64 // mm
	Mode             LaserMode
	Optimize         Optimization
}

func (c MotionConfig) Validate() error {
	if !(c.PixelSize > 0) || math.IsInf(c.PixelSize, 0) {
		return fmt.Errorf("%w: pixel size %v must be positive", ErrInvalidMotion, c.PixelSize)
	}
	if c.FeedRate < 0 || math.IsNaN(c.FeedRate) {
		return fmt.Errorf("%w: feed rate %v", ErrInvalidMotion, c.FeedRate)
	}
	if c.MinRapidDistance < 0 || math.IsNaN(c.MinRapidDistance) {
		return fmt.Errorf("%w: minimum rapid distance %v", ErrInvalidMotion, c.MinRapidDistance)
	}
	if c.Mode != ConstantPower && c.Mode != DynamicPower {
		return fmt.Errorf("%w: unknown laser mode %d", ErrInvalidMotion, c.Mode)
	}
	return nil
}

// Segment is a waypoint in mm. Power applies to the travel into the point
// and is the power of the sample before the boundary, not the one at it.
type Segment struct {
	X, Y  float64
	Power int
}

// ProgressFunc is told how many of the rows have been processed.
type ProgressFunc func(done, total int)

// Compile turns a raster into a serpentine laser program. Rows alternate
// direction, starting left to right. On error no program is returned.
func Compile(r *Raster, pc PowerConfig, mc MotionConfig, progress ProgressFunc) (*Program, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := pc.Validate(); err != nil {
		return nil, err
	}
	if err := mc.Validate(); err != nil {
		return nil, err
	}

	prog := &Program{
		Mode:     mc.Mode,
		FeedRate: mc.FeedRate,
	}

	forward := true
	var last Segment
	hasLast := false

	for y := 0; y < r.Height; y++ {
		segments := scanRow(r, y, forward, pc, mc.PixelSize)

		if mc.Optimize&OptSkipEmptyRows != 0 && totalPower(segments) == 0 {
			if progress != nil {
				progress(y+1, r.Height)
			}
			continue
		}

		scannedForward := forward
		forward = !forward
		if mc.Optimize&OptTrimEdges != 0 {
			trimEdges(segments, scannedForward, mc.PixelSize)
		}

		for _, s := range segments {
			rapid := mc.Optimize&OptRapids != 0 && s.Power == 0
			if rapid && hasLast && distance(s, last) < mc.MinRapidDistance {
				rapid = false
			}

			if rapid {
				prog.Moves = append(prog.Moves, Move{Kind: Rapid, X: s.X, Y: s.Y})
			} else {
				prog.Moves = append(prog.Moves, Move{Kind: Linear, X: s.X, Y: s.Y, Power: s.Power})
			}
			last = s
			hasLast = true
		}

		if progress != nil {
			progress(y+1, r.Height)
		}
	}

	return prog, nil
}

// scanRow merges one row into runs of equal power. A boundary is recorded
// whenever the power changes and at the last column of the row.
func scanRow(r *Raster, y int, forward bool, pc PowerConfig, pixelSize float64) []Segment {
	var segments []Segment
	lastPower := 0

	for col := 0; col < r.Width; col++ {
		x := col
		if !forward {
			x = r.Width - col - 1
		}

		power := Power(r.At(x, y), pc)
		if col == 0 {
			lastPower = power
		}
		end := col == r.Width-1

		if (col > 0 && power != lastPower) || end {
			segments = append(segments, Segment{
				X:     float64(x) * pixelSize,
				Y:     float64(y) * pixelSize,
				Power: lastPower,
			})
		}
		lastPower = power
	}

	return segments
}

// trimEdges pulls the zero-power anchor that closes a row in to one pixel
// past the last burn boundary, in the direction the row was scanned. The
// leading anchor is the travel to the first burn and is never moved. The
// closing anchor stays so the laser idles before the next row.
func trimEdges(segments []Segment, scannedForward bool, pixelSize float64) {
	n := len(segments)
	if n < 2 || segments[n-1].Power != 0 {
		return
	}
	if scannedForward {
		segments[n-1].X = segments[n-2].X + pixelSize
	} else {
		segments[n-1].X = segments[n-2].X - pixelSize
	}
}

func totalPower(segments []Segment) int {
	sum := 0
	for _, s := range segments {
		sum += s.Power
	}
	return sum
}

func distance(a, b Segment) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
