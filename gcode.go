package main

import (
	"fmt"
	"io"
	"math"
	"strings"
)

type MoveKind int

const (
	Linear MoveKind = iota // G1, burns at the feed rate
	Rapid                  // G0, laser idle
)

// Move is one motion line. Rapid moves always carry zero power.
type Move struct {
	Kind  MoveKind
	X, Y  float64
	Power int
}

// Program is a complete laser job: the setup line, the moves in execution
// order and the closing laser-off line.
type Program struct {
	Mode     LaserMode
	FeedRate float64
	Moves    []Move
}

func (p *Program) String() string {
	var sb strings.Builder

	if p.Mode == DynamicPower {
		sb.WriteString(fmt.Sprintf("G21G90\nM4F%d\n", int(p.FeedRate)))
	} else {
		sb.WriteString(fmt.Sprintf("G21G90\nM3F%d\n", int(p.FeedRate)))
	}

	for _, m := range p.Moves {
		code, power := 1, m.Power
		if m.Kind == Rapid {
			code, power = 0, 0
		}
		sb.WriteString(fmt.Sprintf("G%dX%0.2fY%0.2fS%d\n", code, m.X, m.Y, power))
	}

	sb.WriteString("M5S0\n")
	return sb.String()
}

// WriteTo renders the program as G-code.
func (p *Program) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, p.String())
	return int64(n), err
}

type Stats struct {
	LinearMoves  int
	RapidMoves   int
	BurnLength   float64 // mm travelled with power > 0
	TravelLength float64 // mm travelled without burning
}

// Stats walks the moves from the origin and sums up the travel.
func (p *Program) Stats() Stats {
	var st Stats
	var x, y float64
	for _, m := range p.Moves {
		d := math.Hypot(m.X-x, m.Y-y)
		if m.Kind == Rapid {
			st.RapidMoves++
		} else {
			st.LinearMoves++
		}
		if m.Kind == Linear && m.Power > 0 {
			st.BurnLength += d
		} else {
			st.TravelLength += d
		}
		x, y = m.X, m.Y
	}
	return st
}
