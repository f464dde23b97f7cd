package voxel

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrInvalidDims = errors.New("grid dimensions must be positive")
)

// Axis is one of the three orthogonal grid directions
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
	axisCount
)

// Axes lists every axis in index order
var Axes = [axisCount]Axis{AxisX, AxisY, AxisZ}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// Valid reports whether a is one of X, Y, Z
func (a Axis) Valid() bool {
	return a >= AxisX && a < axisCount
}

// Sign is the travel direction along an axis
type Sign int

const (
	Positive Sign = iota
	Negative
)

// Multiplier returns +1 for Positive and -1 for Negative
func (s Sign) Multiplier() int {
	if s == Negative {
		return -1
	}
	return 1
}

// Flip returns the opposite sign
func (s Sign) Flip() Sign {
	if s == Negative {
		return Positive
	}
	return Negative
}

func (s Sign) String() string {
	if s == Negative {
		return "-"
	}
	return "+"
}

// Dir is a directed axis: one of the six unit moves
type Dir struct {
	Axis Axis
	Sign Sign
}

// Dirs lists the six unit directions, positive before negative per axis
var Dirs = [6]Dir{
	{AxisX, Positive}, {AxisX, Negative},
	{AxisY, Positive}, {AxisY, Negative},
	{AxisZ, Positive}, {AxisZ, Negative},
}

// Directed encodes d as sign*(axis+1), giving one of ±1, ±2, ±3
func (d Dir) Directed() int {
	return d.Sign.Multiplier() * (int(d.Axis) + 1)
}

// Opposite returns the direction on the same axis with the other sign
func (d Dir) Opposite() Dir {
	return Dir{Axis: d.Axis, Sign: d.Sign.Flip()}
}

func (d Dir) String() string {
	return d.Sign.String() + d.Axis.String()
}

// DirFromDirected decodes a directed-axis value; ok is false outside ±1..±3
func DirFromDirected(v int) (Dir, bool) {
	sign := Positive
	if v < 0 {
		sign = Negative
		v = -v
	}
	if v < 1 || v > int(axisCount) {
		return Dir{}, false
	}
	return Dir{Axis: Axis(v - 1), Sign: sign}, true
}

// Cell is an integer grid coordinate
type Cell struct {
	X, Y, Z int
}

// InvalidCell marks padding slots that carry no geometry
var InvalidCell = Cell{-1, -1, -1}

// Step returns the neighbouring cell one unit along d
func (c Cell) Step(d Dir) Cell {
	n := d.Sign.Multiplier()
	switch d.Axis {
	case AxisX:
		c.X += n
	case AxisY:
		c.Y += n
	case AxisZ:
		c.Z += n
	}
	return c
}

// Coord returns the component of c along a
func (c Cell) Coord(a Axis) int {
	switch a {
	case AxisY:
		return c.Y
	case AxisZ:
		return c.Z
	}
	return c.X
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Dims is the extent of a grid on each axis
type Dims struct {
	X, Y, Z int
}

// Cube returns equal dimensions on all axes
func Cube(n int) Dims {
	return Dims{n, n, n}
}

// Validate rejects non-positive extents
func (d Dims) Validate() error {
	if d.X <= 0 || d.Y <= 0 || d.Z <= 0 {
		return fmt.Errorf("%w: got %dx%dx%d", ErrInvalidDims, d.X, d.Y, d.Z)
	}
	return nil
}

// Volume returns the total number of cells
func (d Dims) Volume() int {
	return d.X * d.Y * d.Z
}

// Extent returns the size of d along a
func (d Dims) Extent(a Axis) int {
	switch a {
	case AxisY:
		return d.Y
	case AxisZ:
		return d.Z
	}
	return d.X
}

// Center returns the geometric centre used as the global centering offset
func (d Dims) Center() [3]float64 {
	return [3]float64{
		float64(d.X-1) / 2,
		float64(d.Y-1) / 2,
		float64(d.Z-1) / 2,
	}
}

func (d Dims) String() string {
	return fmt.Sprintf("%dx%dx%d", d.X, d.Y, d.Z)
}

// InBounds reports whether every coordinate of c lies in [0, extent)
func InBounds(c Cell, d Dims) bool {
	return c.X >= 0 && c.X < d.X &&
		c.Y >= 0 && c.Y < d.Y &&
		c.Z >= 0 && c.Z < d.Z
}
