package geometry

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/pipes/voxel"
)

// Element ids consumed by renderers
const (
	ElementNone       = -1 // Padding slot, nothing to draw
	ElementStraightX  = 0
	ElementStraightY  = 1
	ElementStraightZ  = 2
	ElementSphere     = 3 // Start cap or junction node
	ElementCurveFirst = 4
	ElementCurveLast  = 15

	CurveCount = ElementCurveLast - ElementCurveFirst + 1
)

// Sentinel errors
var (
	ErrNoCurve     = errors.New("no curve for direction pair")
	ErrUnknownKind = errors.New("unknown step kind")
)

// Kind tags what a pipe step is
type Kind int

const (
	KindNone     Kind = iota // Padding
	KindStart                // First cell of a pipe
	KindStraight             // Continues along the previous direction
	KindCurve                // Changes axis with a bend
	KindJunction             // Changes axis through a sphere node
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindStart:
		return "start"
	case KindStraight:
		return "straight"
	case KindCurve:
		return "curve"
	case KindJunction:
		return "junction"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Turns reports whether the kind changes direction
func (k Kind) Turns() bool {
	return k == KindCurve || k == KindJunction
}

// IsStraight reports whether id is a straight segment
func IsStraight(id int) bool {
	return id >= ElementStraightX && id <= ElementStraightZ
}

// IsCurve reports whether id is one of the twelve curve orientations
func IsCurve(id int) bool {
	return id >= ElementCurveFirst && id <= ElementCurveLast
}

// IsSphere reports whether id is a cap or junction
func IsSphere(id int) bool {
	return id == ElementSphere
}

// Valid reports whether id is drawable or the padding sentinel
func Valid(id int) bool {
	return id >= ElementNone && id <= ElementCurveLast
}

// StraightFor returns the straight element oriented along a
func StraightFor(a voxel.Axis) int {
	return ElementStraightX + int(a)
}

// Classify resolves a step to its element id.
// prev is the direction the pipe arrived with; cur is the direction it leaves with.
// On ErrNoCurve the sphere id is returned alongside the error so callers always have
// something drawable.
func Classify(mode CurveMode, kind Kind, prev, cur voxel.Dir) (int, error) {
	switch kind {
	case KindNone:
		return ElementNone, nil
	case KindStart, KindJunction:
		return ElementSphere, nil
	case KindStraight:
		return StraightFor(cur.Axis), nil
	case KindCurve:
		id, err := mode.CurveID(prev, cur)
		if err != nil {
			return ElementSphere, err
		}
		return id, nil
	}
	return ElementNone, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
}
