package geometry

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/pipes/voxel"
)

// CurveMode selects how a direction pair maps to a curve orientation
type CurveMode int

const (
	// CurvePair keys on the unordered pair of directed-axis values, so (p,c) and (c,p)
	// share an id. Blind to which face the pipe enters through.
	CurvePair CurveMode = iota

	// CurveTraversal keys on the two faces the bend connects, {-p, c}, so (p,c) and
	// (-c,-p) share an id: the same bend walked backwards.
	CurveTraversal
)

func (m CurveMode) String() string {
	switch m {
	case CurvePair:
		return "pair"
	case CurveTraversal:
		return "traversal"
	}
	return fmt.Sprintf("CurveMode(%d)", int(m))
}

// ParseCurveMode accepts "pair" or "traversal"
func ParseCurveMode(s string) (CurveMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pair":
		return CurvePair, nil
	case "traversal":
		return CurveTraversal, nil
	}
	return CurvePair, fmt.Errorf("unknown curve mode %q", s)
}

type pairKey [2]int

func keyOf(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

// bends lists one (prev, cur) directed-axis pair per curve id, starting at ElementCurveFirst.
// The curve mesh for an id connects faces -prev and cur.
var bends = [CurveCount][2]int{
	{3, -2}, {-3, -2}, {-3, 2}, {3, 2},
	{3, 1}, {3, -1}, {-3, 1}, {-3, -1},
	{-1, -2}, {1, 2}, {-1, 2}, {1, -2},
}

var (
	pairIDs = map[pairKey]int{}
	faceIDs = map[pairKey]int{}
)

func init() {
	for i, b := range bends {
		id := ElementCurveFirst + i
		pairIDs[keyOf(b[0], b[1])] = id
		faceIDs[keyOf(-b[0], b[1])] = id
	}
}

// CurveID resolves the bend from prev to cur.
// Equal or opposite directions are not bends and return ErrNoCurve.
func (m CurveMode) CurveID(prev, cur voxel.Dir) (int, error) {
	p, c := prev.Directed(), cur.Directed()
	if p == c || p == -c {
		return ElementNone, fmt.Errorf("%w: %v -> %v", ErrNoCurve, prev, cur)
	}

	var (
		id int
		ok bool
	)
	switch m {
	case CurveTraversal:
		id, ok = faceIDs[keyOf(-p, c)]
	default:
		id, ok = pairIDs[keyOf(p, c)]
	}
	if !ok {
		return ElementNone, fmt.Errorf("%w: %v -> %v", ErrNoCurve, prev, cur)
	}
	return id, nil
}

// CurveID resolves a bend in the default pair mode
func CurveID(prev, cur voxel.Dir) (int, error) {
	return CurvePair.CurveID(prev, cur)
}

// CurveFaces returns the two cell faces the mesh for a curve id opens onto.
// This orientation is fixed per id; the mode only decides which id a turn receives.
func CurveFaces(id int) (a, b voxel.Dir, ok bool) {
	if !IsCurve(id) {
		return voxel.Dir{}, voxel.Dir{}, false
	}
	bend := bends[id-ElementCurveFirst]
	a, _ = voxel.DirFromDirected(-bend[0])
	b, _ = voxel.DirFromDirected(bend[1])
	return a, b, true
}

// CurveBend returns the representative (prev, cur) pair of a curve id
func CurveBend(id int) (prev, cur voxel.Dir, ok bool) {
	if !IsCurve(id) {
		return voxel.Dir{}, voxel.Dir{}, false
	}
	bend := bends[id-ElementCurveFirst]
	prev, _ = voxel.DirFromDirected(bend[0])
	cur, _ = voxel.DirFromDirected(bend[1])
	return prev, cur, true
}
