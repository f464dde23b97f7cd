package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/pipes/voxel"
)

var (
	posX = voxel.Dir{Axis: voxel.AxisX, Sign: voxel.Positive}
	negX = voxel.Dir{Axis: voxel.AxisX, Sign: voxel.Negative}
	posY = voxel.Dir{Axis: voxel.AxisY, Sign: voxel.Positive}
	negY = voxel.Dir{Axis: voxel.AxisY, Sign: voxel.Negative}
	posZ = voxel.Dir{Axis: voxel.AxisZ, Sign: voxel.Positive}
)

// legalTurns enumerates every ordered (prev, cur) pair on different axes
func legalTurns() [][2]voxel.Dir {
	var out [][2]voxel.Dir
	for _, p := range voxel.Dirs {
		for _, c := range voxel.Dirs {
			if p.Axis != c.Axis {
				out = append(out, [2]voxel.Dir{p, c})
			}
		}
	}
	return out
}

func TestCurveID_CoversEveryLegalTurn(t *testing.T) {
	turns := legalTurns()
	require.Len(t, turns, 24)

	for _, mode := range []CurveMode{CurvePair, CurveTraversal} {
		ids := map[int]int{}
		for _, tc := range turns {
			id, err := mode.CurveID(tc[0], tc[1])
			require.NoError(t, err, "%v: %v -> %v", mode, tc[0], tc[1])
			assert.True(t, IsCurve(id), "%v: id %d out of curve range", mode, id)
			ids[id]++
		}
		assert.Len(t, ids, CurveCount, "%v must use all twelve ids", mode)
		for id, n := range ids {
			assert.Equal(t, 2, n, "%v: id %d should be hit by exactly two ordered pairs", mode, id)
		}
	}
}

func TestCurveID_PairModeIsSymmetric(t *testing.T) {
	for _, tc := range legalTurns() {
		a, err := CurvePair.CurveID(tc[0], tc[1])
		require.NoError(t, err)
		b, err := CurvePair.CurveID(tc[1], tc[0])
		require.NoError(t, err)
		assert.Equal(t, a, b, "%v <-> %v", tc[0], tc[1])
	}
}

func TestCurveID_ScenarioC(t *testing.T) {
	a, err := CurveID(posX, posY)
	require.NoError(t, err)
	b, err := CurveID(posY, posX)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, 13, a)
}

func TestCurveID_TraversalModeMatchesReversedWalk(t *testing.T) {
	for _, tc := range legalTurns() {
		fwd, err := CurveTraversal.CurveID(tc[0], tc[1])
		require.NoError(t, err)
		back, err := CurveTraversal.CurveID(tc[1].Opposite(), tc[0].Opposite())
		require.NoError(t, err)
		assert.Equal(t, fwd, back, "%v -> %v", tc[0], tc[1])
	}

	// Swapping entry and exit is a different bend in traversal mode
	a, _ := CurveTraversal.CurveID(posX, posY)
	b, _ := CurveTraversal.CurveID(posY, posX)
	assert.NotEqual(t, a, b)
}

func TestCurveID_TraversalKnownIDs(t *testing.T) {
	tests := []struct {
		prev, cur voxel.Dir
		want      int
	}{
		{posZ, negY, 4},
		{posZ, posX, 8},
		{posX, posY, 13},
		{negX, negY, 12},
		{posY, posX, 12},
	}
	for _, tt := range tests {
		id, err := CurveTraversal.CurveID(tt.prev, tt.cur)
		require.NoError(t, err)
		assert.Equal(t, tt.want, id, "%v -> %v", tt.prev, tt.cur)
	}
}

func TestCurveID_RejectsStraightAndReversal(t *testing.T) {
	for _, mode := range []CurveMode{CurvePair, CurveTraversal} {
		for _, d := range voxel.Dirs {
			_, err := mode.CurveID(d, d)
			assert.ErrorIs(t, err, ErrNoCurve)
			_, err = mode.CurveID(d, d.Opposite())
			assert.ErrorIs(t, err, ErrNoCurve)
		}
	}
}

func TestCurveID_Idempotent(t *testing.T) {
	for _, tc := range legalTurns() {
		first, err1 := CurveID(tc[0], tc[1])
		second, err2 := CurveID(tc[0], tc[1])
		assert.Equal(t, first, second)
		assert.Equal(t, err1, err2)
	}
}

func TestCurveBend_InvertsBothModes(t *testing.T) {
	for id := ElementCurveFirst; id <= ElementCurveLast; id++ {
		prev, cur, ok := CurveBend(id)
		require.True(t, ok)
		assert.NotEqual(t, prev.Axis, cur.Axis)

		for _, mode := range []CurveMode{CurvePair, CurveTraversal} {
			back, err := mode.CurveID(prev, cur)
			require.NoError(t, err)
			assert.Equal(t, id, back, "%v id %d", mode, id)
		}
	}

	_, _, ok := CurveBend(ElementSphere)
	assert.False(t, ok)
}

// In traversal mode the mesh always opens onto the entry and exit faces
func TestCurveFaces_TraversalIsGeometric(t *testing.T) {
	for _, tc := range legalTurns() {
		id, err := CurveTraversal.CurveID(tc[0], tc[1])
		require.NoError(t, err)

		a, b, ok := CurveFaces(id)
		require.True(t, ok)
		want := []voxel.Dir{tc[0].Opposite(), tc[1]}
		assert.ElementsMatch(t, want, []voxel.Dir{a, b}, "%v -> %v", tc[0], tc[1])
	}
}

func TestParseCurveMode(t *testing.T) {
	m, err := ParseCurveMode("Traversal")
	require.NoError(t, err)
	assert.Equal(t, CurveTraversal, m)

	m, err = ParseCurveMode("")
	require.NoError(t, err)
	assert.Equal(t, CurvePair, m)

	_, err = ParseCurveMode("spiral")
	assert.Error(t, err)
}
