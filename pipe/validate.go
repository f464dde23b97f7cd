package pipe

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/lixenwraith/pipes/geometry"
	"github.com/lixenwraith/pipes/voxel"
)

// Validate checks a scene against the walk invariants:
// padding shape, in-bounds and globally unique cells, unit moves along the recorded
// direction, legal straights and turns, and element ids matching step kinds.
func Validate(ps *PathSet) error {
	cfg := ps.Config
	seen := mapset.New[voxel.Cell]()

	for i, p := range ps.Pipes {
		if len(p) != cfg.PipeLength() {
			return fmt.Errorf("%w: pipe %d length %d, want %d", ErrInvalidPath, i, len(p), cfg.PipeLength())
		}
		if lead := p.Lead(); lead != i*cfg.WaitSlots {
			return fmt.Errorf("%w: pipe %d has %d leading sentinels, want %d", ErrInvalidPath, i, lead, i*cfg.WaitSlots)
		}

		walk := p.Real()
		for _, s := range p[p.Lead()+len(walk):] {
			if !s.IsSentinel() {
				return fmt.Errorf("%w: pipe %d has geometry after its trailing padding began", ErrInvalidPath, i)
			}
		}
		if len(walk) == 0 {
			return fmt.Errorf("%w: pipe %d is empty", ErrInvalidPath, i)
		}
		if len(walk) > cfg.StepsPerPipe {
			return fmt.Errorf("%w: pipe %d walked %d steps, limit %d", ErrInvalidPath, i, len(walk), cfg.StepsPerPipe)
		}

		for j, s := range walk {
			if !voxel.InBounds(s.Cell, cfg.Dims) {
				return fmt.Errorf("%w: pipe %d step %d cell %v out of bounds", ErrInvalidPath, i, j, s.Cell)
			}
			if seen.Has(s.Cell) {
				return fmt.Errorf("%w: pipe %d step %d reuses cell %v", ErrInvalidPath, i, j, s.Cell)
			}
			seen.Put(s.Cell)

			if j == 0 {
				if s.Kind != geometry.KindStart || s.Element != geometry.ElementSphere {
					return fmt.Errorf("%w: pipe %d does not begin with a start cap", ErrInvalidPath, i)
				}
				continue
			}
			if err := checkMove(walk[j-1], s, cfg.Walk.CurveMode); err != nil {
				return fmt.Errorf("%w: pipe %d step %d: %v", ErrInvalidPath, i, j, err)
			}
		}
	}
	return nil
}

func checkMove(prev, s Step, mode geometry.CurveMode) error {
	if want := prev.Cell.Step(prev.Dir); s.Cell != want {
		return fmt.Errorf("cell %v is not one %v move from %v", s.Cell, prev.Dir, prev.Cell)
	}

	switch s.Kind {
	case geometry.KindStraight:
		if s.Dir != prev.Dir {
			return fmt.Errorf("straight changed direction %v -> %v", prev.Dir, s.Dir)
		}
		if s.Element != geometry.StraightFor(s.Dir.Axis) {
			return fmt.Errorf("straight along %v has element %d", s.Dir.Axis, s.Element)
		}
	case geometry.KindCurve:
		if s.Dir.Axis == prev.Dir.Axis {
			return fmt.Errorf("curve %v -> %v does not change axis", prev.Dir, s.Dir)
		}
		want, err := mode.CurveID(prev.Dir, s.Dir)
		if err != nil {
			return err
		}
		if s.Element != want {
			return fmt.Errorf("curve %v -> %v has element %d, want %d", prev.Dir, s.Dir, s.Element, want)
		}
	case geometry.KindJunction:
		if s.Dir.Axis == prev.Dir.Axis {
			return fmt.Errorf("junction %v -> %v does not change axis", prev.Dir, s.Dir)
		}
		if s.Element != geometry.ElementSphere {
			return fmt.Errorf("junction has element %d", s.Element)
		}
		if geometry.IsSphere(prev.Element) {
			return fmt.Errorf("junction directly after a sphere")
		}
	default:
		return fmt.Errorf("unexpected kind %v inside a walk", s.Kind)
	}
	return nil
}
